package aggregator

import (
	"math"

	"github.com/pable/go-nhl-metrics/internal/model"
)

// Window comparison modes for the previous window.
const (
	VersusPriorWindow = "window" // the K games before the current window
	VersusSeason      = "season" // everything before the current window
)

// Change significance thresholds (absolute percent change).
const (
	minorChangePct    = 10.0
	moderateChangePct = 15.0
	majorChangePct    = 25.0
)

// minSampleShots: windows with fewer shots than this produce no change
// list at all; the comparison would be noise.
const minSampleShots = 3

// negligibleMagnitude: a metric where both windows sit below this raw
// magnitude is not meaningful and is skipped.
const negligibleMagnitude = 0.1

// ComputeBehaviorProfile summarizes shooting behavior over a span of
// games for one team (or one shooter).
func ComputeBehaviorProfile(games []model.GameRecord, teamID, playerID int) model.BehaviorProfile {
	d := ComputeDecisions(games, teamID, playerID)
	return model.BehaviorProfile{
		Games:         len(games),
		TotalShots:    d.TotalShots,
		HighDangerPct: d.Overall.HighDangerPct,
		AvgDistance:   d.Overall.MeanDistance,
		ShootingPct:   d.Overall.ShootingPct,
		RushPct:       d.RushPct,
		CyclePct:      d.CyclePct,
		Patience:      d.Patience,
	}
}

// evolutionMetric describes one compared profile metric and whether an
// increase counts as improvement.
type evolutionMetric struct {
	name         string
	betterHigher bool
	value        func(model.BehaviorProfile) float64
}

var evolutionMetrics = []evolutionMetric{
	{"high-danger %", true, func(p model.BehaviorProfile) float64 { return p.HighDangerPct }},
	{"avg shot distance", false, func(p model.BehaviorProfile) float64 { return p.AvgDistance }},
	{"shooting %", true, func(p model.BehaviorProfile) float64 { return p.ShootingPct }},
	{"rush %", true, func(p model.BehaviorProfile) float64 { return p.RushPct }},
	{"cycle %", true, func(p model.BehaviorProfile) float64 { return p.CyclePct }},
	{"patience", true, func(p model.BehaviorProfile) float64 { return p.Patience }},
}

// CompareWindows splits a chronologically ordered game list into a
// current window of the last `window` games and a previous window (the
// prior `window` games, or the whole remainder in season mode), then
// reports every metric shifting by at least the minor threshold.
func CompareWindows(games []model.GameRecord, teamID, playerID, window int, mode string) model.EvolutionReport {
	if window <= 0 {
		window = 1
	}
	split := len(games) - window
	if split < 0 {
		split = 0
	}
	currentGames := games[split:]

	var previousGames []model.GameRecord
	if mode == VersusSeason {
		previousGames = games[:split]
	} else {
		lo := split - window
		if lo < 0 {
			lo = 0
		}
		previousGames = games[lo:split]
	}

	report := model.EvolutionReport{
		Current:  ComputeBehaviorProfile(currentGames, teamID, playerID),
		Previous: ComputeBehaviorProfile(previousGames, teamID, playerID),
		Trend:    model.TrendStable,
	}

	if report.Current.TotalShots < minSampleShots || report.Previous.TotalShots < minSampleShots {
		return report
	}

	for _, metric := range evolutionMetrics {
		prev := metric.value(report.Previous)
		cur := metric.value(report.Current)
		if math.Abs(prev) < negligibleMagnitude && math.Abs(cur) < negligibleMagnitude {
			continue
		}

		pct := cappedPctChange(prev, cur)
		abs := math.Abs(pct)
		if abs < minorChangePct {
			continue
		}

		change := model.MetricChange{
			Metric:    metric.name,
			Previous:  prev,
			Current:   cur,
			PctChange: pct,
			Improved:  (cur > prev) == metric.betterHigher,
		}
		switch {
		case abs >= majorChangePct:
			change.Significance = model.ChangeMajor
		case abs >= moderateChangePct:
			change.Significance = model.ChangeModerate
		default:
			change.Significance = model.ChangeMinor
		}
		report.Changes = append(report.Changes, change)
	}

	report.Trend = overallTrend(report.Changes)
	return report
}

// cappedPctChange computes (cur-prev)/|prev| in percent, capped to ±100
// so divisions by near-zero baselines cannot distort the report.
func cappedPctChange(prev, cur float64) float64 {
	if prev == 0 {
		if cur > 0 {
			return 100
		}
		if cur < 0 {
			return -100
		}
		return 0
	}
	pct := (cur - prev) / math.Abs(prev) * 100
	if pct > 100 {
		return 100
	}
	if pct < -100 {
		return -100
	}
	return pct
}

// overallTrend sums signed significance weights (major ±2, moderate ±1,
// minor 0) and classifies the net movement.
func overallTrend(changes []model.MetricChange) string {
	net := 0
	hasImproving, hasDeclining := false, false
	for _, c := range changes {
		weight := 0
		switch c.Significance {
		case model.ChangeMajor:
			weight = 2
		case model.ChangeModerate:
			weight = 1
		}
		if c.Improved {
			hasImproving = true
			net += weight
		} else {
			hasDeclining = true
			net -= weight
		}
	}
	switch {
	case net >= 2:
		return model.TrendImproving
	case net <= -2:
		return model.TrendDeclining
	case hasImproving && hasDeclining:
		return model.TrendMixed
	default:
		return model.TrendStable
	}
}
