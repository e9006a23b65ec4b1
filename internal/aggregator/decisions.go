// Package aggregator rolls enriched shots, sequences, and transitions up
// into team/player analytics. Every function here is a deterministic,
// side-effect-free transformation over immutable inputs: safe to call
// repeatedly and in parallel across independent game sets.
package aggregator

import (
	"github.com/pable/go-nhl-metrics/internal/model"
	"github.com/pable/go-nhl-metrics/internal/sequence"
	"github.com/pable/go-nhl-metrics/internal/timeline"
	"github.com/pable/go-nhl-metrics/internal/zones"
)

// Possession style thresholds: seconds since the last defensive-zone
// touch before the shot.
const (
	rushWindowSeconds = 8
	cycleFloorSeconds = 15
)

// Possession style labels for the simplified shot classifier.
const (
	StyleRush  = "rush"
	StyleCycle = "cycle"
	StyleOther = "other"
)

// ComputeDecisions partitions the team's (or one shooter's) shots by
// game state and late-game pressure and derives the 0-100 decision
// indicators. Sparse input produces a structurally valid zero report.
func ComputeDecisions(games []model.GameRecord, teamID, playerID int) model.DecisionMetrics {
	m := model.DecisionMetrics{
		ByState: map[string]model.ShotPartition{
			model.StateTied:     {},
			model.StateLeading:  {},
			model.StateTrailing: {},
		},
	}

	var overall, late partAccum
	byState := map[string]*partAccum{
		model.StateTied:     {},
		model.StateLeading:  {},
		model.StateTrailing: {},
	}

	for gi := range games {
		game := &games[gi]
		shots := timeline.EnrichShots(game, teamID, playerID)
		for _, shot := range shots {
			overall.add(shot)
			if acc, ok := byState[shot.State.Situation]; ok {
				acc.add(shot)
			}
			if shot.LateGame {
				late.add(shot)
			}

			switch classifyPossessionStyle(game.Events, shot.ShotEvent) {
			case StyleRush:
				m.RushShots++
			case StyleCycle:
				m.CycleShots++
			default:
				m.OtherShots++
			}
		}
	}

	m.TotalShots = overall.shots
	m.Overall = overall.partition()
	m.LateGame = late.partition()
	for state, acc := range byState {
		m.ByState[state] = acc.partition()
	}

	if m.TotalShots > 0 {
		total := float64(m.TotalShots)
		m.RushPct = float64(m.RushShots) / total * 100
		m.CyclePct = float64(m.CycleShots) / total * 100
		m.OtherPct = float64(m.OtherShots) / total * 100
	}

	m.Patience = patienceScore(m.Overall.HighDangerPct)
	m.Awareness = clamp01to100(50 + m.ByState[model.StateTrailing].HighDangerPct - m.ByState[model.StateLeading].HighDangerPct)
	m.LateGamePoise = clamp01to100(50 + m.LateGame.HighDangerPct - m.Overall.HighDangerPct)
	return m
}

// classifyPossessionStyle measures time since the team's last
// defensive-zone touch before the shot, using the same capped backward
// scan as the sequence reconstructor but without origin semantics.
func classifyPossessionStyle(events []model.Event, shot model.ShotEvent) string {
	shotIdx := -1
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].EventID == shot.EventID {
			shotIdx = i
			break
		}
	}
	if shotIdx < 0 {
		return StyleOther
	}

	attackSign := 1.0
	if shot.HasCoords && shot.X < 0 {
		attackSign = -1.0
	}
	shotElapsed := timeline.ParseClock(shot.TimeInPeriod)

	floor := shotIdx - sequence.OriginLookback
	if floor < 0 {
		floor = 0
	}
	for j := shotIdx - 1; j >= floor; j-- {
		ev := events[j]
		if ev.TeamID != shot.TeamID || !ev.HasCoords || ev.Period != shot.Period {
			continue
		}
		if ev.X*attackSign >= -zones.EndZoneX {
			continue
		}
		gap := shotElapsed - timeline.ParseClock(ev.TimeInPeriod)
		switch {
		case gap <= rushWindowSeconds:
			return StyleRush
		case gap >= cycleFloorSeconds:
			return StyleCycle
		default:
			return StyleOther
		}
	}
	return StyleOther
}

// patienceScore scales high-danger share against the 28% shoot-from-
// anywhere ceiling: hd% of 28 maps to 50, 56+ maps to 100.
func patienceScore(highDangerPct float64) float64 {
	score := highDangerPct / 28.0 * 50.0
	if score > 100 {
		return 100
	}
	return score
}

func clamp01to100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// partAccum accumulates one shot partition.
type partAccum struct {
	shots      int
	goals      int
	highDanger int
	distSum    float64
}

func (a *partAccum) add(s model.EnrichedShot) {
	a.shots++
	if s.Result == model.TypeGoal {
		a.goals++
	}
	if s.HighDanger {
		a.highDanger++
	}
	a.distSum += s.Distance
}

func (a *partAccum) partition() model.ShotPartition {
	p := model.ShotPartition{
		Shots:      a.shots,
		Goals:      a.goals,
		HighDanger: a.highDanger,
	}
	if a.shots > 0 {
		n := float64(a.shots)
		p.HighDangerPct = float64(a.highDanger) / n * 100
		p.MeanDistance = a.distSum / n
		p.ShootingPct = float64(a.goals) / n * 100
	}
	return p
}
