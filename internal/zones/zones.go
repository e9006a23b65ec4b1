// Package zones detects zone entries and exits from chronologically
// ordered event lists. Classification is directionally agnostic: zone
// membership is |x| > 25 (end zone) versus neutral, with the raw sign of
// x retained separately for entry/exit directionality.
package zones

import (
	"math"

	"github.com/pable/go-nhl-metrics/internal/model"
	"github.com/pable/go-nhl-metrics/internal/timeline"
)

// EndZoneX is the blue-line boundary: |x| beyond it is an end zone.
const EndZoneX = 25.0

const (
	quickShotSeconds  = 3
	stalledGapSeconds = 5
)

// InEndZone reports end-zone membership regardless of direction.
func InEndZone(x float64) bool {
	return math.Abs(x) > EndZoneX
}

// Side is the raw three-way classification by literal sign of x.
func Side(x float64) string {
	switch {
	case x > EndZoneX:
		return "positive"
	case x < -EndZoneX:
		return "negative"
	default:
		return "neutral"
	}
}

// isTurnoverType marks events where the acting team surrenders the puck.
func isTurnoverType(typeKey string) bool {
	return typeKey == model.TypeGiveaway
}

// isPossessionType marks events that explicitly retain or win possession.
func isPossessionType(typeKey string) bool {
	return typeKey == model.TypeTakeaway || typeKey == model.TypeFaceoff
}

// ClassifyEntryType applies the conservative entry-type guard list to
// the transition event and the event immediately following it. Ambiguity
// always resolves to dump: under-counting controlled entries is the
// accepted bias.
func ClassifyEntryType(ev model.Event, next *model.Event) string {
	if isTurnoverType(ev.TypeKey) || model.IsShotType(ev.TypeKey) {
		return model.EntryDump
	}
	if isPossessionType(ev.TypeKey) {
		return model.EntryControlled
	}
	if next != nil && next.Period == ev.Period {
		gap := timeline.ParseClock(next.TimeInPeriod) - timeline.ParseClock(ev.TimeInPeriod)
		if model.IsShotType(next.TypeKey) && gap <= quickShotSeconds {
			return model.EntryControlled
		}
		if isTurnoverType(next.TypeKey) || gap > stalledGapSeconds {
			return model.EntryDump
		}
	}
	return model.EntryDump
}

// classifyExitType mirrors the entry guard list for exits: explicit
// possession events are controlled carries, shots and giveaways at the
// line are clears, and everything ambiguous is a clear.
func classifyExitType(ev model.Event) string {
	if isPossessionType(ev.TypeKey) {
		return model.ExitControlled
	}
	return model.ExitClear
}

// DetectTransitions scans one team's coordinate-bearing events in order
// and emits an entry whenever consecutive events cross from outside an
// end zone into one, and an exit on the reverse crossing. Events missing
// either coordinate neither start nor end a transition. The actor of
// each emitted record is the later event of the pair.
func DetectTransitions(events []model.Event, teamID int) ([]model.ZoneEntry, []model.ZoneExit) {
	var team []model.Event
	for _, ev := range events {
		if ev.TeamID != teamID || !ev.HasCoords {
			continue
		}
		team = append(team, ev)
	}

	var entries []model.ZoneEntry
	var exits []model.ZoneExit
	for i := 1; i < len(team); i++ {
		prev, cur := team[i-1], team[i]
		prevEnd, curEnd := InEndZone(prev.X), InEndZone(cur.X)
		if prevEnd == curEnd {
			continue
		}

		var next *model.Event
		if i+1 < len(team) {
			next = &team[i+1]
		}

		if curEnd {
			entryType := ClassifyEntryType(cur, next)
			entries = append(entries, model.ZoneEntry{
				EventID:      cur.EventID,
				PlayerID:     cur.PlayerID,
				TeamID:       cur.TeamID,
				Period:       cur.Period,
				TimeInPeriod: cur.TimeInPeriod,
				EntryType:    entryType,
				X:            cur.X,
				Y:            cur.Y,
				Success:      entrySucceeded(entryType, cur, next),
			})
			continue
		}

		exitType := classifyExitType(cur)
		exits = append(exits, model.ZoneExit{
			EventID:      cur.EventID,
			PlayerID:     cur.PlayerID,
			TeamID:       cur.TeamID,
			Period:       cur.Period,
			TimeInPeriod: cur.TimeInPeriod,
			ExitType:     exitType,
			X:            cur.X,
			Y:            cur.Y,
			Success:      exitType == model.ExitControlled || !isTurnoverType(cur.TypeKey),
		})
	}
	return entries, exits
}

// entrySucceeded: controlled entries succeed by definition; a dump-in
// succeeds only when the team's next touch follows it (possession was
// recovered rather than surrendered).
func entrySucceeded(entryType string, ev model.Event, next *model.Event) bool {
	if entryType == model.EntryControlled {
		return true
	}
	return next != nil && !isTurnoverType(next.TypeKey)
}
