// Package sequence rebuilds the possession behind each shot and tags it
// with a play archetype. Sequences are ephemeral views over the event
// list: rebuilt on every query, never persisted.
package sequence

import (
	"github.com/pable/go-nhl-metrics/internal/model"
	"github.com/pable/go-nhl-metrics/internal/timeline"
	"github.com/pable/go-nhl-metrics/internal/zones"
)

const (
	// OriginLookback caps the backward scan per shot. Shots whose
	// possession start cannot be found within it yield no sequence.
	OriginLookback = 20

	reboundLookback = 5
	reboundSeconds  = 3
)

// Reconstruct builds one AttackSequence per qualifying shot in the game.
// Shots that cannot resolve an origin are dropped silently, an accepted
// under-count for shots early in a period or after long scoreless
// stretches, not an error.
func Reconstruct(game *model.GameRecord, teamID, playerID int) []model.AttackSequence {
	indexByEventID := make(map[int]int, len(game.Events))
	for i, ev := range game.Events {
		indexByEventID[ev.EventID] = i
	}

	var out []model.AttackSequence
	for _, shot := range game.Shots {
		if shot.TeamID != teamID {
			continue
		}
		if playerID != 0 && shot.ShooterID != playerID {
			continue
		}
		shotIdx, ok := indexByEventID[shot.EventID]
		if !ok {
			continue
		}
		if seq, ok := buildSequence(game.Events, shotIdx, shot, playerID); ok {
			out = append(out, seq)
		}
	}
	return out
}

// buildSequence runs the backward origin search and forward waypoint
// collection for one shot.
func buildSequence(events []model.Event, shotIdx int, shot model.ShotEvent, playerID int) (model.AttackSequence, bool) {
	teamID := shot.TeamID

	originIdx := findOrigin(events, shotIdx, teamID)
	if originIdx < 0 {
		return model.AttackSequence{}, false
	}
	origin := events[originIdx]

	// Attack direction is fixed by the shot's end of the rink.
	attackSign := 1.0
	if shot.HasCoords && shot.X < 0 {
		attackSign = -1.0
	}

	// Waypoints: every team event with usable coordinates between origin
	// and shot, inclusive.
	var waypoints []model.Waypoint
	var waypointEvents []model.Event
	for i := originIdx; i <= shotIdx; i++ {
		ev := events[i]
		if ev.TeamID != teamID || !ev.HasCoords {
			continue
		}
		waypoints = append(waypoints, model.Waypoint{
			X:            ev.X,
			Y:            ev.Y,
			EventType:    ev.TypeKey,
			TimeInPeriod: ev.TimeInPeriod,
		})
		waypointEvents = append(waypointEvents, ev)
	}

	shotElapsed := timeline.ParseClock(shot.TimeInPeriod)
	originElapsed := timeline.ParseClock(origin.TimeInPeriod)

	dist := 0.0
	if shot.HasCoords {
		dist = timeline.ShotDistance(shot.X, shot.Y)
	}

	seq := model.AttackSequence{
		SequenceID:      shot.EventID,
		TeamID:          teamID,
		PlayerID:        playerID,
		Period:          shot.Period,
		StartTime:       origin.TimeInPeriod,
		EndTime:         shot.TimeInPeriod,
		DurationSeconds: shotElapsed - originElapsed,
		Origin: model.SequenceOrigin{
			Zone:         originZone(origin.X, attackSign),
			Trigger:      originTrigger(origin.TypeKey),
			X:            origin.X,
			Y:            origin.Y,
			TimeInPeriod: origin.TimeInPeriod,
		},
		Waypoints: waypoints,
		ZoneEntry: detectSequenceEntry(waypointEvents, attackSign),
		Rebound:   isRebound(events, shotIdx, teamID, shot.Period, shotElapsed),
		Outcome: model.SequenceOutcome{
			Result:   shot.Result,
			X:        shot.X,
			Y:        shot.Y,
			Distance: dist,
		},
	}
	seq.Archetype = Classify(&seq)
	return seq, true
}

// findOrigin scans backward from the shot for the possession start.
// The first other-team event terminates the chain, making the event
// after it the origin; a coordinate-less candidate is skipped and the
// scan continues. A faceoff is a definite origin regardless of team.
// Returns -1 when nothing resolves within the lookback.
func findOrigin(events []model.Event, shotIdx, teamID int) int {
	floor := shotIdx - OriginLookback
	if floor < 0 {
		floor = 0
	}
	for j := shotIdx - 1; j >= floor; j-- {
		ev := events[j]
		if ev.TypeKey == model.TypeFaceoff {
			if ev.HasCoords {
				return j
			}
			continue
		}
		if ev.TeamID != 0 && ev.TeamID != teamID {
			candidate := j + 1
			if candidate <= shotIdx && events[candidate].HasCoords {
				return candidate
			}
			continue
		}
	}
	return -1
}

// originZone classifies the origin relative to the attacking direction.
func originZone(x, attackSign float64) string {
	ax := x * attackSign
	switch {
	case ax > zones.EndZoneX:
		return model.ZoneOffensive
	case ax < -zones.EndZoneX:
		return model.ZoneDefensive
	default:
		return model.ZoneNeutral
	}
}

func originTrigger(typeKey string) string {
	switch typeKey {
	case model.TypeFaceoff:
		return model.TriggerFaceoff
	case model.TypeTakeaway:
		return model.TriggerTakeaway
	default:
		return model.TriggerTurnover
	}
}

// detectSequenceEntry finds the first non-offensive→offensive waypoint
// transition and types it with the same conservative guard list as the
// standalone detector, restricted to this sequence's waypoints.
func detectSequenceEntry(waypointEvents []model.Event, attackSign float64) *model.SequenceEntry {
	for i := 1; i < len(waypointEvents); i++ {
		prev, cur := waypointEvents[i-1], waypointEvents[i]
		if prev.X*attackSign > zones.EndZoneX || cur.X*attackSign <= zones.EndZoneX {
			continue
		}
		var next *model.Event
		if i+1 < len(waypointEvents) {
			next = &waypointEvents[i+1]
		}
		entryType := zones.ClassifyEntryType(cur, next)
		return &model.SequenceEntry{
			EntryType: entryType,
			Success:   entryType == model.EntryControlled,
		}
	}
	return nil
}

// isRebound reports whether any of the team's own shot attempts in the
// 5 preceding events landed within 3 seconds of this shot's clock.
func isRebound(events []model.Event, shotIdx, teamID, period, shotElapsed int) bool {
	floor := shotIdx - reboundLookback
	if floor < 0 {
		floor = 0
	}
	for j := shotIdx - 1; j >= floor; j-- {
		ev := events[j]
		if ev.TeamID != teamID || !model.IsShotType(ev.TypeKey) {
			continue
		}
		if ev.Period != period {
			continue
		}
		gap := shotElapsed - timeline.ParseClock(ev.TimeInPeriod)
		if gap >= 0 && gap <= reboundSeconds {
			return true
		}
	}
	return false
}
