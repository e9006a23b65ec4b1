package sequence

import (
	"math"

	"github.com/pable/go-nhl-metrics/internal/model"
)

// Archetype rule thresholds.
const (
	reboundMaxDistance   = 15.0
	rushMaxDuration      = 8
	breakawayMaxDistance = 10.0
	oddmanMaxWaypoints   = 3
	faceoffMaxDuration   = 5
	pointShotMaxAbsX     = 60.0
	scrambleMaxDistance  = 15.0
	cycleMinDuration     = 15
	cycleLowMinAbsY      = 15.0
	quickTransMaxSeconds = 5
)

// Classify assigns exactly one archetype to a sequence. The rules are an
// ordered decision list: first match wins, with cycle-high as the fixed
// default, so each rule stays auditable on its own.
func Classify(seq *model.AttackSequence) string {
	dist := seq.Outcome.Distance
	dur := seq.DurationSeconds

	if seq.Rebound && dist < reboundMaxDistance {
		return model.ArchetypeRebound
	}

	if seq.Origin.Zone != model.ZoneOffensive && dur <= rushMaxDuration {
		switch {
		case dist < breakawayMaxDistance:
			return model.ArchetypeBreakaway
		case len(seq.Waypoints) <= oddmanMaxWaypoints:
			return model.ArchetypeOddmanRush
		default:
			return model.ArchetypeRushStandard
		}
	}

	if seq.Origin.Zone == model.ZoneOffensive &&
		seq.Origin.Trigger == model.TriggerFaceoff &&
		dur <= faceoffMaxDuration {
		return model.ArchetypeFaceoffPlay
	}

	if math.Abs(seq.Outcome.X) < pointShotMaxAbsX {
		return model.ArchetypePointShot
	}

	if dist < scrambleMaxDistance {
		return model.ArchetypeNetScramble
	}

	if seq.Origin.Zone == model.ZoneOffensive && dur >= cycleMinDuration {
		if math.Abs(seq.Outcome.Y) > cycleLowMinAbsY {
			return model.ArchetypeCycleLow
		}
		return model.ArchetypeCycleHigh
	}

	if seq.Origin.Zone == model.ZoneDefensive {
		if dur < quickTransMaxSeconds {
			return model.ArchetypeTransQuick
		}
		return model.ArchetypeTransSustained
	}

	return model.ArchetypeCycleHigh
}
