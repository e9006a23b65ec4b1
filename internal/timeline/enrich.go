package timeline

import (
	"math"

	"github.com/pable/go-nhl-metrics/internal/model"
)

const (
	goalX = 89.0

	highDangerDistance = 25.0
	highDangerLateral  = 20.0

	lateGameRemaining = 300
	lateGamePeriod    = 3
)

// ShotDistance is the Euclidean distance from a shot location to the
// nearer goal mouth. The goal x is chosen by the sign of the shot x.
func ShotDistance(x, y float64) float64 {
	gx := goalX
	if x < 0 {
		gx = -goalX
	}
	return math.Hypot(x-gx, y)
}

// IsHighDanger reports whether a located shot is a high-danger chance:
// within 25 units of the goal and within 20 laterally of center.
func IsHighDanger(dist, y float64) bool {
	return dist <= highDangerDistance && math.Abs(y) <= highDangerLateral
}

// EnrichShots attaches derived context to every shot belonging to teamID
// (optionally restricted to one shooter when playerID != 0). It is a
// pure map over the shot list; shots with no matching score moment get
// the tied/0 default, and unlocated shots keep zero spatial fields.
func EnrichShots(game *model.GameRecord, teamID, playerID int) []model.EnrichedShot {
	tl := BuildScoreTimeline(game.Events, game.HomeTeamID)

	var out []model.EnrichedShot
	for _, shot := range game.Shots {
		if shot.TeamID != teamID {
			continue
		}
		if playerID != 0 && shot.ShooterID != playerID {
			continue
		}

		es := model.EnrichedShot{ShotEvent: shot}
		if shot.HasCoords {
			es.Distance = ShotDistance(shot.X, shot.Y)
			es.HighDanger = IsHighDanger(es.Distance, shot.Y)
		}

		elapsed := ParseClock(shot.TimeInPeriod)
		es.TimeRemaining = PeriodSeconds - elapsed
		es.LateGame = shot.Period >= lateGamePeriod && es.TimeRemaining <= lateGameRemaining
		es.State = tl.StateAt(teamID, shot.Period, shot.TimeInPeriod)

		out = append(out, es)
	}
	return out
}
