package aggregator

import (
	"math"

	"github.com/pable/go-nhl-metrics/internal/model"
	"github.com/pable/go-nhl-metrics/internal/timeline"
)

// ComputeTeamBasics derives the simple possession proxies (Corsi,
// Fenwick, shooting %, PDO) and the six-category shot-zone distribution
// for one team across a game set. Empty input yields the documented
// neutral defaults: Corsi/Fenwick 50, PDO 100, all-zero distribution.
func ComputeTeamBasics(games []model.GameRecord, teamID int) model.TeamBasics {
	var attemptsFor, attemptsAgainst int
	var fenwickFor, fenwickAgainst int
	var sogFor, sogAgainst int
	var goalsFor, goalsAgainst int
	var teamShots []model.ShotEvent

	for gi := range games {
		game := &games[gi]
		for _, shot := range game.Shots {
			forTeam := shot.TeamID == teamID
			if forTeam {
				teamShots = append(teamShots, shot)
				attemptsFor++
			} else {
				attemptsAgainst++
			}
			if shot.Result != model.TypeBlockedShot {
				if forTeam {
					fenwickFor++
				} else {
					fenwickAgainst++
				}
			}
			onGoal := shot.Result == model.TypeGoal || shot.Result == model.TypeShotOnGoal
			if onGoal {
				if forTeam {
					sogFor++
				} else {
					sogAgainst++
				}
			}
			if shot.Result == model.TypeGoal {
				if forTeam {
					goalsFor++
				} else {
					goalsAgainst++
				}
			}
		}
	}

	basics := model.TeamBasics{
		ShotAttempts:     attemptsFor,
		CorsiPct:         sharePct(attemptsFor, attemptsAgainst),
		FenwickPct:       sharePct(fenwickFor, fenwickAgainst),
		ZoneDistribution: zoneDistribution(teamShots),
	}

	shootingPct := 0.0
	if sogFor > 0 {
		shootingPct = float64(goalsFor) / float64(sogFor) * 100
	}
	savePct := 100.0
	if sogAgainst > 0 {
		savePct = (1 - float64(goalsAgainst)/float64(sogAgainst)) * 100
	}
	basics.ShootingPct = shootingPct
	basics.PDO = shootingPct + savePct
	return basics
}

// sharePct returns for/(for+against) in percent, defaulting to 50 when
// neither side has a count.
func sharePct(forCount, againstCount int) float64 {
	total := forCount + againstCount
	if total == 0 {
		return 50
	}
	return float64(forCount) / float64(total) * 100
}

// ShotZone classifies a located shot into one of the six zone
// categories. The guard list is total: every located shot lands in
// exactly one category.
func ShotZone(x, y float64) string {
	dist := timeline.ShotDistance(x, y)
	switch {
	case dist <= 10:
		return model.ShotZoneCrease
	case timeline.IsHighDanger(dist, y):
		return model.ShotZoneSlot
	case math.Abs(x) < 60:
		return model.ShotZonePoint
	}
	// Left/right is relative to the attacking direction so both rink
	// ends classify consistently.
	sideY := y
	if x < 0 {
		sideY = -y
	}
	switch {
	case sideY >= 15:
		return model.ShotZoneLeftCircle
	case sideY <= -15:
		return model.ShotZoneRightCircle
	default:
		return model.ShotZonePerimeter
	}
}

// zoneDistribution counts located shots per zone category. Unlocated
// shots are excluded from both counts and the percentage base.
func zoneDistribution(shots []model.ShotEvent) model.ZoneDistribution {
	dist := model.ZoneDistribution{
		Counts:      make(map[string]int, len(model.ShotZones)),
		Percentages: make(map[string]float64, len(model.ShotZones)),
	}
	for _, zone := range model.ShotZones {
		dist.Counts[zone] = 0
		dist.Percentages[zone] = 0
	}

	located := 0
	for _, shot := range shots {
		if !shot.HasCoords {
			continue
		}
		dist.Counts[ShotZone(shot.X, shot.Y)]++
		located++
	}
	if located == 0 {
		return dist
	}
	for zone, count := range dist.Counts {
		dist.Percentages[zone] = float64(count) / float64(located) * 100
	}
	return dist
}
