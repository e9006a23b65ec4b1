package nhl

import (
	"fmt"

	"github.com/pable/go-nhl-metrics/internal/model"
)

// actingPlayer returns the player credited with the play for the event
// types we track. Events outside the list keep whatever generic
// playerId the feed supplies, usually 0.
func actingPlayer(p *Play) int {
	switch p.TypeDescKey {
	case model.TypeGoal:
		return p.Details.ScoringPlayerID
	case model.TypeShotOnGoal, model.TypeMissedShot, model.TypeBlockedShot:
		return p.Details.ShootingPlayerID
	case model.TypeFaceoff:
		return p.Details.WinningPlayerID
	case model.TypeHit:
		return p.Details.HittingPlayerID
	default:
		return p.Details.PlayerID
	}
}

// NormalizeGame converts a raw play-by-play feed plus optional shift
// rows into a GameRecord. Events missing coordinates are kept with
// HasCoords=false rather than dropped, so the timeline stays complete.
func NormalizeGame(pbp *PlayByPlay, shifts []ShiftEntry) (*model.GameRecord, error) {
	if pbp == nil {
		return nil, fmt.Errorf("normalize: nil play-by-play")
	}
	if pbp.HomeTeam.ID == 0 || pbp.AwayTeam.ID == 0 {
		return nil, fmt.Errorf("normalize game %d: missing team identifiers", pbp.ID)
	}

	game := &model.GameRecord{
		GameID:     pbp.ID,
		GameDate:   pbp.GameDate,
		HomeTeamID: pbp.HomeTeam.ID,
		AwayTeamID: pbp.AwayTeam.ID,
	}

	for i := range pbp.Plays {
		play := &pbp.Plays[i]
		ev := model.Event{
			EventID:      play.EventID,
			Period:       play.PeriodDescr.Number,
			TimeInPeriod: play.TimeInPeriod,
			TypeKey:      play.TypeDescKey,
			TeamID:       play.Details.EventOwnerTeamID,
			PlayerID:     actingPlayer(play),
		}
		if play.Details.XCoord != nil && play.Details.YCoord != nil {
			ev.X = *play.Details.XCoord
			ev.Y = *play.Details.YCoord
			ev.HasCoords = true
		}
		// Blocked shots are credited to the shooting team in our model
		// even though the feed owner is the blocking side. The flip
		// happens before the event is stored so the Events and Shots
		// views of the same play always agree.
		if play.TypeDescKey == model.TypeBlockedShot {
			ev.TeamID = otherTeam(ev.TeamID, game.HomeTeamID, game.AwayTeamID)
		}
		game.Events = append(game.Events, ev)

		if model.IsShotType(play.TypeDescKey) {
			game.Shots = append(game.Shots, model.ShotEvent{
				Event:     ev,
				ShooterID: ev.PlayerID,
				Result:    play.TypeDescKey,
				ShotType:  play.Details.ShotType,
			})
		}
	}

	attachOnIce(game, shifts)

	for _, s := range shifts {
		game.Shifts = append(game.Shifts, model.Shift{
			PlayerID:  s.PlayerID,
			TeamID:    s.TeamID,
			Period:    s.Period,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}
	return game, nil
}

func otherTeam(teamID, homeID, awayID int) int {
	if teamID == homeID {
		return awayID
	}
	if teamID == awayID {
		return homeID
	}
	return teamID
}

// attachOnIce fills each shot's on-ice skater lists from the shift
// rows. Without shift data the lists stay empty and the chemistry
// aggregator degrades to shift-free behavior.
func attachOnIce(game *model.GameRecord, shifts []ShiftEntry) {
	if len(shifts) == 0 {
		return
	}
	for i := range game.Shots {
		shot := &game.Shots[i]
		sec := clockSeconds(shot.TimeInPeriod)
		for _, sh := range shifts {
			if sh.Period != shot.Period {
				continue
			}
			start, end := clockSeconds(sh.StartTime), clockSeconds(sh.EndTime)
			if sec < start || sec >= end {
				continue
			}
			switch sh.TeamID {
			case game.HomeTeamID:
				shot.HomeOnIce = append(shot.HomeOnIce, sh.PlayerID)
			case game.AwayTeamID:
				shot.AwayOnIce = append(shot.AwayOnIce, sh.PlayerID)
			}
		}
	}
}

// clockSeconds parses "MM:SS" elapsed time, returning 0 on malformed
// input. Duplicated from the timeline package to keep ingestion free of
// derived-layer imports.
func clockSeconds(clock string) int {
	var m, s int
	if _, err := fmt.Sscanf(clock, "%d:%d", &m, &s); err != nil {
		return 0
	}
	return m*60 + s
}
