package nhl

import (
	"testing"

	"github.com/pable/go-nhl-metrics/internal/model"
	"github.com/pable/go-nhl-metrics/internal/sequence"
)

const (
	homeTeamID = 10
	awayTeamID = 20
)

func floatPtr(v float64) *float64 { return &v }

func makePlay(eventID int, typeKey, clock string, teamID int, x, y *float64) Play {
	p := Play{
		EventID:      eventID,
		TypeDescKey:  typeKey,
		TimeInPeriod: clock,
	}
	p.PeriodDescr.Number = 1
	p.Details.EventOwnerTeamID = teamID
	p.Details.XCoord = x
	p.Details.YCoord = y
	return p
}

func makeFeed(plays ...Play) *PlayByPlay {
	pbp := &PlayByPlay{ID: 2024020001, GameDate: "2024-10-08", Plays: plays}
	pbp.HomeTeam.ID = homeTeamID
	pbp.HomeTeam.Abbrev = "TOR"
	pbp.AwayTeam.ID = awayTeamID
	pbp.AwayTeam.Abbrev = "MTL"
	return pbp
}

func TestNormalizeGameRejectsBadFeed(t *testing.T) {
	if _, err := NormalizeGame(nil, nil); err == nil {
		t.Error("nil feed should error")
	}

	pbp := makeFeed()
	pbp.HomeTeam.ID = 0
	if _, err := NormalizeGame(pbp, nil); err == nil {
		t.Error("missing team identifiers should error")
	}
}

func TestNormalizeGameEvents(t *testing.T) {
	shot := makePlay(1, "shot-on-goal", "05:00", homeTeamID, floatPtr(80), floatPtr(5))
	shot.Details.ShootingPlayerID = 111
	shot.Details.ShotType = "wrist"

	goal := makePlay(2, "goal", "06:00", homeTeamID, floatPtr(85), floatPtr(0))
	goal.Details.ScoringPlayerID = 222

	stoppage := makePlay(3, "stoppage", "06:10", 0, nil, nil)

	game, err := NormalizeGame(makeFeed(shot, goal, stoppage), nil)
	if err != nil {
		t.Fatalf("NormalizeGame: %v", err)
	}

	if game.GameID != 2024020001 || game.HomeTeamID != homeTeamID || game.AwayTeamID != awayTeamID {
		t.Fatalf("game identity: %+v", game)
	}
	if len(game.Events) != 3 {
		t.Fatalf("expected all 3 events kept, got %d", len(game.Events))
	}
	if len(game.Shots) != 2 {
		t.Fatalf("expected 2 shots, got %d", len(game.Shots))
	}

	if game.Shots[0].ShooterID != 111 || game.Shots[0].ShotType != "wrist" {
		t.Errorf("shot attribution: %+v", game.Shots[0])
	}
	if game.Shots[1].ShooterID != 222 || game.Shots[1].Result != model.TypeGoal {
		t.Errorf("goal attribution: %+v", game.Shots[1])
	}

	// Coordless events stay on the timeline with HasCoords unset.
	if game.Events[2].HasCoords {
		t.Error("stoppage without coordinates should carry HasCoords=false")
	}
	if !game.Events[0].HasCoords || game.Events[0].X != 80 {
		t.Errorf("located event: %+v", game.Events[0])
	}
}

func TestNormalizeGameFlipsBlockedShots(t *testing.T) {
	// The feed credits the blocking side with the event; the shot must
	// belong to the shooting team.
	blocked := makePlay(1, "blocked-shot", "05:00", awayTeamID, floatPtr(60), floatPtr(0))
	blocked.Details.ShootingPlayerID = 111
	blocked.Details.BlockingPlayerID = 999

	game, err := NormalizeGame(makeFeed(blocked), nil)
	if err != nil {
		t.Fatalf("NormalizeGame: %v", err)
	}
	if len(game.Shots) != 1 {
		t.Fatalf("expected 1 shot, got %d", len(game.Shots))
	}
	if game.Shots[0].TeamID != homeTeamID {
		t.Errorf("blocked shot team = %d, want shooting side %d", game.Shots[0].TeamID, homeTeamID)
	}
	if game.Shots[0].ShooterID != 111 {
		t.Errorf("blocked shot shooter = %d, want 111", game.Shots[0].ShooterID)
	}
	// Both views of the play carry the flipped team, keeping Shots a
	// true subset of Events.
	if game.Events[0].TeamID != game.Shots[0].TeamID {
		t.Errorf("event team %d disagrees with shot team %d",
			game.Events[0].TeamID, game.Shots[0].TeamID)
	}
}

func TestNormalizeGameBlockedShotKeepsPossessionChain(t *testing.T) {
	// A teammate's blocked attempt between faceoff win and shot must
	// read as the shooting team's event downstream: it neither breaks
	// the possession origin search nor hides the rebound.
	faceoff := makePlay(1, "faceoff", "05:00", homeTeamID, floatPtr(70), floatPtr(0))
	faceoff.Details.WinningPlayerID = 111

	blocked := makePlay(2, "blocked-shot", "05:04", awayTeamID, floatPtr(80), floatPtr(2))
	blocked.Details.ShootingPlayerID = 112
	blocked.Details.BlockingPlayerID = 999

	follow := makePlay(3, "shot-on-goal", "05:06", homeTeamID, floatPtr(84), floatPtr(0))
	follow.Details.ShootingPlayerID = 111

	game, err := NormalizeGame(makeFeed(faceoff, blocked, follow), nil)
	if err != nil {
		t.Fatalf("NormalizeGame: %v", err)
	}

	seqs := sequence.Reconstruct(game, homeTeamID, 0)
	if len(seqs) != 2 {
		t.Fatalf("expected 2 sequences, got %d", len(seqs))
	}

	last := seqs[1]
	if last.Origin.Trigger != model.TriggerFaceoff {
		t.Errorf("origin trigger = %s, want faceoff", last.Origin.Trigger)
	}
	if !last.Rebound {
		t.Error("shot 2 seconds after the blocked attempt should be a rebound")
	}
}

func TestNormalizeGameAttachesOnIce(t *testing.T) {
	shot := makePlay(1, "shot-on-goal", "05:00", homeTeamID, floatPtr(80), floatPtr(0))
	shot.Details.ShootingPlayerID = 111

	shifts := []ShiftEntry{
		{PlayerID: 111, TeamID: homeTeamID, Period: 1, StartTime: "04:30", EndTime: "05:30"},
		{PlayerID: 112, TeamID: homeTeamID, Period: 1, StartTime: "05:00", EndTime: "06:00"}, // starts at the shot
		{PlayerID: 113, TeamID: homeTeamID, Period: 1, StartTime: "04:00", EndTime: "05:00"}, // ended at the shot
		{PlayerID: 114, TeamID: homeTeamID, Period: 2, StartTime: "04:30", EndTime: "05:30"}, // wrong period
		{PlayerID: 221, TeamID: awayTeamID, Period: 1, StartTime: "04:30", EndTime: "05:30"},
	}

	game, err := NormalizeGame(makeFeed(shot), shifts)
	if err != nil {
		t.Fatalf("NormalizeGame: %v", err)
	}

	got := game.Shots[0]
	wantHome := []int{111, 112}
	if len(got.HomeOnIce) != len(wantHome) {
		t.Fatalf("HomeOnIce = %v, want %v", got.HomeOnIce, wantHome)
	}
	for i, id := range wantHome {
		if got.HomeOnIce[i] != id {
			t.Errorf("HomeOnIce[%d] = %d, want %d", i, got.HomeOnIce[i], id)
		}
	}
	if len(got.AwayOnIce) != 1 || got.AwayOnIce[0] != 221 {
		t.Errorf("AwayOnIce = %v, want [221]", got.AwayOnIce)
	}
	if len(game.Shifts) != len(shifts) {
		t.Errorf("carried %d shifts, want %d", len(game.Shifts), len(shifts))
	}
}
