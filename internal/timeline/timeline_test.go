package timeline

import (
	"math"
	"testing"

	"github.com/pable/go-nhl-metrics/internal/model"
)

// Team IDs used across the timeline tests.
const (
	homeTeam = 10
	awayTeam = 20
	shooterA = 8471234
	shooterB = 8475678
)

func goalEvent(id, period int, clock string, teamID int) model.Event {
	return model.Event{
		EventID:      id,
		Period:       period,
		TimeInPeriod: clock,
		TypeKey:      model.TypeGoal,
		TeamID:       teamID,
	}
}

// makeShot builds a located shot-on-goal for teamID.
func makeShot(id, period int, clock string, teamID, shooterID int, x, y float64) model.ShotEvent {
	return model.ShotEvent{
		Event: model.Event{
			EventID:      id,
			Period:       period,
			TimeInPeriod: clock,
			TypeKey:      model.TypeShotOnGoal,
			TeamID:       teamID,
			PlayerID:     shooterID,
			X:            x,
			Y:            y,
			HasCoords:    true,
		},
		ShooterID: shooterID,
		Result:    model.TypeShotOnGoal,
	}
}

// ---- Clock parsing ----

func TestParseClock(t *testing.T) {
	cases := []struct {
		clock string
		want  int
	}{
		{"00:00", 0},
		{"05:30", 330},
		{"19:59", 1199},
		{"", 0},
		{"garbage", 0},
		{"05", 0},
		{"-1:30", 0},
		{"05:-2", 0},
	}
	for _, tc := range cases {
		if got := ParseClock(tc.clock); got != tc.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tc.clock, got, tc.want)
		}
	}
}

func TestMomentLE(t *testing.T) {
	if !MomentLE(1, 500, 2, 0) {
		t.Error("earlier period should compare before any clock of a later one")
	}
	if MomentLE(3, 10, 2, 1199) {
		t.Error("later period should not compare before an earlier one")
	}
	if !MomentLE(2, 300, 2, 300) {
		t.Error("identical moments should compare as at-or-before")
	}
	if MomentLE(2, 301, 2, 300) {
		t.Error("later clock within the same period should not compare before")
	}
}

// ---- Score timeline ----

func TestStateAtBeforeAnyGoal(t *testing.T) {
	tl := BuildScoreTimeline([]model.Event{goalEvent(1, 2, "10:00", homeTeam)}, homeTeam)

	state := tl.StateAt(homeTeam, 1, "15:00")
	if state.Situation != model.StateTied || state.Diff != 0 {
		t.Errorf("expected tied/0 before any goal, got %s/%d", state.Situation, state.Diff)
	}
}

func TestStateAtPerspectives(t *testing.T) {
	events := []model.Event{
		goalEvent(1, 1, "05:00", homeTeam),
		goalEvent(2, 2, "03:00", homeTeam),
		goalEvent(3, 2, "08:00", awayTeam),
	}
	tl := BuildScoreTimeline(events, homeTeam)

	home := tl.StateAt(homeTeam, 2, "10:00")
	if home.Situation != model.StateLeading || home.Diff != 1 {
		t.Errorf("home at 2-1: got %s/%d", home.Situation, home.Diff)
	}
	away := tl.StateAt(awayTeam, 2, "10:00")
	if away.Situation != model.StateTrailing || away.Diff != -1 {
		t.Errorf("away at 2-1: got %s/%d", away.Situation, away.Diff)
	}
}

func TestStateAtIncludesGoalAtExactMoment(t *testing.T) {
	tl := BuildScoreTimeline([]model.Event{goalEvent(1, 1, "05:00", homeTeam)}, homeTeam)

	state := tl.StateAt(homeTeam, 1, "05:00")
	if state.Situation != model.StateLeading {
		t.Errorf("goal at the queried moment should count, got %s", state.Situation)
	}
}

func TestStateAtOutOfOrderMoments(t *testing.T) {
	// Period 2 goal listed before the period 1 goal: the lookup must
	// still pick the chronologically latest moment at or before the
	// query, not the last list entry.
	events := []model.Event{
		goalEvent(2, 2, "01:00", awayTeam),
		goalEvent(1, 1, "05:00", homeTeam),
	}
	tl := BuildScoreTimeline(events, homeTeam)

	state := tl.StateAt(homeTeam, 1, "10:00")
	if state.Situation != model.StateLeading || state.Diff != 1 {
		t.Errorf("mid-period-1 state: got %s/%d, want leading/1", state.Situation, state.Diff)
	}

	// The cumulative score after both goals must not depend on the
	// list order either.
	state = tl.StateAt(homeTeam, 2, "10:00")
	if state.Situation != model.StateTied || state.Diff != 0 {
		t.Errorf("period-2 state: got %s/%d, want tied/0", state.Situation, state.Diff)
	}
}

// ---- Shot geometry ----

func TestShotDistanceBothEnds(t *testing.T) {
	if d := ShotDistance(89, 0); d != 0 {
		t.Errorf("shot at the positive goal mouth: distance %f", d)
	}
	if d := ShotDistance(-89, 0); d != 0 {
		t.Errorf("shot at the negative goal mouth: distance %f", d)
	}
	want := math.Hypot(25, 0)
	if d := ShotDistance(64, 0); math.Abs(d-want) > 1e-9 {
		t.Errorf("ShotDistance(64, 0) = %f, want %f", d, want)
	}
	if d := ShotDistance(-64, 0); math.Abs(d-want) > 1e-9 {
		t.Errorf("ShotDistance(-64, 0) = %f, want %f", d, want)
	}
}

func TestIsHighDangerBoundaries(t *testing.T) {
	cases := []struct {
		dist, y float64
		want    bool
	}{
		{25, 0, true},    // distance boundary inclusive
		{25.01, 0, false},
		{20, 20, true},   // lateral boundary inclusive
		{20, -20, true},
		{20, 20.01, false},
	}
	for _, tc := range cases {
		if got := IsHighDanger(tc.dist, tc.y); got != tc.want {
			t.Errorf("IsHighDanger(%f, %f) = %v, want %v", tc.dist, tc.y, got, tc.want)
		}
	}
}

// ---- Shot enrichment ----

func TestEnrichShotsFilters(t *testing.T) {
	game := &model.GameRecord{
		GameID:     1,
		HomeTeamID: homeTeam,
		AwayTeamID: awayTeam,
		Shots: []model.ShotEvent{
			makeShot(1, 1, "01:00", homeTeam, shooterA, 80, 0),
			makeShot(2, 1, "02:00", homeTeam, shooterB, 80, 0),
			makeShot(3, 1, "03:00", awayTeam, shooterA, -80, 0),
		},
	}

	all := EnrichShots(game, homeTeam, 0)
	if len(all) != 2 {
		t.Fatalf("expected 2 home shots, got %d", len(all))
	}
	only := EnrichShots(game, homeTeam, shooterA)
	if len(only) != 1 || only[0].ShooterID != shooterA {
		t.Fatalf("shooter filter returned %d shots", len(only))
	}
}

func TestEnrichShotsLateGame(t *testing.T) {
	game := &model.GameRecord{
		HomeTeamID: homeTeam,
		AwayTeamID: awayTeam,
		Shots: []model.ShotEvent{
			makeShot(1, 3, "15:00", homeTeam, shooterA, 80, 0), // 300 remaining
			makeShot(2, 3, "14:59", homeTeam, shooterA, 80, 0), // 301 remaining
			makeShot(3, 2, "19:00", homeTeam, shooterA, 80, 0), // too early a period
			makeShot(4, 4, "16:00", homeTeam, shooterA, 80, 0), // overtime, inside the window
			makeShot(5, 4, "01:00", homeTeam, shooterA, 80, 0), // overtime, but 1140 remaining
		},
	}

	shots := EnrichShots(game, homeTeam, 0)
	if len(shots) != 5 {
		t.Fatalf("expected 5 shots, got %d", len(shots))
	}
	wantLate := []bool{true, false, false, true, false}
	for i, shot := range shots {
		if shot.LateGame != wantLate[i] {
			t.Errorf("shot %d: LateGame = %v, want %v (remaining %d)",
				shot.EventID, shot.LateGame, wantLate[i], shot.TimeRemaining)
		}
	}
	if shots[0].TimeRemaining != 300 {
		t.Errorf("shot 1 TimeRemaining = %d, want 300", shots[0].TimeRemaining)
	}
}

func TestEnrichShotsUnlocated(t *testing.T) {
	shot := makeShot(1, 1, "05:00", homeTeam, shooterA, 88, 0)
	shot.HasCoords = false
	game := &model.GameRecord{
		HomeTeamID: homeTeam,
		AwayTeamID: awayTeam,
		Shots:      []model.ShotEvent{shot},
	}

	shots := EnrichShots(game, homeTeam, 0)
	if len(shots) != 1 {
		t.Fatalf("unlocated shot must still be enriched, got %d shots", len(shots))
	}
	if shots[0].Distance != 0 || shots[0].HighDanger {
		t.Errorf("unlocated shot: Distance=%f HighDanger=%v, want zero values",
			shots[0].Distance, shots[0].HighDanger)
	}
}

func TestEnrichShotsGameState(t *testing.T) {
	game := &model.GameRecord{
		HomeTeamID: homeTeam,
		AwayTeamID: awayTeam,
		Events: []model.Event{
			goalEvent(10, 1, "08:00", awayTeam),
		},
		Shots: []model.ShotEvent{
			makeShot(1, 1, "05:00", homeTeam, shooterA, 80, 0),
			makeShot(2, 1, "10:00", homeTeam, shooterA, 80, 0),
		},
	}

	shots := EnrichShots(game, homeTeam, 0)
	if shots[0].State.Situation != model.StateTied {
		t.Errorf("pre-goal shot state = %s, want tied", shots[0].State.Situation)
	}
	if shots[1].State.Situation != model.StateTrailing || shots[1].State.Diff != -1 {
		t.Errorf("post-goal shot state = %s/%d, want trailing/-1",
			shots[1].State.Situation, shots[1].State.Diff)
	}
}
