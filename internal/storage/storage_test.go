package storage

import (
	"testing"

	"github.com/pable/go-nhl-metrics/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleGame() *model.GameRecord {
	events := []model.Event{
		{EventID: 1, Period: 1, TimeInPeriod: "00:00", TypeKey: model.TypeFaceoff, TeamID: 10, PlayerID: 100, X: 0, Y: 0, HasCoords: true},
		{EventID: 2, Period: 1, TimeInPeriod: "01:30", TypeKey: model.TypeShotOnGoal, TeamID: 10, PlayerID: 100, X: 80, Y: 5, HasCoords: true},
		{EventID: 3, Period: 2, TimeInPeriod: "05:00", TypeKey: model.TypeGoal, TeamID: 20, PlayerID: 200, X: -82, Y: -3, HasCoords: true},
		{EventID: 4, Period: 3, TimeInPeriod: "12:00", TypeKey: model.TypeStoppage},
	}
	return &model.GameRecord{
		GameID:     2024020001,
		GameDate:   "2024-10-08",
		HomeTeamID: 10,
		AwayTeamID: 20,
		Events:     events,
		Shots: []model.ShotEvent{
			{Event: events[1], ShooterID: 100, Result: model.TypeShotOnGoal, ShotType: "wrist", HomeOnIce: []int{100, 101}, AwayOnIce: []int{200}},
			{Event: events[2], ShooterID: 200, Result: model.TypeGoal, ShotType: "snap"},
		},
		Shifts: []model.Shift{
			{PlayerID: 100, TeamID: 10, Period: 1, StartTime: "00:00", EndTime: "00:45"},
		},
	}
}

func TestSaveGameAndExists(t *testing.T) {
	db := openMemDB(t)

	game := sampleGame()
	if err := db.SaveGame(game, "TOR"); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}

	exists, err := db.GameExists(game.GameID)
	if err != nil {
		t.Fatalf("GameExists: %v", err)
	}
	if !exists {
		t.Error("expected game to exist after save")
	}

	exists2, _ := db.GameExists(999)
	if exists2 {
		t.Error("expected unknown game to not exist")
	}
}

func TestLoadGameRoundTrip(t *testing.T) {
	db := openMemDB(t)

	game := sampleGame()
	if err := db.SaveGame(game, "TOR"); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}

	got, err := db.LoadGame(game.GameID)
	if err != nil {
		t.Fatalf("LoadGame: %v", err)
	}
	if got == nil {
		t.Fatal("expected stored game, got nil")
	}
	if got.GameDate != "2024-10-08" || got.HomeTeamID != 10 || got.AwayTeamID != 20 {
		t.Errorf("header mismatch: %+v", got)
	}
	if len(got.Events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(got.Events))
	}
	if got.Events[3].TypeKey != model.TypeStoppage || got.Events[3].HasCoords {
		t.Errorf("stoppage event mismatch: %+v", got.Events[3])
	}
	if len(got.Shots) != 2 {
		t.Fatalf("expected 2 shots, got %d", len(got.Shots))
	}
	// Shots come back in event order.
	if got.Shots[0].EventID != 2 || got.Shots[1].EventID != 3 {
		t.Errorf("shot order mismatch: %d, %d", got.Shots[0].EventID, got.Shots[1].EventID)
	}
	if len(got.Shots[0].HomeOnIce) != 2 || got.Shots[0].HomeOnIce[1] != 101 {
		t.Errorf("on-ice list mismatch: %v", got.Shots[0].HomeOnIce)
	}
	if len(got.Shots[1].HomeOnIce) != 0 {
		t.Errorf("expected empty on-ice list, got %v", got.Shots[1].HomeOnIce)
	}
	if len(got.Shifts) != 1 || got.Shifts[0].EndTime != "00:45" {
		t.Errorf("shift mismatch: %+v", got.Shifts)
	}

	missing, err := db.LoadGame(999)
	if err != nil {
		t.Fatalf("LoadGame missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown game")
	}
}

func TestSaveGameIdempotent(t *testing.T) {
	db := openMemDB(t)

	game := sampleGame()
	if err := db.SaveGame(game, "TOR"); err != nil {
		t.Fatalf("first SaveGame: %v", err)
	}
	if err := db.SaveGame(game, "TOR"); err != nil {
		t.Fatalf("second SaveGame should succeed: %v", err)
	}

	got, err := db.LoadGame(game.GameID)
	if err != nil {
		t.Fatalf("LoadGame: %v", err)
	}
	if len(got.Events) != 4 || len(got.Shots) != 2 || len(got.Shifts) != 1 {
		t.Errorf("re-save duplicated rows: events=%d shots=%d shifts=%d",
			len(got.Events), len(got.Shots), len(got.Shifts))
	}
}

func TestListGames(t *testing.T) {
	db := openMemDB(t)

	g1 := sampleGame()
	g2 := sampleGame()
	g2.GameID = 2024020002
	g2.GameDate = "2024-10-10"
	if err := db.SaveGame(g1, "TOR"); err != nil {
		t.Fatalf("SaveGame g1: %v", err)
	}
	if err := db.SaveGame(g2, "TOR"); err != nil {
		t.Fatalf("SaveGame g2: %v", err)
	}

	list, err := db.ListGames()
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 games, got %d", len(list))
	}
	// Ordered by game_date DESC so the newer game is first.
	if list[0].GameID != 2024020002 {
		t.Errorf("expected newest game first, got %d", list[0].GameID)
	}
	if list[0].EventCount != 4 || list[0].ShotCount != 2 {
		t.Errorf("counts mismatch: events=%d shots=%d", list[0].EventCount, list[0].ShotCount)
	}
	if list[0].HomeScore != 0 || list[0].AwayScore != 1 {
		t.Errorf("score mismatch: %d-%d", list[0].HomeScore, list[0].AwayScore)
	}
	if !list[0].HasShifts {
		t.Error("expected HasShifts true")
	}
}

func TestLoadTeamGamesOrder(t *testing.T) {
	db := openMemDB(t)

	g1 := sampleGame()
	g2 := sampleGame()
	g2.GameID = 2024020002
	g2.GameDate = "2024-10-10"
	// Save newest first to confirm ordering comes from the query.
	if err := db.SaveGame(g2, "TOR"); err != nil {
		t.Fatalf("SaveGame g2: %v", err)
	}
	if err := db.SaveGame(g1, "TOR"); err != nil {
		t.Fatalf("SaveGame g1: %v", err)
	}

	games, err := db.LoadTeamGames(10)
	if err != nil {
		t.Fatalf("LoadTeamGames: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}
	if games[0].GameID != 2024020001 || games[1].GameID != 2024020002 {
		t.Errorf("expected chronological order, got %d then %d", games[0].GameID, games[1].GameID)
	}

	none, err := db.LoadTeamGames(77)
	if err != nil {
		t.Fatalf("LoadTeamGames unknown team: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no games for unknown team, got %d", len(none))
	}
}

func TestDeleteGame(t *testing.T) {
	db := openMemDB(t)

	game := sampleGame()
	if err := db.SaveGame(game, "TOR"); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}
	if err := db.DeleteGame(game.GameID); err != nil {
		t.Fatalf("DeleteGame: %v", err)
	}

	exists, _ := db.GameExists(game.GameID)
	if exists {
		t.Error("expected game gone after delete")
	}
	var count int
	if err := db.Conn().QueryRow("SELECT COUNT(1) FROM events").Scan(&count); err != nil {
		t.Fatalf("count events: %v", err)
	}
	if count != 0 {
		t.Errorf("expected dependent event rows deleted, got %d", count)
	}
}

func TestRosterRoundTrip(t *testing.T) {
	db := openMemDB(t)

	players := []model.RosterEntry{
		{PlayerID: 100, Name: "Auston Matthews", Sweater: 34, Position: "C"},
		{PlayerID: 101, Name: "William Nylander", Sweater: 88, Position: "R"},
	}
	if err := db.SaveRoster("TOR", players); err != nil {
		t.Fatalf("SaveRoster: %v", err)
	}

	name, err := db.PlayerName(101)
	if err != nil {
		t.Fatalf("PlayerName: %v", err)
	}
	if name != "William Nylander" {
		t.Errorf("unexpected name %q", name)
	}

	unknown, err := db.PlayerName(999)
	if err != nil {
		t.Fatalf("PlayerName unknown: %v", err)
	}
	if unknown != "" {
		t.Errorf("expected empty name, got %q", unknown)
	}

	// Re-saving replaces rather than appends.
	if err := db.SaveRoster("TOR", players[:1]); err != nil {
		t.Fatalf("second SaveRoster: %v", err)
	}
	gone, _ := db.PlayerName(101)
	if gone != "" {
		t.Error("expected replaced roster to drop player 101")
	}
}
