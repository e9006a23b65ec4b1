package storage

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/pable/go-nhl-metrics/internal/model"
)

// GameExists returns true if a game with the given ID is already stored.
func (db *DB) GameExists(gameID int) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM games WHERE game_id = ?", gameID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveGame stores a full game record in one transaction. Uses INSERT OR
// REPLACE throughout so re-fetching a game is idempotent; shift rows for
// the game are wiped first since they carry no natural key.
func (db *DB) SaveGame(game *model.GameRecord, teamAbbrev string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	homeScore, awayScore := finalScore(game)
	_, err = tx.Exec(`
		INSERT OR REPLACE INTO games(game_id, game_date, team_abbrev, home_team_id, away_team_id, home_score, away_score, has_shifts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		game.GameID, game.GameDate, teamAbbrev,
		game.HomeTeamID, game.AwayTeamID,
		homeScore, awayScore, boolInt(len(game.Shifts) > 0),
	)
	if err != nil {
		return fmt.Errorf("insert game %d: %w", game.GameID, err)
	}

	evStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO events(
			game_id, event_id, seq, period, time_in_period,
			type_key, team_id, player_id, x, y, has_coords
		) VALUES (?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer evStmt.Close()

	for i, ev := range game.Events {
		_, err = evStmt.Exec(
			game.GameID, ev.EventID, i, ev.Period, ev.TimeInPeriod,
			ev.TypeKey, ev.TeamID, ev.PlayerID, ev.X, ev.Y, boolInt(ev.HasCoords),
		)
		if err != nil {
			return fmt.Errorf("insert event %d: %w", ev.EventID, err)
		}
	}

	shotStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO shots(
			game_id, event_id, shooter_id, result, shot_type, home_on_ice, away_on_ice
		) VALUES (?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer shotStmt.Close()

	for _, s := range game.Shots {
		_, err = shotStmt.Exec(
			game.GameID, s.EventID, s.ShooterID, s.Result, s.ShotType,
			joinIDs(s.HomeOnIce), joinIDs(s.AwayOnIce),
		)
		if err != nil {
			return fmt.Errorf("insert shot %d: %w", s.EventID, err)
		}
	}

	if _, err := tx.Exec("DELETE FROM shifts WHERE game_id = ?", game.GameID); err != nil {
		return err
	}
	shiftStmt, err := tx.Prepare(`
		INSERT INTO shifts(game_id, player_id, team_id, period, start_time, end_time)
		VALUES (?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer shiftStmt.Close()

	for _, sh := range game.Shifts {
		_, err = shiftStmt.Exec(game.GameID, sh.PlayerID, sh.TeamID, sh.Period, sh.StartTime, sh.EndTime)
		if err != nil {
			return fmt.Errorf("insert shift: %w", err)
		}
	}
	return tx.Commit()
}

// LoadGame reconstructs one stored game. Returns nil, nil when the game
// is not stored.
func (db *DB) LoadGame(gameID int) (*model.GameRecord, error) {
	var game model.GameRecord
	err := db.conn.QueryRow(`
		SELECT game_id, game_date, home_team_id, away_team_id
		FROM games WHERE game_id = ?`, gameID).
		Scan(&game.GameID, &game.GameDate, &game.HomeTeamID, &game.AwayTeamID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := db.loadGameDetail(&game); err != nil {
		return nil, err
	}
	return &game, nil
}

// LoadTeamGames returns every stored game involving the team, ordered by
// game date ascending so windowed comparisons see games chronologically.
func (db *DB) LoadTeamGames(teamID int) ([]model.GameRecord, error) {
	rows, err := db.conn.Query(`
		SELECT game_id, game_date, home_team_id, away_team_id
		FROM games WHERE home_team_id = ? OR away_team_id = ?
		ORDER BY game_date ASC, game_id ASC`, teamID, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []model.GameRecord
	for rows.Next() {
		var g model.GameRecord
		if err := rows.Scan(&g.GameID, &g.GameDate, &g.HomeTeamID, &g.AwayTeamID); err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range games {
		if err := db.loadGameDetail(&games[i]); err != nil {
			return nil, err
		}
	}
	return games, nil
}

// loadGameDetail fills events, shots, and shifts for a game whose header
// row is already populated.
func (db *DB) loadGameDetail(game *model.GameRecord) error {
	rows, err := db.conn.Query(`
		SELECT event_id, period, time_in_period, type_key, team_id, player_id, x, y, has_coords
		FROM events WHERE game_id = ? ORDER BY seq ASC`, game.GameID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var ev model.Event
		var hasCoords int
		if err := rows.Scan(&ev.EventID, &ev.Period, &ev.TimeInPeriod, &ev.TypeKey,
			&ev.TeamID, &ev.PlayerID, &ev.X, &ev.Y, &hasCoords); err != nil {
			return err
		}
		ev.HasCoords = hasCoords != 0
		game.Events = append(game.Events, ev)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	eventByID := make(map[int]model.Event, len(game.Events))
	for _, ev := range game.Events {
		eventByID[ev.EventID] = ev
	}

	shotRows, err := db.conn.Query(`
		SELECT event_id, shooter_id, result, shot_type, home_on_ice, away_on_ice
		FROM shots WHERE game_id = ?`, game.GameID)
	if err != nil {
		return err
	}
	defer shotRows.Close()

	for shotRows.Next() {
		var s model.ShotEvent
		var eventID int
		var home, away string
		if err := shotRows.Scan(&eventID, &s.ShooterID, &s.Result, &s.ShotType, &home, &away); err != nil {
			return err
		}
		s.Event = eventByID[eventID]
		s.HomeOnIce = splitIDs(home)
		s.AwayOnIce = splitIDs(away)
		game.Shots = append(game.Shots, s)
	}
	if err := shotRows.Err(); err != nil {
		return err
	}
	// Restore chronological order; the shots table has no seq column.
	sortShotsByEventOrder(game)

	shiftRows, err := db.conn.Query(`
		SELECT player_id, team_id, period, start_time, end_time
		FROM shifts WHERE game_id = ?`, game.GameID)
	if err != nil {
		return err
	}
	defer shiftRows.Close()

	for shiftRows.Next() {
		var sh model.Shift
		if err := shiftRows.Scan(&sh.PlayerID, &sh.TeamID, &sh.Period, &sh.StartTime, &sh.EndTime); err != nil {
			return err
		}
		game.Shifts = append(game.Shifts, sh)
	}
	return shiftRows.Err()
}

// sortShotsByEventOrder reorders shots to match the event sequence.
func sortShotsByEventOrder(game *model.GameRecord) {
	order := make(map[int]int, len(game.Events))
	for i, ev := range game.Events {
		order[ev.EventID] = i
	}
	shots := game.Shots
	for i := 1; i < len(shots); i++ {
		for j := i; j > 0 && order[shots[j].EventID] < order[shots[j-1].EventID]; j-- {
			shots[j], shots[j-1] = shots[j-1], shots[j]
		}
	}
}

// ListGames returns summaries for all stored games ordered by date desc.
func (db *DB) ListGames() ([]model.GameSummary, error) {
	rows, err := db.conn.Query(`
		SELECT g.game_id, g.game_date, g.team_abbrev, g.home_team_id, g.away_team_id,
		       g.home_score, g.away_score, g.has_shifts,
		       (SELECT COUNT(1) FROM events e WHERE e.game_id = g.game_id),
		       (SELECT COUNT(1) FROM shots s WHERE s.game_id = g.game_id)
		FROM games g ORDER BY g.game_date DESC, g.game_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.GameSummary
	for rows.Next() {
		var s model.GameSummary
		var hasShifts int
		if err := rows.Scan(&s.GameID, &s.GameDate, &s.TeamAbbrev, &s.HomeTeamID, &s.AwayTeamID,
			&s.HomeScore, &s.AwayScore, &hasShifts, &s.EventCount, &s.ShotCount); err != nil {
			return nil, err
		}
		s.HasShifts = hasShifts != 0
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetGameSummary returns the summary for one game, or nil if absent.
func (db *DB) GetGameSummary(gameID int) (*model.GameSummary, error) {
	var s model.GameSummary
	var hasShifts int
	err := db.conn.QueryRow(`
		SELECT g.game_id, g.game_date, g.team_abbrev, g.home_team_id, g.away_team_id,
		       g.home_score, g.away_score, g.has_shifts,
		       (SELECT COUNT(1) FROM events e WHERE e.game_id = g.game_id),
		       (SELECT COUNT(1) FROM shots s WHERE s.game_id = g.game_id)
		FROM games g WHERE g.game_id = ?`, gameID).
		Scan(&s.GameID, &s.GameDate, &s.TeamAbbrev, &s.HomeTeamID, &s.AwayTeamID,
			&s.HomeScore, &s.AwayScore, &hasShifts, &s.EventCount, &s.ShotCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.HasShifts = hasShifts != 0
	return &s, nil
}

// DeleteGame removes a game and its dependent rows.
func (db *DB) DeleteGame(gameID int) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"shifts", "shots", "events", "games"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE game_id = ?", gameID); err != nil {
			return fmt.Errorf("delete from %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// SaveRoster replaces the stored roster for a team.
func (db *DB) SaveRoster(teamAbbrev string, players []model.RosterEntry) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM roster WHERE team_abbrev = ?", teamAbbrev); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO roster(team_abbrev, player_id, name, sweater, position)
		VALUES (?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range players {
		if _, err := stmt.Exec(teamAbbrev, p.PlayerID, p.Name, p.Sweater, p.Position); err != nil {
			return fmt.Errorf("insert roster %d: %w", p.PlayerID, err)
		}
	}
	return tx.Commit()
}

// PlayerName returns the stored roster name for a player, or empty string.
func (db *DB) PlayerName(playerID int) (string, error) {
	var name string
	err := db.conn.QueryRow("SELECT name FROM roster WHERE player_id = ? LIMIT 1", playerID).Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return name, err
}

func finalScore(game *model.GameRecord) (home, away int) {
	for _, ev := range game.Events {
		if ev.TypeKey != model.TypeGoal {
			continue
		}
		if ev.TeamID == game.HomeTeamID {
			home++
		} else if ev.TeamID == game.AwayTeamID {
			away++
		}
	}
	return home, away
}

func joinIDs(ids []int) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

func splitIDs(s string) []int {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(p)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
