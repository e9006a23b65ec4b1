package cmd

import (
	"fmt"

	"github.com/pable/go-nhl-metrics/internal/model"
	"github.com/pable/go-nhl-metrics/internal/sequence"
	"github.com/pable/go-nhl-metrics/internal/storage"
)

// loadTeamGames returns the stored games for a team in chronological
// order, optionally truncated to the most recent n.
func loadTeamGames(db *storage.DB, teamID, last int) ([]model.GameRecord, error) {
	games, err := db.LoadTeamGames(teamID)
	if err != nil {
		return nil, fmt.Errorf("load games: %w", err)
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("no stored games for team %d; run 'nhlmetrics fetch' first", teamID)
	}
	if last > 0 && last < len(games) {
		games = games[len(games)-last:]
	}
	return games, nil
}

// collectSequences reconstructs attack sequences across a game set.
func collectSequences(games []model.GameRecord, teamID, playerID int) []model.AttackSequence {
	var seqs []model.AttackSequence
	for i := range games {
		seqs = append(seqs, sequence.Reconstruct(&games[i], teamID, playerID)...)
	}
	return seqs
}
