package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-nhl-metrics/internal/aggregator"
	"github.com/pable/go-nhl-metrics/internal/report"
	"github.com/pable/go-nhl-metrics/internal/storage"
)

var (
	decisionsTeamID   int
	decisionsPlayerID int
	decisionsLast     int
)

var decisionsCmd = &cobra.Command{
	Use:   "decisions",
	Short: "Game-state decision quality metrics",
	Long: `Partitions a team's (or player's) shots by score situation and
reports high-danger rates, possession style mix, and the patience,
awareness, and late-game poise scores.`,
	Args: cobra.NoArgs,
	RunE: runDecisions,
}

func init() {
	decisionsCmd.Flags().IntVar(&decisionsTeamID, "team", 0, "team ID (required)")
	decisionsCmd.Flags().IntVar(&decisionsPlayerID, "player", 0, "restrict to this shooter")
	decisionsCmd.Flags().IntVar(&decisionsLast, "last", 0, "only use the N most recent games")
	_ = decisionsCmd.MarkFlagRequired("team")
}

func runDecisions(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	games, err := loadTeamGames(db, decisionsTeamID, decisionsLast)
	if err != nil {
		return err
	}

	metrics := aggregator.ComputeDecisions(games, decisionsTeamID, decisionsPlayerID)
	report.PrintDecisions(os.Stdout, metrics)
	return nil
}
