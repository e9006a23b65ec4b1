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
	basicsTeamID int
	basicsLast   int
)

var basicsCmd = &cobra.Command{
	Use:   "basics",
	Short: "Possession proxies and shot-zone mix for a team",
	Args:  cobra.NoArgs,
	RunE:  runBasics,
}

func init() {
	basicsCmd.Flags().IntVar(&basicsTeamID, "team", 0, "team ID (required)")
	basicsCmd.Flags().IntVar(&basicsLast, "last", 0, "only use the N most recent games")
	_ = basicsCmd.MarkFlagRequired("team")
}

func runBasics(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	games, err := loadTeamGames(db, basicsTeamID, basicsLast)
	if err != nil {
		return err
	}

	basics := aggregator.ComputeTeamBasics(games, basicsTeamID)
	report.PrintTeamBasics(os.Stdout, basics)
	return nil
}
