package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-nhl-metrics/internal/model"
	"github.com/pable/go-nhl-metrics/internal/report"
	"github.com/pable/go-nhl-metrics/internal/storage"
	"github.com/pable/go-nhl-metrics/internal/zones"
)

var (
	entriesTeamID int
	entriesLast   int
)

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "Detect zone entries and exits",
	Args:  cobra.NoArgs,
	RunE:  runEntries,
}

func init() {
	entriesCmd.Flags().IntVar(&entriesTeamID, "team", 0, "team ID (required)")
	entriesCmd.Flags().IntVar(&entriesLast, "last", 0, "only use the N most recent games")
	_ = entriesCmd.MarkFlagRequired("team")
}

func runEntries(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	games, err := loadTeamGames(db, entriesTeamID, entriesLast)
	if err != nil {
		return err
	}

	var entries []model.ZoneEntry
	var exits []model.ZoneExit
	for i := range games {
		e, x := zones.DetectTransitions(games[i].Events, entriesTeamID)
		entries = append(entries, e...)
		exits = append(exits, x...)
	}
	if len(entries) == 0 && len(exits) == 0 {
		fmt.Fprintln(os.Stdout, "No zone transitions detected.")
		return nil
	}
	report.PrintEntries(os.Stdout, entries, exits)
	return nil
}
