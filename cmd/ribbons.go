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
	ribbonsTeamID   int
	ribbonsPlayerID int
	ribbonsLast     int
	ribbonsTop      int
)

var ribbonsCmd = &cobra.Command{
	Use:   "ribbons",
	Short: "Averaged attack paths per archetype",
	Args:  cobra.NoArgs,
	RunE:  runRibbons,
}

func init() {
	ribbonsCmd.Flags().IntVar(&ribbonsTeamID, "team", 0, "team ID (required)")
	ribbonsCmd.Flags().IntVar(&ribbonsPlayerID, "player", 0, "restrict to this shooter's sequences")
	ribbonsCmd.Flags().IntVar(&ribbonsLast, "last", 0, "only use the N most recent games")
	ribbonsCmd.Flags().IntVar(&ribbonsTop, "top", aggregator.DefaultRibbonCount, "number of archetype groups to show")
	_ = ribbonsCmd.MarkFlagRequired("team")
}

func runRibbons(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	games, err := loadTeamGames(db, ribbonsTeamID, ribbonsLast)
	if err != nil {
		return err
	}

	seqs := collectSequences(games, ribbonsTeamID, ribbonsPlayerID)
	ribbons := aggregator.GenerateAttackRibbons(seqs, ribbonsTop)
	if len(ribbons) == 0 {
		fmt.Fprintln(os.Stdout, "No sequences to build ribbons from.")
		return nil
	}
	report.PrintRibbons(os.Stdout, ribbons)
	return nil
}
