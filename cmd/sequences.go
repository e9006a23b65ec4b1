package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-nhl-metrics/internal/report"
	"github.com/pable/go-nhl-metrics/internal/storage"
)

var (
	sequencesTeamID   int
	sequencesPlayerID int
	sequencesLast     int
)

var sequencesCmd = &cobra.Command{
	Use:   "sequences",
	Short: "Reconstruct and classify attack sequences",
	Args:  cobra.NoArgs,
	RunE:  runSequences,
}

func init() {
	sequencesCmd.Flags().IntVar(&sequencesTeamID, "team", 0, "team ID (required)")
	sequencesCmd.Flags().IntVar(&sequencesPlayerID, "player", 0, "restrict to sequences ending in this shooter's shots")
	sequencesCmd.Flags().IntVar(&sequencesLast, "last", 0, "only use the N most recent games")
	_ = sequencesCmd.MarkFlagRequired("team")
}

func runSequences(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	games, err := loadTeamGames(db, sequencesTeamID, sequencesLast)
	if err != nil {
		return err
	}

	seqs := collectSequences(games, sequencesTeamID, sequencesPlayerID)
	if len(seqs) == 0 {
		fmt.Fprintln(os.Stdout, "No attack sequences could be reconstructed (shots may lack coordinates).")
		return nil
	}
	report.PrintSequences(os.Stdout, seqs)
	return nil
}
