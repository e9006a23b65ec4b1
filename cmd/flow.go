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
	flowTeamID   int
	flowPlayerID int
	flowLast     int
)

var flowCmd = &cobra.Command{
	Use:   "flow",
	Short: "Rink flow field built from sequence waypoints",
	Args:  cobra.NoArgs,
	RunE:  runFlow,
}

func init() {
	flowCmd.Flags().IntVar(&flowTeamID, "team", 0, "team ID (required)")
	flowCmd.Flags().IntVar(&flowPlayerID, "player", 0, "restrict to this shooter's sequences")
	flowCmd.Flags().IntVar(&flowLast, "last", 0, "only use the N most recent games")
	_ = flowCmd.MarkFlagRequired("team")
}

func runFlow(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	games, err := loadTeamGames(db, flowTeamID, flowLast)
	if err != nil {
		return err
	}

	seqs := collectSequences(games, flowTeamID, flowPlayerID)
	field := aggregator.ComputeFlowField(seqs)
	report.PrintFlowField(os.Stdout, field)
	return nil
}
