package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-nhl-metrics/internal/aggregator"
	"github.com/pable/go-nhl-metrics/internal/model"
	"github.com/pable/go-nhl-metrics/internal/report"
	"github.com/pable/go-nhl-metrics/internal/storage"
	"github.com/pable/go-nhl-metrics/internal/zones"
)

var (
	fingerprintTeamID   int
	fingerprintPlayerID int
	fingerprintLast     int
)

var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint",
	Short: "Multi-axis attacking style fingerprint",
	Args:  cobra.NoArgs,
	RunE:  runFingerprint,
}

func init() {
	fingerprintCmd.Flags().IntVar(&fingerprintTeamID, "team", 0, "team ID (required)")
	fingerprintCmd.Flags().IntVar(&fingerprintPlayerID, "player", 0, "restrict to this shooter")
	fingerprintCmd.Flags().IntVar(&fingerprintLast, "last", 0, "only use the N most recent games")
	_ = fingerprintCmd.MarkFlagRequired("team")
}

func runFingerprint(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	games, err := loadTeamGames(db, fingerprintTeamID, fingerprintLast)
	if err != nil {
		return err
	}

	seqs := collectSequences(games, fingerprintTeamID, fingerprintPlayerID)
	var entries []model.ZoneEntry
	for i := range games {
		e, _ := zones.DetectTransitions(games[i].Events, fingerprintTeamID)
		entries = append(entries, e...)
	}

	fp := aggregator.ComputeFingerprint(seqs, entries)
	report.PrintFingerprint(os.Stdout, fp)
	return nil
}
