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
	evolutionTeamID   int
	evolutionPlayerID int
	evolutionWindow   int
	evolutionBaseline string
)

var evolutionCmd = &cobra.Command{
	Use:   "evolution",
	Short: "Behavioral change between rolling game windows",
	Long: `Compares the most recent N games against either the N games before
them (--baseline window) or the whole earlier season (--baseline season)
and reports which behavioral metrics moved, by how much, and the
overall trend.`,
	Args: cobra.NoArgs,
	RunE: runEvolution,
}

func init() {
	evolutionCmd.Flags().IntVar(&evolutionTeamID, "team", 0, "team ID (required)")
	evolutionCmd.Flags().IntVar(&evolutionPlayerID, "player", 0, "restrict to this shooter")
	evolutionCmd.Flags().IntVar(&evolutionWindow, "window", 10, "window size in games")
	evolutionCmd.Flags().StringVar(&evolutionBaseline, "baseline", aggregator.VersusPriorWindow,
		"comparison baseline: window or season")
	_ = evolutionCmd.MarkFlagRequired("team")
}

func runEvolution(cmd *cobra.Command, args []string) error {
	if evolutionBaseline != aggregator.VersusPriorWindow && evolutionBaseline != aggregator.VersusSeason {
		return fmt.Errorf("invalid --baseline %q: use %q or %q",
			evolutionBaseline, aggregator.VersusPriorWindow, aggregator.VersusSeason)
	}
	if evolutionWindow < 1 {
		return fmt.Errorf("--window must be at least 1")
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	games, err := loadTeamGames(db, evolutionTeamID, 0)
	if err != nil {
		return err
	}
	if len(games) <= evolutionWindow {
		return fmt.Errorf("need more than %d stored games for a %d-game window (have %d)",
			evolutionWindow, evolutionWindow, len(games))
	}

	rep := aggregator.CompareWindows(games, evolutionTeamID, evolutionPlayerID, evolutionWindow, evolutionBaseline)
	report.PrintEvolution(os.Stdout, rep)
	return nil
}
