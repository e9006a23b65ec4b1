package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-nhl-metrics/internal/aggregator"
	"github.com/pable/go-nhl-metrics/internal/model"
	"github.com/pable/go-nhl-metrics/internal/report"
	"github.com/pable/go-nhl-metrics/internal/storage"
)

var (
	chemistryTeamID  int
	chemistryPlayer1 int
	chemistryPlayer2 int
	chemistryLast    int
	chemistryTop     int
)

var chemistryCmd = &cobra.Command{
	Use:   "chemistry",
	Short: "Pair chemistry from shared ice time",
	Long: `Scores how well player pairs produce together, from shots with both
players on the ice and overlapping shifts. With --p1 and --p2, scores a
single pair; otherwise ranks every roster pair. Shift-dependent parts
degrade gracefully for games stored without shift charts.`,
	Args: cobra.NoArgs,
	RunE: runChemistry,
}

func init() {
	chemistryCmd.Flags().IntVar(&chemistryTeamID, "team", 0, "team ID (required)")
	chemistryCmd.Flags().IntVar(&chemistryPlayer1, "p1", 0, "first player of a specific pair")
	chemistryCmd.Flags().IntVar(&chemistryPlayer2, "p2", 0, "second player of a specific pair")
	chemistryCmd.Flags().IntVar(&chemistryLast, "last", 0, "only use the N most recent games")
	chemistryCmd.Flags().IntVar(&chemistryTop, "top", 20, "number of pairs to show in matrix mode")
	_ = chemistryCmd.MarkFlagRequired("team")
}

func runChemistry(cmd *cobra.Command, args []string) error {
	if (chemistryPlayer1 == 0) != (chemistryPlayer2 == 0) {
		return fmt.Errorf("--p1 and --p2 must be given together")
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	games, err := loadTeamGames(db, chemistryTeamID, chemistryLast)
	if err != nil {
		return err
	}

	nameOf := func(id int) string {
		name, err := db.PlayerName(id)
		if err != nil {
			return ""
		}
		return name
	}

	if chemistryPlayer1 != 0 {
		pair := aggregator.PairChemistry(games, chemistryPlayer1, chemistryPlayer2)
		report.PrintChemistry(os.Stdout, []model.ChemistryPair{pair}, nameOf)
		return nil
	}

	pairs := aggregator.ChemistryMatrix(games, chemistryTeamID)
	if len(pairs) == 0 {
		fmt.Fprintln(os.Stdout, "No pairs found; the stored games may lack on-ice data.")
		return nil
	}
	if chemistryTop > 0 && chemistryTop < len(pairs) {
		pairs = pairs[:chemistryTop]
	}
	report.PrintChemistry(os.Stdout, pairs, nameOf)
	return nil
}
