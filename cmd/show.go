package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pable/go-nhl-metrics/internal/aggregator"
	"github.com/pable/go-nhl-metrics/internal/model"
	"github.com/pable/go-nhl-metrics/internal/report"
	"github.com/pable/go-nhl-metrics/internal/storage"
	"github.com/pable/go-nhl-metrics/internal/timeline"
)

var (
	showTeamID   int
	showPlayerID int
)

var showCmd = &cobra.Command{
	Use:   "show <game-id>",
	Short: "Show one stored game with enriched shot context",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().IntVar(&showTeamID, "team", 0, "show shots from this team's perspective (default: home team)")
	showCmd.Flags().IntVar(&showPlayerID, "player", 0, "restrict shots to this player")
}

func runShow(cmd *cobra.Command, args []string) error {
	gameID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid game ID %q: %w", args[0], err)
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	summary, err := db.GetGameSummary(gameID)
	if err != nil {
		return fmt.Errorf("query game: %w", err)
	}
	if summary == nil {
		fmt.Fprintf(os.Stderr, "No stored game with ID %d\n", gameID)
		return nil
	}

	game, err := db.LoadGame(gameID)
	if err != nil {
		return fmt.Errorf("load game: %w", err)
	}

	teamID := showTeamID
	if teamID == 0 {
		teamID = game.HomeTeamID
	}

	report.PrintGameHeader(os.Stdout, *summary)
	shots := timeline.EnrichShots(game, teamID, showPlayerID)
	report.PrintEnrichedShots(os.Stdout, shots)

	fmt.Fprintf(os.Stdout, "\nTeam %d basics:\n\n", teamID)
	report.PrintTeamBasics(os.Stdout, aggregator.ComputeTeamBasics([]model.GameRecord{*game}, teamID))
	return nil
}
