package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-nhl-metrics/internal/model"
	"github.com/pable/go-nhl-metrics/internal/nhl"
	"github.com/pable/go-nhl-metrics/internal/storage"
)

// fetch command flags.
var (
	// fetchTeam is the team abbreviation whose schedule to walk.
	fetchTeam string
	// fetchSeason selects the season, e.g. 20242025.
	fetchSeason string
	// fetchCount is the number of completed games to ingest.
	fetchCount int
	// fetchNoShifts skips the shift-chart endpoint.
	fetchNoShifts bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [game-id...]",
	Short: "Download and store NHL play-by-play data",
	Long: `Fetches play-by-play feeds (and shift charts) from the NHL API and
stores them for analysis. With game IDs as arguments, fetches exactly
those games. With --team, walks the team's season schedule and ingests
completed games newest first.

Examples:
  # A single game by ID
  nhlmetrics fetch 2024020512

  # The last 20 completed Leafs games
  nhlmetrics fetch --team TOR --season 20242025 --count 20`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchTeam, "team", "", "team abbreviation (e.g. TOR)")
	fetchCmd.Flags().StringVar(&fetchSeason, "season", currentSeason(), "season in YYYYYYYY form")
	fetchCmd.Flags().IntVar(&fetchCount, "count", 10, "number of completed games to ingest")
	fetchCmd.Flags().BoolVar(&fetchNoShifts, "no-shifts", false, "skip fetching shift charts")
}

func runFetch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && fetchTeam == "" {
		return fmt.Errorf("provide game IDs or --team")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	client := nhl.NewClientWithBase(cfg.APIBaseURL, cfg.StatsAPIBaseURL,
		time.Duration(cfg.HTTPTimeoutSeconds)*time.Second)

	if len(args) > 0 {
		for _, arg := range args {
			gameID, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("invalid game ID %q: %w", arg, err)
			}
			if err := ingestGame(db, client, gameID, ""); err != nil {
				fmt.Fprintf(os.Stderr, "  [error] game %d: %v\n", gameID, err)
			}
		}
		return nil
	}

	schedule, err := client.GetSchedule(fetchTeam, fetchSeason)
	if err != nil {
		return fmt.Errorf("schedule for %s: %w", fetchTeam, err)
	}

	// Walk newest first, regular season and playoffs only.
	ingested := 0
	for i := len(schedule) - 1; i >= 0 && ingested < fetchCount; i-- {
		g := schedule[i]
		if g.GameState != "OFF" && g.GameState != "FINAL" {
			continue
		}
		if g.GameType != 2 && g.GameType != 3 {
			continue
		}

		exists, err := db.GameExists(g.ID)
		if err != nil {
			return err
		}
		if exists {
			fmt.Printf("[%d/%d] %d  %s  already stored\n", ingested+1, fetchCount, g.ID, g.GameDate)
			ingested++
			continue
		}

		fmt.Printf("[%d/%d] %d  %s\n", ingested+1, fetchCount, g.ID, g.GameDate)
		if err := ingestGame(db, client, g.ID, fetchTeam); err != nil {
			fmt.Fprintf(os.Stderr, "  [error] %v\n", err)
			continue
		}
		ingested++
	}

	if fetchTeam != "" {
		if err := storeRoster(db, client, fetchTeam, fetchSeason); err != nil {
			fmt.Fprintf(os.Stderr, "  [warn] roster: %v\n", err)
		}
	}

	fmt.Printf("\nDone: %d/%d games ingested\n", ingested, fetchCount)
	return nil
}

// ingestGame fetches, normalizes, and stores one game.
func ingestGame(db *storage.DB, client *nhl.Client, gameID int, teamAbbrev string) error {
	pbp, err := client.GetPlayByPlay(gameID)
	if err != nil {
		return fmt.Errorf("play-by-play: %w", err)
	}

	var shifts []nhl.ShiftEntry
	if !fetchNoShifts {
		shifts, err = client.GetShifts(gameID)
		if err != nil {
			// Shift charts are optional; chemistry degrades without them.
			fmt.Fprintf(os.Stderr, "  [warn] shifts unavailable: %v\n", err)
			shifts = nil
		}
	}

	game, err := nhl.NormalizeGame(pbp, shifts)
	if err != nil {
		return fmt.Errorf("normalize: %w", err)
	}
	if err := db.SaveGame(game, teamAbbrev); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	fmt.Printf("  stored: %d events, %d shots, %d shifts\n",
		len(game.Events), len(game.Shots), len(game.Shifts))
	return nil
}

func storeRoster(db *storage.DB, client *nhl.Client, teamAbbrev, season string) error {
	players, err := client.GetRoster(teamAbbrev, season)
	if err != nil {
		return err
	}
	entries := make([]model.RosterEntry, 0, len(players))
	for _, p := range players {
		entries = append(entries, model.RosterEntry{
			PlayerID: p.ID,
			Name:     p.FirstName.Default + " " + p.LastName.Default,
			Sweater:  p.SweaterNumber,
			Position: p.Position,
		})
	}
	return db.SaveRoster(teamAbbrev, entries)
}

// currentSeason returns the season containing today, e.g. "20242025".
// NHL seasons roll over in September.
func currentSeason() string {
	now := time.Now()
	year := now.Year()
	if now.Month() < time.September {
		year--
	}
	return fmt.Sprintf("%d%d", year, year+1)
}
