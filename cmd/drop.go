package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pable/go-nhl-metrics/internal/storage"
)

var dropForce bool

// dropCmd deletes a stored game, or the whole database with no args.
var dropCmd = &cobra.Command{
	Use:   "drop [game-id]",
	Short: "Delete a stored game or the whole database",
	Long:  "With a game ID, removes that game and its events, shots, and shifts. Without arguments, permanently deletes the SQLite database file.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		gameID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid game ID %q: %w", args[0], err)
		}
		db, err := storage.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		defer db.Close()

		if err := db.DeleteGame(gameID); err != nil {
			return fmt.Errorf("delete game: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Deleted game %d\n", gameID)
		return nil
	}

	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if err := os.Remove(dbPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(os.Stdout, "Database does not exist, nothing to drop.")
			return nil
		}
		return fmt.Errorf("remove database: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", dbPath)
	return nil
}
