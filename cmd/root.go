package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-nhl-metrics/internal/config"
)

var dbPath string

// cfg is loaded once before any command runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "nhlmetrics",
	Short: "NHL event-stream metrics tool",
	Long:  "Fetch NHL play-by-play feeds and compute shot, sequence, and style metrics for teams and players.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
		// Config db_path applies only when the flag was left at its default.
		if cfg.DBPath != "" && !cmd.Flags().Changed("db") && !cmd.Root().PersistentFlags().Changed("db") {
			dbPath = cfg.DBPath
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultDB := filepath.Join(mustUserHome(), ".nhlmetrics", "metrics.db")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to SQLite database")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(decisionsCmd)
	rootCmd.AddCommand(sequencesCmd)
	rootCmd.AddCommand(entriesCmd)
	rootCmd.AddCommand(fingerprintCmd)
	rootCmd.AddCommand(flowCmd)
	rootCmd.AddCommand(ribbonsCmd)
	rootCmd.AddCommand(evolutionCmd)
	rootCmd.AddCommand(chemistryCmd)
	rootCmd.AddCommand(basicsCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
