// ABOUTME: Root Cobra command for fitlog CLI.
// ABOUTME: Opens the store via config in PersistentPreRunE and seeds the catalog.
package main

import (
	"fmt"

	"github.com/harperreed/fitlog/internal/config"
	"github.com/harperreed/fitlog/internal/insights"
	"github.com/harperreed/fitlog/internal/storage"
	"github.com/spf13/cobra"
)

var (
	repo   storage.Repository
	engine *insights.Engine
)

var rootCmd = &cobra.Command{
	Use:   "fitlog",
	Short: "Offline-first workout and activity tracker",
	Long: `Fitlog is a CLI tool for tracking workouts and activities.

WHAT IT TRACKS:

  Sessions       gym workouts, basketball games, other activities
  Gym detail     per-exercise sets (reps x weight) or cardio (minutes, km)
  Catalog        a seeded exercise catalog you can extend

QUICK START:

  $ fitlog log gym --duration 60 --exercise "Bench press:10x20,8x22.5"
  $ fitlog log basketball --duration 90 --intensity High
  $ fitlog day                          # Today's sessions
  $ fitlog month                        # Calendar + monthly KPIs
  $ fitlog insights                     # Session count and minutes charts

EDITING:

  $ fitlog show 12                      # Full session detail
  $ fitlog log gym --id 12 --duration 75   # Edit in place (keeps exercises)
  $ fitlog delete 12                    # Cascade delete

BACKUP:

  $ fitlog export -o backup.json        # Full snapshot
  $ fitlog import backup.json           # Destructive full replace

MCP INTEGRATION:

  Run 'fitlog mcp' to start the Model Context Protocol server for use with
  MCP-compatible AI assistants.

DATA STORAGE:

  Records live in a local Badger store at ~/.local/share/fitlog.
  Override with data_dir in ~/.config/fitlog/config.toml.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		repo, err = cfg.OpenStore()
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		if err := repo.EnsureSeed(); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
		engine = insights.NewEngine(repo)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the fitlog version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("fitlog 1.0.0")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
