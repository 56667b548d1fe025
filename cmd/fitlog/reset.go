// ABOUTME: CLI command wiping every record and re-seeding the catalog.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all data and re-seed the exercise catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetForce && !confirm("Delete ALL sessions, exercises, and settings?") {
			fmt.Println("Aborted.")
			return nil
		}

		if err := repo.ClearAll(); err != nil {
			return fmt.Errorf("failed to clear store: %w", err)
		}
		if err := repo.EnsureSeed(); err != nil {
			return fmt.Errorf("failed to re-seed catalog: %w", err)
		}
		color.Green("✓ Store reset; built-in catalog restored")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}
