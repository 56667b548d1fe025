// ABOUTME: CLI commands for snapshot export and destructive import.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fitlog/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	importForce  bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a full JSON snapshot",
	Long: `Write a snapshot of every record to a JSON file (or stdout with -o -).
The snapshot is a complete backup; import it to restore.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := repo.ExportJSON()
		if err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}

		if exportOutput == "-" {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(exportOutput, data, 0600); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
		color.Green("✓ Exported snapshot to %s", exportOutput)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a snapshot, replacing all current data",
	Long: `Replace the entire store with the contents of a snapshot file.

This is destructive: every current record is removed first. The replace
is atomic, so an invalid file leaves the store untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read snapshot: %w", err)
		}

		if !importForce && !confirm("Replace ALL current data with this snapshot?") {
			fmt.Println("Aborted.")
			return nil
		}

		if err := repo.ImportJSON(data); err != nil {
			if errors.Is(err, storage.ErrInvalidFormat) {
				return fmt.Errorf("not a valid snapshot file: %w", err)
			}
			return fmt.Errorf("failed to import: %w", err)
		}
		color.Green("✓ Imported snapshot from %s", args[0])
		return nil
	},
}

// confirm prompts on stdin for a yes/no answer.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "fitlog-export.json", "output file (- for stdout)")
	importCmd.Flags().BoolVarP(&importForce, "force", "f", false, "skip the confirmation prompt")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
