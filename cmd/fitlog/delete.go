// ABOUTME: CLI command deleting a session and all of its exercise detail.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a session and its exercise detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid session id: %s", args[0])
		}

		session, err := repo.GetSession(id)
		if err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}
		if session == nil {
			return fmt.Errorf("session not found: %d", id)
		}

		if err := repo.DeleteSessionCascade(id); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
		color.Green("✓ Deleted %s session #%d (%s)", session.Type, id, session.DateISO)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
