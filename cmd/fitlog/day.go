// ABOUTME: CLI commands for listing a day's sessions and showing one session.
// ABOUTME: Day listings are newest first; show prints the full joined detail.
package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/fitlog/internal/models"
	"github.com/spf13/cobra"
)

var dayCmd = &cobra.Command{
	Use:   "day [date]",
	Short: "List sessions on a date",
	Long: `List the sessions recorded on a calendar date, newest first.

EXAMPLES:

  fitlog day               # today
  fitlog day 2026-03-05`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dateISO := time.Now().Format("2006-01-02")
		if len(args) > 0 {
			dateISO = args[0]
		}
		if !models.ValidDateISO(dateISO) {
			return fmt.Errorf("invalid date: %s (expected YYYY-MM-DD)", dateISO)
		}

		sessions, err := engine.DaySessions(dateISO)
		if err != nil {
			return fmt.Errorf("failed to list day: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Printf("No sessions on %s.\n", dateISO)
			return nil
		}

		for _, s := range sessions {
			printSessionLine(s)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a session with its exercise detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid session id: %s", args[0])
		}

		detail, err := repo.LoadSessionDetail(id)
		if err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}
		if detail == nil {
			return fmt.Errorf("session not found: %d", id)
		}

		printSessionLine(detail.Session)
		for _, row := range detail.Rows {
			name := "(deleted exercise)"
			if row.Exercise != nil {
				name = row.Exercise.Name
			}
			mark := color.RedString("✗")
			if row.SessionExercise.Done != 0 {
				mark = color.GreenString("✓")
			}
			fmt.Printf("  %s %s\n", mark, name)

			for _, set := range row.Sets {
				fmt.Printf("      set %d: %d x %.1f kg\n", set.SetNumber, set.Reps, set.WeightKg)
			}
			if row.Cardio != nil {
				fmt.Printf("      %.0f min, %.1f km\n", row.Cardio.Minutes, row.Cardio.Km)
			}
		}
		return nil
	},
}

// printSessionLine renders one session summary line.
func printSessionLine(s *models.Session) {
	faint := color.New(color.Faint)
	title := sessionTitle(s)

	extra := ""
	if s.Type == models.SessionBasketball && s.Intensity != "" {
		extra = faint.Sprintf("  intensity: %s", s.Intensity)
	}
	notes := ""
	if s.Notes != "" {
		notes = faint.Sprintf("  (%s)", s.Notes)
	}
	fmt.Printf("%s %s %s  %d min%s%s\n",
		faint.Sprintf("#%d", s.ID), s.DateISO, title, s.DurationMin, extra, notes)
}

func sessionTitle(s *models.Session) string {
	switch s.Type {
	case models.SessionGym:
		return color.GreenString("gym")
	case models.SessionBasketball:
		return color.YellowString("basketball")
	default:
		if s.OtherName != "" {
			return color.CyanString(s.OtherName)
		}
		return color.CyanString("other")
	}
}

func init() {
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(showCmd)
}
