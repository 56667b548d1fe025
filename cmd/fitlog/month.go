// ABOUTME: CLI command rendering a month calendar with session markers and
// ABOUTME: the month's KPI counts.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/fitlog/internal/models"
	"github.com/spf13/cobra"
)

var monthCmd = &cobra.Command{
	Use:   "month [YYYY-MM]",
	Short: "Show a month calendar with session markers and KPIs",
	Long: `Render a calendar for the month with a colored dot per session type
present on each day, followed by the month's session counts.

EXAMPLES:

  fitlog month             # current month
  fitlog month 2026-03`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		monthKey := time.Now().Format("2006-01")
		if len(args) > 0 {
			monthKey = args[0]
		}
		if !models.ValidMonthKey(monthKey) {
			return fmt.Errorf("invalid month: %s (expected YYYY-MM)", monthKey)
		}

		markers, err := engine.CalendarMarkers(monthKey)
		if err != nil {
			return fmt.Errorf("failed to build calendar: %w", err)
		}
		summary, err := engine.MonthSummary(monthKey)
		if err != nil {
			return fmt.Errorf("failed to summarize month: %w", err)
		}

		printCalendar(monthKey, markers)
		fmt.Println()
		fmt.Printf("Sessions: %d total", summary.Total)
		fmt.Printf("  (%s %d  %s %d  %s %d)\n",
			color.GreenString("gym"), summary.CountsByType[models.SessionGym],
			color.YellowString("basketball"), summary.CountsByType[models.SessionBasketball],
			color.CyanString("other"), summary.CountsByType[models.SessionOther])
		return nil
	},
}

// printCalendar draws a Monday-first month grid. Each day cell shows the
// day number plus one marker dot per session type present.
func printCalendar(monthKey string, markers map[string][]models.SessionType) {
	first, _ := time.Parse("2006-01", monthKey)
	fmt.Printf("%s\n", color.New(color.Bold).Sprint(first.Format("January 2006")))
	fmt.Println("Mon  Tue  Wed  Thu  Fri  Sat  Sun")

	// Leading blanks up to the weekday of the 1st.
	offset := (int(first.Weekday()) + 6) % 7
	var line strings.Builder
	line.WriteString(strings.Repeat("     ", offset))

	daysInMonth := first.AddDate(0, 1, -1).Day()
	col := offset
	for day := 1; day <= daysInMonth; day++ {
		iso := fmt.Sprintf("%s-%02d", monthKey, day)
		line.WriteString(fmt.Sprintf("%3d", day))
		line.WriteString(markerCell(markers[iso]))
		col++
		if col == 7 {
			fmt.Println(line.String())
			line.Reset()
			col = 0
		}
	}
	if col > 0 {
		fmt.Println(line.String())
	}
}

// markerCell renders up to two characters of type dots, padded to keep the
// grid aligned.
func markerCell(types []models.SessionType) string {
	var dots strings.Builder
	for _, t := range types {
		switch t {
		case models.SessionGym:
			dots.WriteString(color.GreenString("•"))
		case models.SessionBasketball:
			dots.WriteString(color.YellowString("•"))
		case models.SessionOther:
			dots.WriteString(color.CyanString("•"))
		}
	}
	pad := 2 - len(types)
	if pad < 0 {
		pad = 0
	}
	return dots.String() + strings.Repeat(" ", pad)
}

func init() {
	rootCmd.AddCommand(monthCmd)
}
