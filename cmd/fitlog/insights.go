// ABOUTME: CLI command rendering text bar charts of monthly session counts
// ABOUTME: and per-type minute totals.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/fitlog/internal/models"
	"github.com/spf13/cobra"
)

var insightsMonths int

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show monthly session count and duration charts",
	Long: `Render text bar charts over the last few months: sessions per month,
then this month's minutes split by session type.

EXAMPLES:

  fitlog insights
  fitlog insights --months 12`,
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()

		type monthCount struct {
			key   string
			total int
		}
		counts := make([]monthCount, 0, insightsMonths)
		maxTotal := 0
		for i := insightsMonths - 1; i >= 0; i-- {
			key := now.AddDate(0, -i, 0).Format("2006-01")
			summary, err := engine.MonthSummary(key)
			if err != nil {
				return fmt.Errorf("failed to summarize %s: %w", key, err)
			}
			counts = append(counts, monthCount{key: key, total: summary.Total})
			if summary.Total > maxTotal {
				maxTotal = summary.Total
			}
		}

		fmt.Println(color.New(color.Bold).Sprint("Sessions per month"))
		for _, mc := range counts {
			fmt.Printf("  %s %s %d\n", mc.key, bar(mc.total, maxTotal, 30), mc.total)
		}

		monthKey := now.Format("2006-01")
		rollup, err := engine.MonthlyDurationRollup(monthKey)
		if err != nil {
			return fmt.Errorf("failed to roll up %s: %w", monthKey, err)
		}

		maxMinutes := 0
		for _, t := range models.AllSessionTypes {
			if m := rollup.MinutesByType[t]; m > maxMinutes {
				maxMinutes = m
			}
		}

		fmt.Println()
		fmt.Printf("%s (%s)\n", color.New(color.Bold).Sprint("Minutes by type"), monthKey)
		for _, t := range models.AllSessionTypes {
			minutes := rollup.MinutesByType[t]
			fmt.Printf("  %-10s %s %d min\n", t, bar(minutes, maxMinutes, 30), minutes)
		}
		return nil
	},
}

// bar renders a proportional block bar of at most width characters.
func bar(value, max, width int) string {
	if max <= 0 || value <= 0 {
		return ""
	}
	n := value * width / max
	if n == 0 {
		n = 1
	}
	return color.New(color.FgBlue).Sprint(strings.Repeat("█", n))
}

func init() {
	insightsCmd.Flags().IntVar(&insightsMonths, "months", 6, "number of months in the count chart")
	rootCmd.AddCommand(insightsCmd)
}
