// ABOUTME: CLI commands for the exercise catalog: add custom entries and
// ABOUTME: list the catalog by muscle group.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fitlog/internal/models"
	"github.com/spf13/cobra"
)

var (
	exerciseGroup     string
	exerciseKind      string
	exercisePrimary   string
	exerciseEmphasis  string
	exerciseSecondary string
	exerciseListGroup string
)

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Manage the exercise catalog",
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a custom exercise to the catalog",
	Long: `Add a custom exercise. Custom entries sort after the built-in catalog
within their group.

EXAMPLES:

  fitlog exercise add "Hack squat" --group Legs
  fitlog exercise add "Rowing machine" --group Cardio --kind cardio`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := models.NewExercise(args[0], exerciseGroup, models.ExerciseKind(exerciseKind)).
			WithMuscles(exercisePrimary, exerciseEmphasis, exerciseSecondary)

		saved, err := repo.AddExercise(e)
		if err != nil {
			return fmt.Errorf("failed to add exercise: %w", err)
		}
		color.Green("✓ Added %s (%s, %s)", saved.Name, saved.Group, saved.Kind)
		return nil
	},
}

var exerciseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog exercises",
	RunE: func(cmd *cobra.Command, args []string) error {
		exercises, err := repo.ListExercises(exerciseListGroup)
		if err != nil {
			return fmt.Errorf("failed to list exercises: %w", err)
		}
		if len(exercises) == 0 {
			fmt.Println("No exercises found.")
			return nil
		}

		faint := color.New(color.Faint)
		group := ""
		for _, e := range exercises {
			if e.Group != group {
				group = e.Group
				fmt.Printf("%s\n", color.New(color.Bold).Sprint(group))
			}
			tag := ""
			if !e.BuiltIn {
				tag = faint.Sprint("  (custom)")
			}
			detail := ""
			if e.Kind == models.KindStrength && e.Primary != "" && e.Primary != "—" {
				detail = faint.Sprintf("  %s", strings.TrimSpace(e.Primary))
			}
			fmt.Printf("  %s%s%s\n", e.Name, detail, tag)
		}
		return nil
	},
}

func init() {
	groups := strings.Join(models.MuscleGroups, ", ")
	exerciseAddCmd.Flags().StringVarP(&exerciseGroup, "group", "g", "", "muscle group ("+groups+")")
	exerciseAddCmd.Flags().StringVarP(&exerciseKind, "kind", "k", "strength", "exercise kind (strength, cardio)")
	exerciseAddCmd.Flags().StringVar(&exercisePrimary, "primary", "", "primary muscle")
	exerciseAddCmd.Flags().StringVar(&exerciseEmphasis, "emphasis", "", "emphasized muscle")
	exerciseAddCmd.Flags().StringVar(&exerciseSecondary, "secondary", "", "secondary muscles")
	exerciseAddCmd.MarkFlagRequired("group")

	exerciseListCmd.Flags().StringVarP(&exerciseListGroup, "group", "g", "", "filter by muscle group")

	exerciseCmd.AddCommand(exerciseAddCmd)
	exerciseCmd.AddCommand(exerciseListCmd)
	rootCmd.AddCommand(exerciseCmd)
}
