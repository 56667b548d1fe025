// ABOUTME: CLI command for logging and editing sessions.
// ABOUTME: Parses exercise/cardio row specs and resolves catalog names.
package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/fitlog/internal/models"
	"github.com/spf13/cobra"
)

var (
	logID        uint64
	logDate      string
	logDuration  int
	logNotes     string
	logIntensity string
	logOtherName string
	logExercises []string
	logCardio    []string
)

var logCmd = &cobra.Command{
	Use:   "log <type>",
	Short: "Log a workout or activity session",
	Long: `Log a session of type gym, basketball, or other.

GYM DETAIL:

  Use --exercise for strength work, one flag per exercise:
    --exercise "Bench press:10x20,8x22.5"     # name:repsxweight,...
  Use --cardio for cardio work:
    --cardio "Treadmill:30:5"                 # name:minutes:km

  Names must match the catalog exactly (see 'fitlog exercise list').
  Unmatched names are skipped with a warning.

EDITING:

  Pass --id to update an existing session in place. A gym edit without
  --exercise/--cardio flags keeps the stored exercise rows; with them it
  replaces the rows wholesale. Changing the type away from gym drops all
  exercise detail.

EXAMPLES:

  fitlog log gym --duration 60 --exercise "Squat:8x80,8x85,6x90"
  fitlog log gym --date 2026-03-05 --cardio "Treadmill:20:2.5"
  fitlog log basketball --duration 90 --intensity High
  fitlog log other --other-name "Climbing" --duration 120
  fitlog log gym --id 12 --duration 75`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"gym", "basketball", "other"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !models.IsValidSessionType(args[0]) {
			return fmt.Errorf("unknown session type: %s (valid: gym, basketball, other)", args[0])
		}
		sessionType := models.SessionType(args[0])

		dateISO := logDate
		if dateISO == "" {
			dateISO = time.Now().Format("2006-01-02")
		}
		if !models.ValidDateISO(dateISO) {
			return fmt.Errorf("invalid date: %s (expected YYYY-MM-DD)", dateISO)
		}

		draft := models.NewSession(dateISO, sessionType).
			WithDuration(logDuration).
			WithNotes(logNotes).
			WithIntensity(logIntensity).
			WithOtherName(logOtherName)
		draft.ID = logID

		rows, err := buildRows()
		if err != nil {
			return err
		}
		if logID != 0 && sessionType == models.SessionGym && len(logExercises) == 0 && len(logCardio) == 0 {
			// Edit without row flags: carry the stored rows through the
			// full-replace save.
			detail, err := repo.LoadSessionDetail(logID)
			if err != nil {
				return err
			}
			if detail == nil {
				return fmt.Errorf("session not found: %d", logID)
			}
			rows = detail.DraftRows()
		}

		saved, err := repo.SaveSession(draft, rows)
		if err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}

		verb := "Logged"
		if logID != 0 {
			verb = "Updated"
		}
		color.Green("✓ %s %s session", verb, saved.Type)
		fmt.Printf("  %s %s  %d min\n",
			color.New(color.Faint).Sprintf("#%d", saved.ID),
			saved.DateISO, saved.DurationMin)
		return nil
	},
}

// buildRows turns the --exercise and --cardio specs into draft rows,
// resolving catalog names. Unresolved names produce a warning here and are
// skipped silently by the repository.
func buildRows() ([]models.ExerciseRow, error) {
	var rows []models.ExerciseRow

	for _, spec := range logExercises {
		name, sets, err := parseExerciseSpec(spec)
		if err != nil {
			return nil, err
		}
		rows = append(rows, models.ExerciseRow{
			Exercise: resolveExercise(name, models.KindStrength),
			Done:     true,
			Sets:     sets,
		})
	}

	for _, spec := range logCardio {
		name, cardio, err := parseCardioSpec(spec)
		if err != nil {
			return nil, err
		}
		rows = append(rows, models.ExerciseRow{
			Exercise: resolveExercise(name, models.KindCardio),
			Done:     true,
			Cardio:   cardio,
		})
	}

	return rows, nil
}

// resolveExercise looks a name up in the catalog, preferring entries of the
// wanted kind when duplicate names exist.
func resolveExercise(name string, kind models.ExerciseKind) *models.Exercise {
	matches, err := repo.ExercisesByName(name)
	if err != nil || len(matches) == 0 {
		color.Yellow("! no catalog entry named %q, skipping", name)
		return nil
	}
	for _, e := range matches {
		if e.Kind == kind {
			return e
		}
	}
	return matches[0]
}

// parseExerciseSpec parses "Name:RxW,RxW,..." into a name and set drafts.
func parseExerciseSpec(spec string) (string, []models.SetDraft, error) {
	name, rest, ok := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	if !ok || name == "" || strings.TrimSpace(rest) == "" {
		return "", nil, fmt.Errorf("invalid exercise spec %q (expected \"Name:repsxweight,...\")", spec)
	}

	var sets []models.SetDraft
	for i, part := range strings.Split(rest, ",") {
		repsStr, weightStr, ok := strings.Cut(strings.TrimSpace(part), "x")
		if !ok {
			return "", nil, fmt.Errorf("invalid set %q in %q (expected repsxweight)", part, spec)
		}
		reps, err := strconv.Atoi(strings.TrimSpace(repsStr))
		if err != nil || reps < 0 {
			return "", nil, fmt.Errorf("invalid reps %q in %q", repsStr, spec)
		}
		weight, err := strconv.ParseFloat(strings.TrimSpace(weightStr), 64)
		if err != nil || weight < 0 {
			return "", nil, fmt.Errorf("invalid weight %q in %q", weightStr, spec)
		}
		sets = append(sets, models.SetDraft{SetNumber: i + 1, Reps: reps, WeightKg: weight})
	}
	return name, sets, nil
}

// parseCardioSpec parses "Name:minutes:km" into a name and cardio draft.
func parseCardioSpec(spec string) (string, *models.CardioDraft, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 3 || strings.TrimSpace(parts[0]) == "" {
		return "", nil, fmt.Errorf("invalid cardio spec %q (expected \"Name:minutes:km\")", spec)
	}
	minutes, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || minutes < 0 {
		return "", nil, fmt.Errorf("invalid minutes %q in %q", parts[1], spec)
	}
	km, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil || km < 0 {
		return "", nil, fmt.Errorf("invalid km %q in %q", parts[2], spec)
	}
	return strings.TrimSpace(parts[0]), &models.CardioDraft{Minutes: minutes, Km: km}, nil
}

func init() {
	logCmd.Flags().Uint64Var(&logID, "id", 0, "edit an existing session in place")
	logCmd.Flags().StringVar(&logDate, "date", "", "session date (YYYY-MM-DD, default today)")
	logCmd.Flags().IntVarP(&logDuration, "duration", "d", 0, "duration in minutes")
	logCmd.Flags().StringVar(&logNotes, "notes", "", "session notes")
	logCmd.Flags().StringVar(&logIntensity, "intensity", "", "intensity label (basketball only)")
	logCmd.Flags().StringVar(&logOtherName, "other-name", "", "activity name (type other only)")
	logCmd.Flags().StringArrayVarP(&logExercises, "exercise", "e", nil, "strength row \"Name:repsxweight,...\" (repeatable)")
	logCmd.Flags().StringArrayVarP(&logCardio, "cardio", "c", nil, "cardio row \"Name:minutes:km\" (repeatable)")
	rootCmd.AddCommand(logCmd)
}
