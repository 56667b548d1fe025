// ABOUTME: Builtin exercise catalog and exactly-once seeding.
// ABOUTME: Seeding is gated by the seed_v1 meta flag and runs in one transaction.
package storage

import (
	"fmt"

	"github.com/harperreed/fitlog/internal/kv"
	"github.com/harperreed/fitlog/internal/models"
)

// seedFlag marks the catalog seed as applied. Bump the suffix if the
// builtin catalog ever needs a second seeding pass.
const seedFlag = "seed_v1"

func seedEx(name, group string, kind models.ExerciseKind, primary, emphasis, secondary string) *models.Exercise {
	return &models.Exercise{
		Name:      name,
		Group:     group,
		Kind:      kind,
		Primary:   primary,
		Emphasis:  emphasis,
		Secondary: secondary,
		BuiltIn:   true,
	}
}

// builtinCatalog returns the seeded exercise catalog: five entries per
// muscle group plus five cardio activities.
func builtinCatalog() []*models.Exercise {
	st, cd := models.KindStrength, models.KindCardio
	return []*models.Exercise{
		// Chest
		seedEx("Bench press", "Chest", st, "Pectoralis major", "Sternal head (mid chest)", "Triceps; front delts"),
		seedEx("Incline bench press", "Chest", st, "Pectoralis major", "Clavicular head (upper chest)", "Front delts; triceps"),
		seedEx("Dumbbell fly", "Chest", st, "Pectoralis major", "Stretch and horizontal adduction", "Front delts (light)"),
		seedEx("Pec deck", "Chest", st, "Pectoralis major", "Peak chest contraction", "Front delts (light)"),
		seedEx("Push-up", "Chest", st, "Pectoralis major", "General (varies with incline and hand width)", "Triceps; core; front delts"),

		// Biceps
		seedEx("Barbell curl", "Biceps", st, "Biceps brachii", "Overall biceps volume", "Brachialis; brachioradialis"),
		seedEx("Alternating dumbbell curl", "Biceps", st, "Biceps brachii", "Unilateral control and range", "Brachialis; brachioradialis"),
		seedEx("Hammer curl", "Biceps", st, "Brachialis / Brachioradialis", "Arm and forearm thickness", "Biceps (secondary)"),
		seedEx("Concentration curl", "Biceps", st, "Biceps brachii", "Peak contraction (isolation)", "Brachialis (light)"),
		seedEx("Chin-up", "Biceps", st, "Lats + Biceps", "Biceps emphasis (supinated grip)", "Forearms; lats"),

		// Triceps
		seedEx("Triceps pushdown", "Triceps", st, "Triceps brachii", "General (lateral/medial heads)", "Forearms (stabilizing)"),
		seedEx("Skullcrusher", "Triceps", st, "Triceps brachii", "Long head (greatest stretch)", "Delts (stabilizing)"),
		seedEx("Bench dip", "Triceps", st, "Triceps brachii", "General (varies with posture)", "Chest; front delts (light)"),
		seedEx("Rope pushdown", "Triceps", st, "Triceps brachii", "End-range contraction", "Forearms"),
		seedEx("Parallel bar dip", "Triceps", st, "Triceps brachii", "Triceps + chest (lean changes focus)", "Chest; shoulders"),

		// Shoulders
		seedEx("Dumbbell shoulder press", "Shoulders", st, "Deltoids", "Front/middle delts (press)", "Triceps; upper traps"),
		seedEx("Lateral raise", "Shoulders", st, "Middle deltoid", "Shoulder width", "Traps (if cheating)"),
		seedEx("Front raise", "Shoulders", st, "Front deltoid", "Anterior head", "Upper chest (light)"),
		seedEx("Upright row", "Shoulders", st, "Middle deltoid", "Middle delts + traps", "Traps; biceps (light)"),
		seedEx("Arnold press", "Shoulders", st, "Deltoids", "Anterior emphasis with rotation", "Triceps; chest (light)"),

		// Back
		seedEx("Lat pulldown", "Back", st, "Latissimus dorsi", "Lats (grip/angle changes focus)", "Biceps; rhomboids"),
		seedEx("Bent-over row", "Back", st, "Lats / Rhomboids", "Mid-back thickness", "Lower back; biceps"),
		seedEx("Seated cable row", "Back", st, "Rhomboids / Lats", "Scapular retraction", "Biceps; rear delts"),
		seedEx("Pull-up", "Back", st, "Lats", "Lats and upper back", "Biceps; forearms"),
		seedEx("Pullover", "Back", st, "Lats", "Shoulder extension + stretch", "Chest (light); triceps"),

		// Legs
		seedEx("Squat", "Legs", st, "Quadriceps / Glutes", "General (depth shifts focus)", "Hamstrings; core"),
		seedEx("Leg press", "Legs", st, "Quadriceps / Glutes", "Quads (feet low) or glutes (feet high)", "Hamstrings (light)"),
		seedEx("Leg extension", "Legs", st, "Quadriceps", "Quad isolation", "—"),
		seedEx("Lying leg curl", "Legs", st, "Hamstrings", "Knee-flexion hamstring work", "Glutes (light)"),
		seedEx("Standing calf raise", "Legs", st, "Gastrocnemius", "Calves with straight knee", "Soleus (secondary)"),

		// Core
		seedEx("Crunch", "Core", st, "Rectus abdominis", "Trunk flexion (upper portion)", "—"),
		seedEx("Leg raise", "Core", st, "Rectus abdominis (lower)", "Pelvic control and lower portion", "Hip flexors (secondary)"),
		seedEx("Plank", "Core", st, "Core", "Isometric stabilization", "Glutes; lower back; shoulders"),
		seedEx("Reverse crunch", "Core", st, "Rectus abdominis (lower)", "Lower portion (posterior pelvic tilt)", "Hip flexors"),
		seedEx("Oblique twist", "Core", st, "Obliques", "Rotation / anti-rotation", "Rectus abdominis"),

		// Cardio
		seedEx("Treadmill", "Cardio", cd, "Cardiorespiratory", "Run/walk (cadence and impact vary)", "Legs (general)"),
		seedEx("Stationary bike", "Cardio", cd, "Cardiorespiratory", "Low impact (cadence vs resistance)", "Quads; glutes"),
		seedEx("Elliptical", "Cardio", cd, "Cardiorespiratory", "Low impact, full body", "Legs; arms (light)"),
		seedEx("Outdoor run", "Cardio", cd, "Cardiorespiratory", "Terrain variation", "Legs; core"),
		seedEx("Stair climber", "Cardio", cd, "Cardiorespiratory", "Conditioning + legs", "Quads; glutes; calves"),
	}
}

// EnsureSeed inserts the builtin catalog exactly once across restarts.
// The seed flag and all inserts commit in a single transaction, so a crash
// mid-seed cannot leave a half-seeded catalog behind a set flag.
func (s *Store) EnsureSeed() error {
	done, ok, err := s.MetaGet(seedFlag)
	if err != nil {
		return fmt.Errorf("check seed flag: %w", err)
	}
	if ok && done == "1" {
		return nil
	}

	err = s.kv.Update(func(tx *kv.Tx) error {
		for _, e := range builtinCatalog() {
			if _, err := tx.Add(tableExercises, e); err != nil {
				return err
			}
		}
		return tx.MetaSet(seedFlag, "1")
	})
	if err != nil {
		return fmt.Errorf("seed exercises: %w", err)
	}
	return nil
}
