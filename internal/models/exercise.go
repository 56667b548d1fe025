// ABOUTME: Exercise catalog model with muscle group and kind enums.
// ABOUTME: Catalog entries are either seeded (builtIn) or user-added.
package models

// ExerciseKind distinguishes strength movements from cardio activities.
type ExerciseKind string

const (
	KindStrength ExerciseKind = "strength"
	KindCardio   ExerciseKind = "cardio"
)

// IsValidExerciseKind checks if a string is a valid exercise kind.
func IsValidExerciseKind(s string) bool {
	return s == string(KindStrength) || s == string(KindCardio)
}

// MuscleGroups is the fixed muscle group enumeration used by the catalog.
var MuscleGroups = []string{
	"Chest",
	"Biceps",
	"Triceps",
	"Shoulders",
	"Back",
	"Legs",
	"Core",
	"Cardio",
}

// IsValidMuscleGroup checks if a string is one of the fixed muscle groups.
func IsValidMuscleGroup(s string) bool {
	for _, g := range MuscleGroups {
		if g == s {
			return true
		}
	}
	return false
}

// Exercise is a catalog entry describing a movement or activity.
type Exercise struct {
	ID        uint64       `json:"id"`
	Name      string       `json:"name"`
	Group     string       `json:"group"`
	Kind      ExerciseKind `json:"kind"`
	Primary   string       `json:"primary"`
	Emphasis  string       `json:"emphasis"`
	Secondary string       `json:"secondary"`
	BuiltIn   bool         `json:"builtIn"`
}

// RecordID returns the primary key.
func (e *Exercise) RecordID() uint64 { return e.ID }

// SetRecordID assigns the primary key.
func (e *Exercise) SetRecordID(id uint64) { e.ID = id }

// NewExercise creates a user-added catalog entry.
func NewExercise(name, group string, kind ExerciseKind) *Exercise {
	return &Exercise{
		Name:      name,
		Group:     group,
		Kind:      kind,
		Primary:   "—",
		Emphasis:  "—",
		Secondary: "—",
	}
}

// WithMuscles sets the descriptive muscle text fields, keeping the em dash
// placeholder for blanks.
func (e *Exercise) WithMuscles(primary, emphasis, secondary string) *Exercise {
	if primary != "" {
		e.Primary = primary
	}
	if emphasis != "" {
		e.Emphasis = emphasis
	}
	if secondary != "" {
		e.Secondary = secondary
	}
	return e
}
