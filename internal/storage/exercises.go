// ABOUTME: Exercise catalog operations: user additions and lookups.
// ABOUTME: Duplicate names are allowed on purpose; see DESIGN.md.
package storage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/harperreed/fitlog/internal/kv"
	"github.com/harperreed/fitlog/internal/models"
)

// AddExercise inserts a user-added catalog entry. BuiltIn is always forced
// to false here; only the seeder writes builtin rows. No duplicate-name
// check is performed.
func (s *Store) AddExercise(e *models.Exercise) (*models.Exercise, error) {
	if e == nil || strings.TrimSpace(e.Name) == "" {
		return nil, fmt.Errorf("add exercise: name is required")
	}
	if !models.IsValidMuscleGroup(e.Group) {
		return nil, fmt.Errorf("add exercise: unknown muscle group %q", e.Group)
	}
	if !models.IsValidExerciseKind(string(e.Kind)) {
		return nil, fmt.Errorf("add exercise: invalid kind %q", e.Kind)
	}

	e.Name = strings.TrimSpace(e.Name)
	e.BuiltIn = false
	e.ID = 0
	if _, err := s.kv.Add(tableExercises, e); err != nil {
		return nil, fmt.Errorf("add exercise: %w", err)
	}
	return e, nil
}

// GetExercise retrieves a catalog entry by id, nil when absent.
func (s *Store) GetExercise(exerciseID uint64) (*models.Exercise, error) {
	return kv.Get[models.Exercise](s.kv, tableExercises, exerciseID)
}

// ListExercises returns the catalog, optionally filtered by muscle group,
// sorted builtin-first then by name for stable suggestion order.
func (s *Store) ListExercises(group string) ([]*models.Exercise, error) {
	var list []*models.Exercise
	var err error
	if group == "" {
		list, err = kv.GetAll[models.Exercise](s.kv, tableExercises)
	} else {
		list, err = kv.GetAllByIndex[models.Exercise](s.kv, tableExercises, idxByGroup, group)
	}
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].BuiltIn != list[j].BuiltIn {
			return list[i].BuiltIn
		}
		return list[i].Name < list[j].Name
	})
	return list, nil
}

// ExercisesByName returns catalog entries matching a name exactly. More
// than one entry can match because names are not unique.
func (s *Store) ExercisesByName(name string) ([]*models.Exercise, error) {
	return kv.GetAllByIndex[models.Exercise](s.kv, tableExercises, idxByName, name)
}
