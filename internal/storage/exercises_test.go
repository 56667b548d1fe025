// ABOUTME: Tests for the exercise catalog and exactly-once seeding.
// ABOUTME: Duplicate names are intentionally allowed; builtin rows sort first.
package storage

import (
	"testing"

	"github.com/harperreed/fitlog/internal/models"
)

func TestAddExercise(t *testing.T) {
	s := setupTestStore(t)

	e := models.NewExercise("  Hack squat  ", "Legs", models.KindStrength)
	e.BuiltIn = true // callers cannot smuggle builtin rows in
	e.ID = 99

	saved, err := s.AddExercise(e)
	if err != nil {
		t.Fatalf("AddExercise failed: %v", err)
	}
	if saved.ID == 0 || saved.ID == 99 {
		t.Errorf("key not assigned by store: got %d", saved.ID)
	}
	if saved.BuiltIn {
		t.Error("user-added exercise marked builtin")
	}
	if saved.Name != "Hack squat" {
		t.Errorf("name not trimmed: got %q", saved.Name)
	}

	got, err := s.GetExercise(saved.ID)
	if err != nil {
		t.Fatalf("GetExercise failed: %v", err)
	}
	if got == nil || got.Name != "Hack squat" || got.Group != "Legs" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestAddExerciseValidation(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.AddExercise(nil); err == nil {
		t.Error("expected error for nil exercise")
	}
	if _, err := s.AddExercise(models.NewExercise("   ", "Legs", models.KindStrength)); err == nil {
		t.Error("expected error for blank name")
	}
	if _, err := s.AddExercise(models.NewExercise("X", "Forearms", models.KindStrength)); err == nil {
		t.Error("expected error for unknown group")
	}
	if _, err := s.AddExercise(models.NewExercise("X", "Legs", "mobility")); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestDuplicateNamesAllowed(t *testing.T) {
	s := setupTestStore(t)

	first, err := s.AddExercise(models.NewExercise("Row", "Back", models.KindStrength))
	if err != nil {
		t.Fatalf("AddExercise failed: %v", err)
	}
	second, err := s.AddExercise(models.NewExercise("Row", "Cardio", models.KindCardio))
	if err != nil {
		t.Fatalf("AddExercise (duplicate name) failed: %v", err)
	}

	matches, err := s.ExercisesByName("Row")
	if err != nil {
		t.Fatalf("ExercisesByName failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("match count mismatch: got %d, want 2", len(matches))
	}
	ids := map[uint64]bool{matches[0].ID: true, matches[1].ID: true}
	if !ids[first.ID] || !ids[second.ID] {
		t.Errorf("wrong records matched: %+v", matches)
	}
}

func TestListExercisesSortsBuiltinFirst(t *testing.T) {
	s := seededStore(t)

	if _, err := s.AddExercise(models.NewExercise("Aardvark press", "Chest", models.KindStrength)); err != nil {
		t.Fatalf("AddExercise failed: %v", err)
	}

	chest, err := s.ListExercises("Chest")
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	if len(chest) != 6 {
		t.Fatalf("chest count mismatch: got %d, want 6", len(chest))
	}
	// Custom entry sorts last despite its name.
	if chest[len(chest)-1].Name != "Aardvark press" {
		t.Errorf("custom entry not sorted after builtins: %+v", chest[len(chest)-1])
	}
	for _, e := range chest[:len(chest)-1] {
		if !e.BuiltIn {
			t.Errorf("non-builtin before custom entry: %+v", e)
		}
	}
}

func TestEnsureSeedExactlyOnce(t *testing.T) {
	s := setupTestStore(t)

	if err := s.EnsureSeed(); err != nil {
		t.Fatalf("EnsureSeed failed: %v", err)
	}
	if err := s.EnsureSeed(); err != nil {
		t.Fatalf("EnsureSeed (second run) failed: %v", err)
	}

	all, err := s.ListExercises("")
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	if len(all) != 40 {
		t.Errorf("catalog size mismatch: got %d, want 40", len(all))
	}
	for _, e := range all {
		if !e.BuiltIn {
			t.Errorf("seeded entry not builtin: %+v", e)
		}
	}

	value, ok, err := s.MetaGet("seed_v1")
	if err != nil {
		t.Fatalf("MetaGet failed: %v", err)
	}
	if !ok || value != "1" {
		t.Errorf("seed flag mismatch: got %q ok=%v", value, ok)
	}
}

func TestSeedRunsAfterReset(t *testing.T) {
	s := seededStore(t)

	if err := s.ClearAll(); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}
	// The flag lives in meta and is wiped with everything else, so the
	// catalog reseeds.
	if err := s.EnsureSeed(); err != nil {
		t.Fatalf("EnsureSeed after reset failed: %v", err)
	}

	all, err := s.ListExercises("")
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	if len(all) != 40 {
		t.Errorf("catalog size after reset mismatch: got %d, want 40", len(all))
	}
}
