// ABOUTME: Tests for the exercise and cardio row spec parsers.
package main

import "testing"

func TestParseExerciseSpec(t *testing.T) {
	name, sets, err := parseExerciseSpec("Bench press:10x20,8x22.5")
	if err != nil {
		t.Fatalf("parseExerciseSpec failed: %v", err)
	}
	if name != "Bench press" {
		t.Errorf("name mismatch: got %q", name)
	}
	if len(sets) != 2 {
		t.Fatalf("set count mismatch: got %d, want 2", len(sets))
	}
	if sets[0].SetNumber != 1 || sets[0].Reps != 10 || sets[0].WeightKg != 20 {
		t.Errorf("first set mismatch: %+v", sets[0])
	}
	if sets[1].SetNumber != 2 || sets[1].Reps != 8 || sets[1].WeightKg != 22.5 {
		t.Errorf("second set mismatch: %+v", sets[1])
	}
}

func TestParseExerciseSpecToleratesSpaces(t *testing.T) {
	name, sets, err := parseExerciseSpec("  Squat : 8 x 80 , 6 x 90 ")
	if err != nil {
		t.Fatalf("parseExerciseSpec failed: %v", err)
	}
	if name != "Squat" {
		t.Errorf("name mismatch: got %q", name)
	}
	if len(sets) != 2 || sets[0].Reps != 8 || sets[1].WeightKg != 90 {
		t.Errorf("sets mismatch: %+v", sets)
	}
}

func TestParseExerciseSpecErrors(t *testing.T) {
	bad := []string{
		"",
		"Bench press",
		"Bench press:",
		":10x20",
		"Bench press:10",
		"Bench press:tenxtwenty",
		"Bench press:-1x20",
		"Bench press:10x-5",
	}
	for _, spec := range bad {
		if _, _, err := parseExerciseSpec(spec); err == nil {
			t.Errorf("parseExerciseSpec(%q): expected error", spec)
		}
	}
}

func TestParseCardioSpec(t *testing.T) {
	name, cardio, err := parseCardioSpec("Treadmill:30:5.5")
	if err != nil {
		t.Fatalf("parseCardioSpec failed: %v", err)
	}
	if name != "Treadmill" {
		t.Errorf("name mismatch: got %q", name)
	}
	if cardio.Minutes != 30 || cardio.Km != 5.5 {
		t.Errorf("cardio mismatch: %+v", cardio)
	}
}

func TestParseCardioSpecErrors(t *testing.T) {
	bad := []string{
		"",
		"Treadmill",
		"Treadmill:30",
		"Treadmill:30:5:extra",
		":30:5",
		"Treadmill:abc:5",
		"Treadmill:30:abc",
		"Treadmill:-1:5",
		"Treadmill:30:-2",
	}
	for _, spec := range bad {
		if _, _, err := parseCardioSpec(spec); err == nil {
			t.Errorf("parseCardioSpec(%q): expected error", spec)
		}
	}
}
