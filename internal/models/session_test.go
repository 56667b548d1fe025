// ABOUTME: Tests for the session model: normalization, month keys, and
// ABOUTME: date validation.
package models

import "testing"

func TestMonthKeyFromISO(t *testing.T) {
	tests := []struct {
		dateISO string
		want    string
	}{
		{"2026-03-05", "2026-03"},
		{"2026-12-31", "2026-12"},
		{"2026-01", "2026-01"},
		{"short", "short"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := MonthKeyFromISO(tt.dateISO); got != tt.want {
			t.Errorf("MonthKeyFromISO(%q) = %q, want %q", tt.dateISO, got, tt.want)
		}
	}
}

func TestNormalizeRecomputesMonthKey(t *testing.T) {
	s := NewSession("2026-03-05", SessionGym)
	s.DateISO = "2026-08-20"
	s.Normalize()

	if s.MonthKey != "2026-08" {
		t.Errorf("monthKey mismatch: got %q, want \"2026-08\"", s.MonthKey)
	}
}

func TestNormalizeClampsDuration(t *testing.T) {
	s := NewSession("2026-03-05", SessionGym).WithDuration(-10)
	s.Normalize()

	if s.DurationMin != 0 {
		t.Errorf("duration not clamped: got %d", s.DurationMin)
	}
}

func TestNormalizeClearsForeignFields(t *testing.T) {
	s := NewSession("2026-03-05", SessionGym).
		WithIntensity("High").
		WithOtherName("Climbing")
	s.Normalize()
	if s.Intensity != "" || s.OtherName != "" {
		t.Errorf("gym session kept foreign fields: intensity=%q otherName=%q", s.Intensity, s.OtherName)
	}

	b := NewSession("2026-03-05", SessionBasketball).
		WithIntensity("High").
		WithOtherName("Climbing")
	b.Normalize()
	if b.Intensity != "High" {
		t.Errorf("basketball session lost intensity: %q", b.Intensity)
	}
	if b.OtherName != "" {
		t.Errorf("basketball session kept otherName: %q", b.OtherName)
	}

	o := NewSession("2026-03-05", SessionOther).
		WithIntensity("High").
		WithOtherName("Climbing")
	o.Normalize()
	if o.OtherName != "Climbing" {
		t.Errorf("other session lost otherName: %q", o.OtherName)
	}
	if o.Intensity != "" {
		t.Errorf("other session kept intensity: %q", o.Intensity)
	}
}

func TestIsValidSessionType(t *testing.T) {
	for _, valid := range []string{"gym", "basketball", "other"} {
		if !IsValidSessionType(valid) {
			t.Errorf("IsValidSessionType(%q) = false", valid)
		}
	}
	for _, invalid := range []string{"", "Gym", "swimming"} {
		if IsValidSessionType(invalid) {
			t.Errorf("IsValidSessionType(%q) = true", invalid)
		}
	}
}

func TestValidDateISO(t *testing.T) {
	for _, valid := range []string{"2026-03-05", "2024-02-29"} {
		if !ValidDateISO(valid) {
			t.Errorf("ValidDateISO(%q) = false", valid)
		}
	}
	for _, invalid := range []string{"", "2026-3-5", "2026-13-01", "2025-02-29", "03/05/2026"} {
		if ValidDateISO(invalid) {
			t.Errorf("ValidDateISO(%q) = true", invalid)
		}
	}
}

func TestValidMonthKey(t *testing.T) {
	if !ValidMonthKey("2026-03") {
		t.Error("ValidMonthKey(\"2026-03\") = false")
	}
	for _, invalid := range []string{"", "2026-3", "2026-13", "2026-03-05"} {
		if ValidMonthKey(invalid) {
			t.Errorf("ValidMonthKey(%q) = true", invalid)
		}
	}
}

func TestDraftRowsRoundTrip(t *testing.T) {
	detail := &SessionDetail{
		Session: NewSession("2026-03-05", SessionGym),
		Rows: []*DetailRow{
			{
				SessionExercise: &SessionExercise{ID: 1, Done: 1, OrderIndex: 0},
				Exercise:        &Exercise{ID: 5, Name: "Bench press"},
				Sets: []*Set{
					{SetNumber: 1, Reps: 10, WeightKg: 20},
					{SetNumber: 2, Reps: 8, WeightKg: 22.5},
				},
			},
			{
				SessionExercise: &SessionExercise{ID: 2, Done: 0, OrderIndex: 1},
				Exercise:        &Exercise{ID: 36, Name: "Treadmill", Kind: KindCardio},
				Cardio:          &Cardio{Minutes: 20, Km: 3},
			},
		},
	}

	rows := detail.DraftRows()
	if len(rows) != 2 {
		t.Fatalf("row count mismatch: got %d, want 2", len(rows))
	}
	if !rows[0].Done || rows[0].Exercise.Name != "Bench press" {
		t.Errorf("first row mismatch: %+v", rows[0])
	}
	if len(rows[0].Sets) != 2 || rows[0].Sets[1].WeightKg != 22.5 {
		t.Errorf("set drafts mismatch: %+v", rows[0].Sets)
	}
	if rows[1].Done {
		t.Errorf("done flag mismatch on second row")
	}
	if rows[1].Cardio == nil || rows[1].Cardio.Minutes != 20 || rows[1].Cardio.Km != 3 {
		t.Errorf("cardio draft mismatch: %+v", rows[1].Cardio)
	}
}
