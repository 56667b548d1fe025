// ABOUTME: Tests for snapshot export and destructive full-replace import.
// ABOUTME: Verifies key preservation, atomicity, and invalid-format rejection.
package storage

import (
	"errors"
	"testing"

	"github.com/harperreed/fitlog/internal/models"
)

// populatedStore seeds the catalog and logs one gym session with detail.
func populatedStore(t *testing.T) (*Store, *models.Session) {
	t.Helper()

	s := seededStore(t)
	bench := catalogEntry(t, s, "Bench press")
	treadmill := catalogEntry(t, s, "Treadmill")

	draft := models.NewSession("2026-05-02", models.SessionGym).WithDuration(55)
	rows := []models.ExerciseRow{
		{Exercise: bench, Done: true, Sets: []models.SetDraft{
			{SetNumber: 1, Reps: 10, WeightKg: 40},
			{SetNumber: 2, Reps: 8, WeightKg: 45},
		}},
		{Exercise: treadmill, Done: true, Cardio: &models.CardioDraft{Minutes: 15, Km: 2.5}},
	}
	saved, err := s.SaveSession(draft, rows)
	if err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}
	return s, saved
}

func TestExportSnapshot(t *testing.T) {
	s, saved := populatedStore(t)

	doc, err := s.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if doc.Version != 1 {
		t.Errorf("version mismatch: got %d, want 1", doc.Version)
	}
	if doc.ExportedAt.IsZero() {
		t.Error("exportedAt not stamped")
	}
	if len(doc.Data.Sessions) != 1 || doc.Data.Sessions[0].ID != saved.ID {
		t.Errorf("sessions mismatch: %+v", doc.Data.Sessions)
	}
	if len(doc.Data.Exercises) != 40 {
		t.Errorf("exercise count mismatch: got %d, want 40", len(doc.Data.Exercises))
	}
	if len(doc.Data.SessionExercises) != 2 || len(doc.Data.Sets) != 2 || len(doc.Data.Cardio) != 1 {
		t.Errorf("dependent counts mismatch: %d/%d/%d",
			len(doc.Data.SessionExercises), len(doc.Data.Sets), len(doc.Data.Cardio))
	}
	if len(doc.Data.Meta) == 0 {
		t.Error("meta rows missing from snapshot")
	}
}

func TestImportRoundTrip(t *testing.T) {
	src, saved := populatedStore(t)

	data, err := src.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	dst := setupTestStore(t)
	if err := dst.ImportJSON(data); err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}

	// Primary keys survive, so the session is addressable by its old id.
	detail, err := dst.LoadSessionDetail(saved.ID)
	if err != nil {
		t.Fatalf("LoadSessionDetail failed: %v", err)
	}
	if detail == nil || len(detail.Rows) != 2 {
		t.Fatalf("imported detail mismatch: %+v", detail)
	}
	if detail.Rows[0].Exercise == nil || detail.Rows[0].Exercise.Name != "Bench press" {
		t.Errorf("imported join broken: %+v", detail.Rows[0].Exercise)
	}

	// The seed flag travels in meta, so a seeded snapshot does not reseed.
	if err := dst.EnsureSeed(); err != nil {
		t.Fatalf("EnsureSeed failed: %v", err)
	}
	all, err := dst.ListExercises("")
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	if len(all) != 40 {
		t.Errorf("catalog duplicated after import: got %d, want 40", len(all))
	}
}

func TestImportReplacesExistingData(t *testing.T) {
	src, _ := populatedStore(t)
	data, err := src.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	dst := setupTestStore(t)
	stale, err := dst.SaveSession(models.NewSession("2020-01-01", models.SessionBasketball), nil)
	if err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	if err := dst.ImportJSON(data); err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}

	old, err := dst.SessionsByDate("2020-01-01")
	if err != nil {
		t.Fatalf("SessionsByDate failed: %v", err)
	}
	if len(old) != 0 {
		t.Errorf("pre-import session %d survived the replace", stale.ID)
	}
}

func TestImportKeysDoNotCollideAfterwards(t *testing.T) {
	src, saved := populatedStore(t)
	data, err := src.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	dst := setupTestStore(t)
	if err := dst.ImportJSON(data); err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}

	next, err := dst.SaveSession(models.NewSession("2026-05-03", models.SessionBasketball), nil)
	if err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}
	if next.ID <= saved.ID {
		t.Errorf("new key %d collides with imported key space (max %d)", next.ID, saved.ID)
	}
}

func TestImportRejectsMissingData(t *testing.T) {
	s := setupTestStore(t)

	if err := s.Import(nil); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("nil document: expected ErrInvalidFormat, got %v", err)
	}
	if err := s.Import(&ExportDocument{Version: 1}); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("missing data: expected ErrInvalidFormat, got %v", err)
	}
}

func TestImportRejectsGarbageWithoutMutating(t *testing.T) {
	s, saved := populatedStore(t)

	if err := s.ImportJSON([]byte("not json at all")); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}

	// The failed import must leave existing data alone.
	detail, err := s.LoadSessionDetail(saved.ID)
	if err != nil {
		t.Fatalf("LoadSessionDetail failed: %v", err)
	}
	if detail == nil || len(detail.Rows) != 2 {
		t.Errorf("store mutated by rejected import: %+v", detail)
	}
}
