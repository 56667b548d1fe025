// ABOUTME: Table and index definitions plus versioned schema migration.
// ABOUTME: Provisioning is idempotent and safe to run on every startup.
package storage

import (
	"fmt"

	"github.com/harperreed/fitlog/internal/kv"
	"github.com/harperreed/fitlog/internal/models"
)

// Table names.
const (
	tableSessions         = "sessions"
	tableExercises        = "exercises"
	tableSessionExercises = "sessionExercises"
	tableSets             = "sets"
	tableCardio           = "cardio"
)

// Index names.
const (
	idxByDate            = "by_date"
	idxByMonth           = "by_month"
	idxByGroup           = "by_group"
	idxByName            = "by_name"
	idxBySession         = "by_session"
	idxBySessionExercise = "by_sessionExercise"
)

const schemaVersion = 1

// tables declares the full schema: five record tables with their secondary
// indices. The meta table is built into the store.
func tables() []kv.Table {
	return []kv.Table{
		{
			Name: tableSessions,
			Indices: []kv.Index{
				{Name: idxByDate, Value: func(r kv.Record) string { return r.(*models.Session).DateISO }},
				{Name: idxByMonth, Value: func(r kv.Record) string { return r.(*models.Session).MonthKey }},
			},
		},
		{
			Name: tableExercises,
			Indices: []kv.Index{
				{Name: idxByGroup, Value: func(r kv.Record) string { return r.(*models.Exercise).Group }},
				{Name: idxByName, Value: func(r kv.Record) string { return r.(*models.Exercise).Name }},
			},
		},
		{
			Name: tableSessionExercises,
			Indices: []kv.Index{
				{Name: idxBySession, Value: func(r kv.Record) string {
					return kv.Uint64Key(r.(*models.SessionExercise).SessionID)
				}},
			},
		},
		{
			Name: tableSets,
			Indices: []kv.Index{
				{Name: idxBySessionExercise, Value: func(r kv.Record) string {
					return kv.Uint64Key(r.(*models.Set).SessionExerciseID)
				}},
			},
		},
		{
			Name: tableCardio,
			Indices: []kv.Index{
				{Name: idxBySessionExercise, Unique: true, Value: func(r kv.Record) string {
					return kv.Uint64Key(r.(*models.Cardio).SessionExerciseID)
				}},
			},
		},
	}
}

// migrations run once each, in order, gated by the persisted schema
// version. Index 0 migrates a fresh store to v1.
var migrations = []func(*kv.Store) error{
	// v1: initial tables and indices. Registration happens when the store
	// opens with the schema above; nothing stored needs transforming.
	func(*kv.Store) error { return nil },
}

// migrate applies any pending schema migrations.
func migrate(s *kv.Store) error {
	version, err := s.SchemaVersion()
	if err != nil {
		return err
	}
	for i := int(version); i < len(migrations); i++ {
		if err := migrations[i](s); err != nil {
			return fmt.Errorf("migrate schema to v%d: %w", i+1, err)
		}
		if err := s.SetSchemaVersion(uint64(i + 1)); err != nil {
			return fmt.Errorf("record schema v%d: %w", i+1, err)
		}
	}
	return nil
}
