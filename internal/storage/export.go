// ABOUTME: Whole-store snapshot export and destructive full-replace import.
// ABOUTME: Import validates shape before touching the store; the replace is atomic.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/fitlog/internal/kv"
	"github.com/harperreed/fitlog/internal/models"
)

// exportVersion is the snapshot document version.
const exportVersion = 1

// ExportData holds the full unfiltered dump of every table.
type ExportData struct {
	Sessions         []*models.Session         `json:"sessions"`
	Exercises        []*models.Exercise        `json:"exercises"`
	SessionExercises []*models.SessionExercise `json:"sessionExercises"`
	Sets             []*models.Set             `json:"sets"`
	Cardio           []*models.Cardio          `json:"cardio"`
	Meta             []kv.MetaEntry            `json:"meta"`
}

// ExportDocument is the portable snapshot format.
type ExportDocument struct {
	Version    int         `json:"version"`
	ExportedAt time.Time   `json:"exportedAt"`
	Data       *ExportData `json:"data"`
}

// Export produces a full snapshot of every table in one read transaction.
func (s *Store) Export() (*ExportDocument, error) {
	data := &ExportData{}
	err := s.kv.View(func(tx *kv.Tx) error {
		var err error
		if data.Sessions, err = kv.TxGetAll[models.Session](tx, tableSessions); err != nil {
			return err
		}
		if data.Exercises, err = kv.TxGetAll[models.Exercise](tx, tableExercises); err != nil {
			return err
		}
		if data.SessionExercises, err = kv.TxGetAll[models.SessionExercise](tx, tableSessionExercises); err != nil {
			return err
		}
		if data.Sets, err = kv.TxGetAll[models.Set](tx, tableSets); err != nil {
			return err
		}
		if data.Cardio, err = kv.TxGetAll[models.Cardio](tx, tableCardio); err != nil {
			return err
		}
		data.Meta, err = tx.MetaAll()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	return &ExportDocument{
		Version:    exportVersion,
		ExportedAt: time.Now().UTC(),
		Data:       data,
	}, nil
}

// ExportJSON renders the snapshot as indented JSON.
func (s *Store) ExportJSON() ([]byte, error) {
	doc, err := s.Export()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Import replaces the entire store contents with the document's data.
// Shape validation happens before any mutation, and the clear plus
// re-insert run in one transaction, so a failed import leaves the store
// untouched. Records keep their original primary keys; tables load in
// dependency order.
func (s *Store) Import(doc *ExportDocument) error {
	if doc == nil || doc.Data == nil {
		return fmt.Errorf("import: %w: missing data", ErrInvalidFormat)
	}
	data := doc.Data

	err := s.kv.Update(func(tx *kv.Tx) error {
		if err := tx.ClearAll(); err != nil {
			return err
		}
		for _, m := range data.Meta {
			if err := tx.MetaSet(m.Key, m.Value); err != nil {
				return err
			}
		}
		for _, e := range data.Exercises {
			if err := tx.Put(tableExercises, e); err != nil {
				return err
			}
		}
		for _, ses := range data.Sessions {
			if err := tx.Put(tableSessions, ses); err != nil {
				return err
			}
		}
		for _, se := range data.SessionExercises {
			if err := tx.Put(tableSessionExercises, se); err != nil {
				return err
			}
		}
		for _, set := range data.Sets {
			if err := tx.Put(tableSets, set); err != nil {
				return err
			}
		}
		for _, cd := range data.Cardio {
			if err := tx.Put(tableCardio, cd); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	return nil
}

// ImportJSON parses and imports a snapshot document. Parse failures
// surface as ErrInvalidFormat without touching the store.
func (s *Store) ImportJSON(data []byte) error {
	var doc ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("import: %w: %v", ErrInvalidFormat, err)
	}
	return s.Import(&doc)
}
