// ABOUTME: Session save, cascade delete, and detail reconstruction.
// ABOUTME: Every delete-then-reinsert sequence runs in one atomic transaction.
package storage

import (
	"fmt"
	"sort"

	"github.com/harperreed/fitlog/internal/kv"
	"github.com/harperreed/fitlog/internal/models"
)

// SaveSession upserts a session and replaces its dependent rows. The
// monthKey is always recomputed from dateISO before writing. Non-gym
// sessions never own exercise detail, so their dependents are deleted.
// Gym sessions get a full replace: all previous dependents are removed and
// one SessionExercise per draft row is inserted in slice order, with
// orderIndex reassigned from position. Rows without a resolved exercise
// are skipped silently. The whole operation is a single transaction.
func (s *Store) SaveSession(draft *models.Session, rows []models.ExerciseRow) (*models.Session, error) {
	if draft == nil {
		return nil, fmt.Errorf("save session: nil draft")
	}
	if !models.ValidDateISO(draft.DateISO) {
		return nil, fmt.Errorf("save session: invalid date %q", draft.DateISO)
	}
	if !models.IsValidSessionType(string(draft.Type)) {
		return nil, fmt.Errorf("save session: invalid type %q", draft.Type)
	}
	draft.Normalize()

	err := s.kv.Update(func(tx *kv.Tx) error {
		if err := tx.Put(tableSessions, draft); err != nil {
			return err
		}
		if err := deleteDependents(tx, draft.ID); err != nil {
			return err
		}
		if draft.Type != models.SessionGym {
			return nil
		}

		for i, row := range rows {
			if row.Exercise == nil || row.Exercise.ID == 0 {
				continue
			}
			se := &models.SessionExercise{
				SessionID:  draft.ID,
				ExerciseID: row.Exercise.ID,
				OrderIndex: i,
			}
			if row.Done {
				se.Done = 1
			}
			seID, err := tx.Add(tableSessionExercises, se)
			if err != nil {
				return err
			}

			if row.Exercise.Kind == models.KindCardio {
				cd := &models.Cardio{SessionExerciseID: seID}
				if row.Cardio != nil {
					cd.Minutes = clampFloat(row.Cardio.Minutes)
					cd.Km = clampFloat(row.Cardio.Km)
				}
				if _, err := tx.Add(tableCardio, cd); err != nil {
					return err
				}
				continue
			}

			for _, sd := range row.Sets {
				set := &models.Set{
					SessionExerciseID: seID,
					SetNumber:         sd.SetNumber,
					Reps:              clampInt(sd.Reps),
					WeightKg:          clampFloat(sd.WeightKg),
				}
				if _, err := tx.Add(tableSets, set); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return draft, nil
}

// DeleteSessionCascade removes a session together with all of its
// SessionExercise, Set, and Cardio rows. No-op if the session is absent.
func (s *Store) DeleteSessionCascade(sessionID uint64) error {
	err := s.kv.Update(func(tx *kv.Tx) error {
		ses, err := kv.TxGet[models.Session](tx, tableSessions, sessionID)
		if err != nil {
			return err
		}
		if ses == nil {
			return nil
		}
		if err := deleteDependents(tx, sessionID); err != nil {
			return err
		}
		return tx.Delete(tableSessions, sessionID)
	})
	if err != nil {
		return fmt.Errorf("delete session %d: %w", sessionID, err)
	}
	return nil
}

// LoadSessionDetail reconstructs the editable shape for a session: its
// SessionExercise rows ordered by orderIndex, each joined with its
// Exercise, Set list ordered by setNumber, and Cardio row. Returns nil
// when the session does not exist.
func (s *Store) LoadSessionDetail(sessionID uint64) (*models.SessionDetail, error) {
	var detail *models.SessionDetail
	err := s.kv.View(func(tx *kv.Tx) error {
		ses, err := kv.TxGet[models.Session](tx, tableSessions, sessionID)
		if err != nil || ses == nil {
			return err
		}

		seList, err := kv.TxGetAllByIndex[models.SessionExercise](
			tx, tableSessionExercises, idxBySession, kv.Uint64Key(sessionID))
		if err != nil {
			return err
		}
		sort.Slice(seList, func(i, j int) bool {
			return seList[i].OrderIndex < seList[j].OrderIndex
		})

		detail = &models.SessionDetail{Session: ses}
		for _, se := range seList {
			row := &models.DetailRow{SessionExercise: se}

			row.Exercise, err = kv.TxGet[models.Exercise](tx, tableExercises, se.ExerciseID)
			if err != nil {
				return err
			}

			row.Sets, err = kv.TxGetAllByIndex[models.Set](
				tx, tableSets, idxBySessionExercise, kv.Uint64Key(se.ID))
			if err != nil {
				return err
			}
			sort.Slice(row.Sets, func(i, j int) bool {
				return row.Sets[i].SetNumber < row.Sets[j].SetNumber
			})

			cardio, err := kv.TxGetAllByIndex[models.Cardio](
				tx, tableCardio, idxBySessionExercise, kv.Uint64Key(se.ID))
			if err != nil {
				return err
			}
			if len(cardio) > 0 {
				row.Cardio = cardio[0]
			}

			detail.Rows = append(detail.Rows, row)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load session %d: %w", sessionID, err)
	}
	return detail, nil
}

// GetSession retrieves a session by id, nil when absent.
func (s *Store) GetSession(sessionID uint64) (*models.Session, error) {
	return kv.Get[models.Session](s.kv, tableSessions, sessionID)
}

// SessionsByDate returns all sessions on a calendar date.
func (s *Store) SessionsByDate(dateISO string) ([]*models.Session, error) {
	return kv.GetAllByIndex[models.Session](s.kv, tableSessions, idxByDate, dateISO)
}

// SessionsByMonth returns all sessions whose monthKey matches.
func (s *Store) SessionsByMonth(monthKey string) ([]*models.Session, error) {
	return kv.GetAllByIndex[models.Session](s.kv, tableSessions, idxByMonth, monthKey)
}

// deleteDependents removes every SessionExercise owned by the session,
// along with each one's Set rows and Cardio row.
func deleteDependents(tx *kv.Tx, sessionID uint64) error {
	seList, err := kv.TxGetAllByIndex[models.SessionExercise](
		tx, tableSessionExercises, idxBySession, kv.Uint64Key(sessionID))
	if err != nil {
		return err
	}

	for _, se := range seList {
		sets, err := kv.TxGetAllByIndex[models.Set](
			tx, tableSets, idxBySessionExercise, kv.Uint64Key(se.ID))
		if err != nil {
			return err
		}
		for _, set := range sets {
			if err := tx.Delete(tableSets, set.ID); err != nil {
				return err
			}
		}

		cardio, err := kv.TxGetAllByIndex[models.Cardio](
			tx, tableCardio, idxBySessionExercise, kv.Uint64Key(se.ID))
		if err != nil {
			return err
		}
		for _, cd := range cardio {
			if err := tx.Delete(tableCardio, cd.ID); err != nil {
				return err
			}
		}

		if err := tx.Delete(tableSessionExercises, se.ID); err != nil {
			return err
		}
	}
	return nil
}

func clampInt(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func clampFloat(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
