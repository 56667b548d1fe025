// ABOUTME: Dependent records for gym sessions: session exercises, sets, cardio.
// ABOUTME: Also defines the in-memory draft row shape used by the edit workflow.
package models

// SessionExercise binds one Session to one Exercise for a given occasion.
// Done is stored as an int (0/1) to match the persisted wire shape.
type SessionExercise struct {
	ID         uint64 `json:"id"`
	SessionID  uint64 `json:"sessionId"`
	ExerciseID uint64 `json:"exerciseId"`
	Done       int    `json:"done"`
	OrderIndex int    `json:"orderIndex"`
}

// RecordID returns the primary key.
func (se *SessionExercise) RecordID() uint64 { return se.ID }

// SetRecordID assigns the primary key.
func (se *SessionExercise) SetRecordID(id uint64) { se.ID = id }

// Set is one strength set belonging to a session exercise.
type Set struct {
	ID                uint64  `json:"id"`
	SessionExerciseID uint64  `json:"sessionExerciseId"`
	SetNumber         int     `json:"setNumber"`
	Reps              int     `json:"reps"`
	WeightKg          float64 `json:"weightKg"`
}

// RecordID returns the primary key.
func (s *Set) RecordID() uint64 { return s.ID }

// SetRecordID assigns the primary key.
func (s *Set) SetRecordID(id uint64) { s.ID = id }

// Cardio holds duration/distance detail for a cardio session exercise.
// At most one cardio row may exist per session exercise.
type Cardio struct {
	ID                uint64  `json:"id"`
	SessionExerciseID uint64  `json:"sessionExerciseId"`
	Minutes           float64 `json:"minutes"`
	Km                float64 `json:"km"`
}

// RecordID returns the primary key.
func (c *Cardio) RecordID() uint64 { return c.ID }

// SetRecordID assigns the primary key.
func (c *Cardio) SetRecordID(id uint64) { c.ID = id }

// SetDraft is one set row of an unsaved exercise draft.
type SetDraft struct {
	SetNumber int
	Reps      int
	WeightKg  float64
}

// CardioDraft is the cardio detail of an unsaved exercise draft.
type CardioDraft struct {
	Minutes float64
	Km      float64
}

// ExerciseRow is one entry of the ordered draft list the edit workflow
// maintains in memory before a bulk save. Slice position, not any stored
// orderIndex, decides the persisted order.
type ExerciseRow struct {
	Exercise *Exercise
	Done     bool
	Sets     []SetDraft
	Cardio   *CardioDraft
}

// DetailRow is one resolved session exercise with its joined detail.
type DetailRow struct {
	SessionExercise *SessionExercise
	Exercise        *Exercise
	Sets            []*Set
	Cardio          *Cardio
}

// SessionDetail is the editable shape reconstructed from storage.
type SessionDetail struct {
	Session *Session
	Rows    []*DetailRow
}

// DraftRows converts resolved detail rows back into the draft list shape,
// ready for re-save after in-memory edits.
func (d *SessionDetail) DraftRows() []ExerciseRow {
	rows := make([]ExerciseRow, 0, len(d.Rows))
	for _, r := range d.Rows {
		row := ExerciseRow{
			Exercise: r.Exercise,
			Done:     r.SessionExercise.Done != 0,
		}
		for _, s := range r.Sets {
			row.Sets = append(row.Sets, SetDraft{SetNumber: s.SetNumber, Reps: s.Reps, WeightKg: s.WeightKg})
		}
		if r.Cardio != nil {
			row.Cardio = &CardioDraft{Minutes: r.Cardio.Minutes, Km: r.Cardio.Km}
		}
		rows = append(rows, row)
	}
	return rows
}
