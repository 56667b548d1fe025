// ABOUTME: Repository interface for fitness session storage.
// ABOUTME: Defines the contract for session, exercise, and snapshot operations.
package storage

import "github.com/harperreed/fitlog/internal/models"

// Repository defines the storage interface for fitness data.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Session operations
	SaveSession(draft *models.Session, rows []models.ExerciseRow) (*models.Session, error)
	DeleteSessionCascade(sessionID uint64) error
	LoadSessionDetail(sessionID uint64) (*models.SessionDetail, error)
	GetSession(sessionID uint64) (*models.Session, error)
	SessionsByDate(dateISO string) ([]*models.Session, error)
	SessionsByMonth(monthKey string) ([]*models.Session, error)

	// Exercise catalog operations
	AddExercise(e *models.Exercise) (*models.Exercise, error)
	GetExercise(exerciseID uint64) (*models.Exercise, error)
	ListExercises(group string) ([]*models.Exercise, error)
	ExercisesByName(name string) ([]*models.Exercise, error)
	EnsureSeed() error

	// Snapshot operations
	Export() (*ExportDocument, error)
	ExportJSON() ([]byte, error)
	Import(doc *ExportDocument) error
	ImportJSON(data []byte) error
	ClearAll() error

	// Meta operations
	MetaGet(key string) (string, bool, error)
	MetaSet(key, value string) error

	// Lifecycle
	Close() error
}

var _ Repository = (*Store)(nil)
