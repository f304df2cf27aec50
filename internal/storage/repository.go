package storage

import (
	"github.com/pkg/errors"

	"github.com/example/vocabengine/pkg/models"
)

// Error taxonomy of the persistence layer. Callers match with errors.Is.
var (
	// ErrStorageUnavailable means the medium could not be read or written
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrMalformedDocument means a stored document failed to parse
	ErrMalformedDocument = errors.New("malformed document")
)

// Repository persists the two learner documents. Load methods always return
// a usable value: on failure they return defaults alongside the error so a
// learning session can continue without durability.
type Repository interface {
	LoadProgress() (models.LearnerProgress, error)
	SaveProgress(models.LearnerProgress) error
	LoadSettings() (models.Settings, error)
	SaveSettings(models.Settings) error
	// ResetProgress restores the progress document to defaults.
	// Settings are left untouched.
	ResetProgress() error
}
