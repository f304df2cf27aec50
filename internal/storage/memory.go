package storage

import (
	"github.com/example/vocabengine/pkg/models"
)

// MemoryRepository keeps both documents in process memory. It backs tests
// and hosts that opt out of durability, and round-trips through the same
// document codecs as the durable repositories.
type MemoryRepository struct {
	progress []byte
	settings []byte
}

// NewMemoryRepository returns an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) LoadProgress() (models.LearnerProgress, error) {
	return MigrateProgress(r.progress)
}

func (r *MemoryRepository) SaveProgress(p models.LearnerProgress) error {
	data, err := EncodeProgress(p)
	if err != nil {
		return err
	}
	r.progress = data
	return nil
}

func (r *MemoryRepository) LoadSettings() (models.Settings, error) {
	return DecodeSettings(r.settings)
}

func (r *MemoryRepository) SaveSettings(s models.Settings) error {
	data, err := EncodeSettings(s)
	if err != nil {
		return err
	}
	r.settings = data
	return nil
}

func (r *MemoryRepository) ResetProgress() error {
	r.progress = nil
	return nil
}
