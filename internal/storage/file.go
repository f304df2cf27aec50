package storage

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/example/vocabengine/pkg/models"
)

const (
	progressFile = "progress.json"
	settingsFile = "settings.json"
)

// FileRepository stores the progress and settings documents as two JSON
// files inside a data directory.
type FileRepository struct {
	dir string
}

// NewFileRepository creates the data directory if needed and returns a
// repository over it.
func NewFileRepository(dir string) (*FileRepository, error) {
	if dir == "" {
		dir = "data"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(ErrStorageUnavailable, "create data directory: %v", err)
	}
	return &FileRepository{dir: dir}, nil
}

// LoadProgress reads and migrates the progress document. A missing file
// yields a fresh learner; a malformed one falls back to defaults with an
// ErrMalformedDocument the caller may log.
func (r *FileRepository) LoadProgress() (models.LearnerProgress, error) {
	raw, err := os.ReadFile(filepath.Join(r.dir, progressFile))
	if os.IsNotExist(err) {
		return models.NewLearnerProgress(), nil
	}
	if err != nil {
		return models.NewLearnerProgress(), errors.Wrapf(ErrStorageUnavailable, "read progress: %v", err)
	}
	return MigrateProgress(raw)
}

// SaveProgress writes the progress document atomically
func (r *FileRepository) SaveProgress(p models.LearnerProgress) error {
	data, err := EncodeProgress(p)
	if err != nil {
		return err
	}
	return r.writeFile(progressFile, data)
}

// LoadSettings reads the settings document, defaulting missing or
// malformed content.
func (r *FileRepository) LoadSettings() (models.Settings, error) {
	raw, err := os.ReadFile(filepath.Join(r.dir, settingsFile))
	if os.IsNotExist(err) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return models.DefaultSettings(), errors.Wrapf(ErrStorageUnavailable, "read settings: %v", err)
	}
	return DecodeSettings(raw)
}

// SaveSettings writes the settings document atomically
func (r *FileRepository) SaveSettings(s models.Settings) error {
	data, err := EncodeSettings(s)
	if err != nil {
		return err
	}
	return r.writeFile(settingsFile, data)
}

// ResetProgress removes the progress document; the next load starts fresh
func (r *FileRepository) ResetProgress() error {
	err := os.Remove(filepath.Join(r.dir, progressFile))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(ErrStorageUnavailable, "remove progress: %v", err)
	}
	return nil
}

// writeFile writes via a temp file and rename so a crash mid-write cannot
// leave a truncated document behind.
func (r *FileRepository) writeFile(name string, data []byte) error {
	target := filepath.Join(r.dir, name)
	tmp, err := os.CreateTemp(r.dir, name+".tmp-*")
	if err != nil {
		return errors.Wrapf(ErrStorageUnavailable, "create temp file: %v", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrapf(ErrStorageUnavailable, "write %s: %v", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(ErrStorageUnavailable, "close %s: %v", name, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(ErrStorageUnavailable, "replace %s: %v", name, err)
	}
	return nil
}
