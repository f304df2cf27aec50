package engine

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/example/vocabengine/pkg/models"
)

// ErrInvalidBundle rejects an import document missing required fields.
// This is the one engine error meant to reach the learner.
var ErrInvalidBundle = errors.New("invalid import bundle")

// Export captures the learner's full state as a transferable bundle
func (e *Engine) Export() models.ExportBundle {
	return models.ExportBundle{
		BundleID:   uuid.NewString(),
		Version:    models.BundleVersion,
		ExportDate: e.now(),
		Progress:   e.loadProgress(),
		Settings:   e.Settings(),
	}
}

// ExportJSON serializes the export bundle
func (e *Engine) ExportJSON() ([]byte, error) {
	data, err := json.MarshalIndent(e.Export(), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encode export bundle")
	}
	return data, nil
}

// Import replaces the current progress and settings wholesale with the
// bundle's contents. A bundle missing its progress or settings document is
// rejected with ErrInvalidBundle and the current state is left untouched.
func (e *Engine) Import(raw []byte) error {
	var head map[string]json.RawMessage
	if err := json.Unmarshal(raw, &head); err != nil {
		return errors.Wrap(ErrInvalidBundle, err.Error())
	}
	for _, key := range []string{"progress", "settings"} {
		if _, ok := head[key]; !ok {
			return errors.Wrapf(ErrInvalidBundle, "missing %q", key)
		}
	}

	var bundle models.ExportBundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return errors.Wrap(ErrInvalidBundle, err.Error())
	}
	bundle.Progress.Normalize()
	bundle.Settings.Clamp()

	if err := e.repo.SaveProgress(bundle.Progress); err != nil {
		return errors.Wrap(err, "import progress")
	}
	if err := e.repo.SaveSettings(bundle.Settings); err != nil {
		return errors.Wrap(err, "import settings")
	}
	return nil
}

// ImportBundle is Import for an already-decoded bundle
func (e *Engine) ImportBundle(bundle models.ExportBundle) error {
	data, err := json.Marshal(bundle)
	if err != nil {
		return errors.Wrap(ErrInvalidBundle, err.Error())
	}
	return e.Import(data)
}
