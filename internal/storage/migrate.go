package storage

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/example/vocabengine/pkg/models"
)

// ProgressSchemaVersion is the version written with every progress document
const ProgressSchemaVersion = 1

// progressDocument is the on-disk envelope of the progress state
type progressDocument struct {
	Version int `json:"version"`
	models.LearnerProgress
}

// MigrateProgress parses a stored progress document of any known version
// into the current shape. Missing fields are filled with defaults; schema
// evolution is strictly additive, so an older document is never rejected
// for lacking newer fields. An empty document yields a fresh learner.
func MigrateProgress(raw []byte) (models.LearnerProgress, error) {
	if len(raw) == 0 {
		return models.NewLearnerProgress(), nil
	}

	version, err := detectVersion(raw)
	if err != nil {
		return models.NewLearnerProgress(), err
	}

	switch version {
	case 0, ProgressSchemaVersion:
		// Version 0 is the legacy un-versioned document. Its fields are a
		// subset of the current shape, so both decode the same way.
		var doc progressDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			return models.NewLearnerProgress(), errors.Wrap(ErrMalformedDocument, err.Error())
		}
		p := doc.LearnerProgress
		p.Normalize()
		return p, nil
	default:
		// A document from the future: take the fields we know and keep going
		var doc progressDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			return models.NewLearnerProgress(), errors.Wrap(ErrMalformedDocument, err.Error())
		}
		p := doc.LearnerProgress
		p.Normalize()
		return p, nil
	}
}

// detectVersion reads the version field by shape; an absent field marks the
// legacy document format.
func detectVersion(raw []byte) (int, error) {
	var head struct {
		Version *int `json:"version"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return 0, errors.Wrap(ErrMalformedDocument, err.Error())
	}
	if head.Version == nil {
		return 0, nil
	}
	return *head.Version, nil
}

// EncodeProgress serializes progress in the current document format
func EncodeProgress(p models.LearnerProgress) ([]byte, error) {
	doc := progressDocument{Version: ProgressSchemaVersion, LearnerProgress: p}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encode progress document")
	}
	return data, nil
}

// DecodeSettings parses a stored settings document, falling back to
// defaults when it cannot be parsed.
func DecodeSettings(raw []byte) (models.Settings, error) {
	if len(raw) == 0 {
		return models.DefaultSettings(), nil
	}
	var s models.Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		return models.DefaultSettings(), errors.Wrap(ErrMalformedDocument, err.Error())
	}
	return s, nil
}

// EncodeSettings serializes settings, preserving any unknown keys
func EncodeSettings(s models.Settings) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encode settings document")
	}
	return data, nil
}
