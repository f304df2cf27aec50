package models

import "time"

// BundleVersion is the current export bundle format version
const BundleVersion = 1

// ExportBundle wraps the learner's full state for backup and transfer.
// Importing a bundle replaces the current progress and settings wholesale.
type ExportBundle struct {
	BundleID   string          `json:"bundleId"`
	Version    int             `json:"version"`
	ExportDate time.Time       `json:"exportDate"`
	Progress   LearnerProgress `json:"progress"`
	Settings   Settings        `json:"settings"`
}
