package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/example/vocabengine/internal/review"
	"github.com/example/vocabengine/internal/storage"
)

// Storage backend names accepted in VOCAB_STORAGE
const (
	StorageFile     = "file"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Config holds the host-level settings of the engine, loaded from the
// environment (with an optional .env file).
type Config struct {
	// DataDir is where the file backend keeps its documents and where the
	// sqlite backend places its database
	DataDir string
	// Storage selects the backend: file, sqlite or postgres
	Storage string
	// DatabaseURL is the postgres DSN, required for the postgres backend
	DatabaseURL string
	// SessionSize overrides the default review session cap
	SessionSize int
	// ReminderInterval is how often the due-words reminder checks
	ReminderInterval time.Duration
	// ReminderStartHour/EndHour bound the hours reminders may fire
	ReminderStartHour int
	ReminderEndHour   int
}

// Load reads configuration from the environment. A .env file in the
// working directory is honored when present.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		DataDir:           "data",
		Storage:           StorageFile,
		SessionSize:       review.DefaultSessionSize,
		ReminderInterval:  time.Hour,
		ReminderStartHour: 8,
		ReminderEndHour:   22,
	}

	if v := os.Getenv("VOCAB_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("VOCAB_STORAGE"); v != "" {
		cfg.Storage = v
	}
	if v := os.Getenv("VOCAB_DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("VOCAB_SESSION_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SessionSize = n
		}
	}
	if v := os.Getenv("VOCAB_REMINDER_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.ReminderInterval = d
		}
	}
	if v := os.Getenv("VOCAB_REMINDER_START_HOUR"); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			cfg.ReminderStartHour = h
		}
	}
	if v := os.Getenv("VOCAB_REMINDER_END_HOUR"); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			cfg.ReminderEndHour = h
		}
	}
	return cfg
}

// OpenRepository builds the configured storage backend
func (c Config) OpenRepository() (storage.Repository, error) {
	switch c.Storage {
	case StorageFile, "":
		return storage.NewFileRepository(c.DataDir)
	case StorageSQLite:
		if err := os.MkdirAll(c.DataDir, 0755); err != nil {
			return nil, errors.Wrap(err, "create data directory")
		}
		return storage.NewSQLRepository(storage.DriverSQLite, filepath.Join(c.DataDir, "vocabengine.db"))
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return nil, errors.New("VOCAB_DATABASE_URL is required for postgres storage")
		}
		return storage.NewSQLRepository(storage.DriverPostgres, c.DatabaseURL)
	default:
		return nil, errors.Errorf("unknown storage backend %q", c.Storage)
	}
}
