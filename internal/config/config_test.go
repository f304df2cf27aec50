package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vocabengine/internal/review"
	"github.com/example/vocabengine/internal/storage"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, StorageFile, cfg.Storage)
	assert.Equal(t, review.DefaultSessionSize, cfg.SessionSize)
	assert.Equal(t, time.Hour, cfg.ReminderInterval)
	assert.Equal(t, 8, cfg.ReminderStartHour)
	assert.Equal(t, 22, cfg.ReminderEndHour)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("VOCAB_DATA_DIR", "/tmp/vocab")
	t.Setenv("VOCAB_STORAGE", StorageSQLite)
	t.Setenv("VOCAB_SESSION_SIZE", "10")
	t.Setenv("VOCAB_REMINDER_INTERVAL", "30m")
	t.Setenv("VOCAB_REMINDER_START_HOUR", "6")

	cfg := Load()
	assert.Equal(t, "/tmp/vocab", cfg.DataDir)
	assert.Equal(t, StorageSQLite, cfg.Storage)
	assert.Equal(t, 10, cfg.SessionSize)
	assert.Equal(t, 30*time.Minute, cfg.ReminderInterval)
	assert.Equal(t, 6, cfg.ReminderStartHour)
}

func TestLoad_InvalidValuesKeepDefaults(t *testing.T) {
	t.Setenv("VOCAB_SESSION_SIZE", "zero")
	t.Setenv("VOCAB_REMINDER_START_HOUR", "25")

	cfg := Load()
	assert.Equal(t, review.DefaultSessionSize, cfg.SessionSize)
	assert.Equal(t, 8, cfg.ReminderStartHour)
}

func TestOpenRepository_File(t *testing.T) {
	cfg := Config{Storage: StorageFile, DataDir: t.TempDir()}

	repo, err := cfg.OpenRepository()
	require.NoError(t, err)
	_, ok := repo.(*storage.FileRepository)
	assert.True(t, ok)
}

func TestOpenRepository_PostgresRequiresURL(t *testing.T) {
	cfg := Config{Storage: StoragePostgres}
	_, err := cfg.OpenRepository()
	assert.Error(t, err)
}

func TestOpenRepository_UnknownBackend(t *testing.T) {
	cfg := Config{Storage: "redis"}
	_, err := cfg.OpenRepository()
	assert.Error(t, err)
}
