package storage

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/example/vocabengine/pkg/models"
)

// Supported SQL drivers
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// SQLRepository stores each learner document as one row in a documents
// table, on SQLite or Postgres.
type SQLRepository struct {
	db     *sqlx.DB
	driver string
}

// NewSQLRepository connects with the given driver and DSN and initializes
// the schema.
func NewSQLRepository(driver, dsn string) (*SQLRepository, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(ErrStorageUnavailable, "connect %s: %v", driver, err)
	}

	if driver == DriverSQLite {
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, errors.Wrapf(ErrStorageUnavailable, "enable foreign keys: %v", err)
		}
	}

	r := &SQLRepository{db: db, driver: driver}
	if err := r.initializeSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

// Close closes the database connection
func (r *SQLRepository) Close() error {
	return r.db.Close()
}

func (r *SQLRepository) initializeSchema() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS documents (
			name TEXT PRIMARY KEY,
			body TEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return errors.Wrapf(ErrStorageUnavailable, "create documents table: %v", err)
	}
	return nil
}

const (
	docProgress = "progress"
	docSettings = "settings"
)

func (r *SQLRepository) load(name string) ([]byte, error) {
	var body string
	err := r.db.Get(&body, "SELECT body FROM documents WHERE name = $1", name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(ErrStorageUnavailable, "load %s: %v", name, err)
	}
	return []byte(body), nil
}

func (r *SQLRepository) store(name string, body []byte) error {
	_, err := r.db.Exec(`
		INSERT INTO documents (name, body, updated_at) VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (name) DO UPDATE SET body = $2, updated_at = CURRENT_TIMESTAMP
	`, name, string(body))
	if err != nil {
		return errors.Wrapf(ErrStorageUnavailable, "store %s: %v", name, err)
	}
	return nil
}

func (r *SQLRepository) LoadProgress() (models.LearnerProgress, error) {
	raw, err := r.load(docProgress)
	if err != nil {
		return models.NewLearnerProgress(), err
	}
	return MigrateProgress(raw)
}

func (r *SQLRepository) SaveProgress(p models.LearnerProgress) error {
	data, err := EncodeProgress(p)
	if err != nil {
		return err
	}
	return r.store(docProgress, data)
}

func (r *SQLRepository) LoadSettings() (models.Settings, error) {
	raw, err := r.load(docSettings)
	if err != nil {
		return models.DefaultSettings(), err
	}
	return DecodeSettings(raw)
}

func (r *SQLRepository) SaveSettings(s models.Settings) error {
	data, err := EncodeSettings(s)
	if err != nil {
		return err
	}
	return r.store(docSettings, data)
}

func (r *SQLRepository) ResetProgress() error {
	_, err := r.db.Exec("DELETE FROM documents WHERE name = $1", docProgress)
	if err != nil {
		return errors.Wrapf(ErrStorageUnavailable, "reset progress: %v", err)
	}
	return nil
}
