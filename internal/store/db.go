// Package store persists imported datasets and user preferences in a
// local SQLite database.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrDatasetNotFound is returned when a dataset doesn't exist.
var ErrDatasetNotFound = errors.New("dataset not found")

// Open opens the SQLite database, creating it if necessary.
// The database is stored at ~/.liftshift/data.db
func Open() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %w", err)
	}
	return OpenAt(filepath.Join(home, ".liftshift", "data.db"))
}

// OpenAt opens (or creates) the database at an explicit path. Tests use
// this with ":memory:".
func OpenAt(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// migrate runs all database migrations.
func migrate(db *sql.DB) error {
	migrations := []string{
		// Imported datasets, raw text kept so a re-import after a parser
		// fix needs no fresh export from the user.
		`CREATE TABLE IF NOT EXISTS datasets (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			platform TEXT NOT NULL,
			unit TEXT NOT NULL,
			raw_csv TEXT NOT NULL,
			set_count INTEGER NOT NULL,
			imported_at TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_datasets_imported_at ON datasets(imported_at)`,

		// Free-form user preferences (display unit, active dataset, ...)
		`CREATE TABLE IF NOT EXISTS preferences (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
