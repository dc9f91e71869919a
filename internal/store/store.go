package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Dataset is an imported workout export kept verbatim alongside its
// parse summary.
type Dataset struct {
	ID         int64
	Name       string
	Platform   string
	Unit       string
	RawCSV     string
	SetCount   int
	ImportedAt time.Time
}

// Store is the application's data access layer.
type Store struct {
	db *sql.DB
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveDataset inserts a dataset, or replaces the existing one with the
// same name. It returns the row ID.
func (s *Store) SaveDataset(d *Dataset) (int64, error) {
	result, err := s.db.Exec(`
		INSERT INTO datasets (name, platform, unit, raw_csv, set_count, imported_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			platform = excluded.platform,
			unit = excluded.unit,
			raw_csv = excluded.raw_csv,
			set_count = excluded.set_count,
			imported_at = excluded.imported_at`,
		d.Name, d.Platform, d.Unit, d.RawCSV, d.SetCount, d.ImportedAt.Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("saving dataset %q: %w", d.Name, err)
	}
	return result.LastInsertId()
}

// GetDataset retrieves a dataset by name.
func (s *Store) GetDataset(name string) (*Dataset, error) {
	row := s.db.QueryRow(`
		SELECT id, name, platform, unit, raw_csv, set_count, imported_at
		FROM datasets WHERE name = ?`, name)

	d, err := scanDataset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDatasetNotFound
	}
	return d, err
}

// ListDatasets returns dataset metadata ordered by import time, newest
// first. RawCSV is left empty; exports can run to many megabytes.
func (s *Store) ListDatasets() ([]Dataset, error) {
	rows, err := s.db.Query(`
		SELECT id, name, platform, unit, set_count, imported_at
		FROM datasets ORDER BY imported_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var datasets []Dataset
	for rows.Next() {
		var d Dataset
		var importedAt string
		if err := rows.Scan(&d.ID, &d.Name, &d.Platform, &d.Unit, &d.SetCount, &importedAt); err != nil {
			return nil, err
		}
		d.ImportedAt, err = time.Parse(time.RFC3339, importedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing imported_at %q: %w", importedAt, err)
		}
		datasets = append(datasets, d)
	}
	return datasets, rows.Err()
}

// DeleteDataset removes a dataset by name.
func (s *Store) DeleteDataset(name string) error {
	result, err := s.db.Exec(`DELETE FROM datasets WHERE name = ?`, name)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrDatasetNotFound
	}
	return nil
}

// GetPreference retrieves a preference value by key.
// Returns empty string if the key doesn't exist.
func (s *Store) GetPreference(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

// SetPreference sets a preference value.
func (s *Store) SetPreference(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO preferences (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

func scanDataset(row *sql.Row) (*Dataset, error) {
	var d Dataset
	var importedAt string
	if err := row.Scan(&d.ID, &d.Name, &d.Platform, &d.Unit, &d.RawCSV, &d.SetCount, &importedAt); err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339, importedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing imported_at %q: %w", importedAt, err)
	}
	d.ImportedAt = t
	return &d, nil
}
