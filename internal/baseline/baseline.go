// Package baseline persists a run's violations so later runs can suppress
// the ones already known, leaving only new findings.
package baseline

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"ferrolint/internal/checker"
)

// Store is a SQLite-backed set of accepted violations.
type Store struct {
	db *sql.DB
}

// Open creates or opens a baseline database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open baseline %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open baseline %s: %w", path, err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS violations (
			code    TEXT NOT NULL,
			file    TEXT NOT NULL,
			line    INTEGER NOT NULL,
			message TEXT NOT NULL,
			PRIMARY KEY (code, file, line)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init baseline schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the stored baseline with the given violations.
func (s *Store) Save(violations []checker.Violation) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM violations`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO violations (code, file, line, message) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, v := range violations {
		if _, err := stmt.Exec(v.Code, v.File, v.Line, v.Message); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Filter drops violations already present in the baseline, preserving the
// input's order.
func (s *Store) Filter(violations []checker.Violation) ([]checker.Violation, error) {
	stmt, err := s.db.Prepare(`SELECT 1 FROM violations WHERE code = ? AND file = ? AND line = ?`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var fresh []checker.Violation
	for _, v := range violations {
		var one int
		err := stmt.QueryRow(v.Code, v.File, v.Line).Scan(&one)
		switch err {
		case sql.ErrNoRows:
			fresh = append(fresh, v)
		case nil:
			// Known violation, suppressed.
		default:
			return nil, err
		}
	}
	return fresh, nil
}
