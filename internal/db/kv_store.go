// Package db provides the SQLite-backed slot store: a string-keyed durable
// store with one row per tracked collection or scalar.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const schema = `
CREATE TABLE IF NOT EXISTS slots (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

type KVStore struct {
	db *sql.DB
}

// NewKVStore applies the pragmas and schema on an open database handle.
func NewKVStore(db *sql.DB) (*KVStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create slots table: %w", err)
	}
	return &KVStore{db: db}, nil
}

// Open creates the parent directory if needed and opens the store at path.
func Open(path string) (*KVStore, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?cache=shared&_busy_timeout=5000", filepath.ToSlash(path))
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store, err := NewKVStore(sqlDB)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return store, nil
}

// Load returns the raw value for key; ok reports whether the slot exists.
func (s *KVStore) Load(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM slots WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load slot %q: %w", key, err)
	}
	return value, true, nil
}

// SaveAll upserts every given slot in one transaction. Slots not present in
// the map are left untouched.
func (s *KVStore) SaveAll(slots map[string]string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	for key, value := range slots {
		if _, err := tx.Exec(`INSERT INTO slots (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("save slot %q: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Clear erases every slot.
func (s *KVStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM slots`); err != nil {
		return fmt.Errorf("clear slots: %w", err)
	}
	return nil
}

func (s *KVStore) Close() error { return s.db.Close() }
