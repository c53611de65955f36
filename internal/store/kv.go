package store

import (
	"database/sql"
	"fmt"
	"time"
)

// KV is the persistence boundary for the habit document: a flat string
// key-value store with synchronous reads and writes.
type KV interface {
	// Load returns the value stored under key and whether it exists.
	Load(key string) (string, bool, error)
	// Save stores value under key, replacing any previous value.
	Save(key, value string) error
}

// SQLiteKV stores values in the kv table created by the database migrations.
type SQLiteKV struct {
	db *sql.DB
}

func NewSQLiteKV(db *sql.DB) *SQLiteKV {
	return &SQLiteKV{db: db}
}

func (s *SQLiteKV) Load(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteKV) Save(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}
