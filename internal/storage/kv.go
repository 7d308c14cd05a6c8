package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/vovakirdan/retro-arcade/internal/scores"
)

// Load returns the value stored under key, or scores.ErrNotFound.
func (s *Store) Load(key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, scores.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load %q: %w", key, err)
	}
	return value, nil
}

// Save replaces the value stored under key in a single statement.
func (s *Store) Save(key string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, data, s.now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save %q: %w", key, err)
	}
	return nil
}

var _ scores.Backend = (*Store)(nil)
