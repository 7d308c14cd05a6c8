// Package storage is the SQLite database behind the arcade. It holds a
// small key/value table that backs the leaderboard document and a history
// of every finished play used for statistics.
// The pure-Go modernc.org/sqlite driver keeps the binary free of CGO.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// timeLayout is how timestamps are written to TEXT/DATETIME columns.
const timeLayout = "2006-01-02 15:04:05"

// Store wraps the database connection.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens the database at path, creating it and its directory when
// missing, and brings the schema up to date. A leading ~ is the home
// directory; ":memory:" is a private in-memory database.
func Open(path string) (*Store, error) {
	path, err := resolvePath(path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	// A single connection serializes writers from concurrent SSH sessions
	// and keeps an in-memory database alive.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, now: time.Now}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: connect %s: %w", path, err)
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migrate: %w", err)
	}
	return s, nil
}

func resolvePath(path string) (string, error) {
	if path == ":memory:" {
		return path, nil
	}
	if rest, ok := strings.CutPrefix(path, "~"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("storage: expand ~: %w", err)
		}
		path = filepath.Join(home, rest)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("storage: create directory for %s: %w", path, err)
	}
	return path, nil
}

// migrations are applied in order. The count already applied is kept in
// PRAGMA user_version, so entries must never be edited or reordered.
var migrations = []string{
	`CREATE TABLE kv (
		key        TEXT PRIMARY KEY,
		value      BLOB NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE plays (
		id         TEXT PRIMARY KEY,
		game_id    TEXT NOT NULL,
		name       TEXT NOT NULL DEFAULT '',
		score      INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX idx_plays_game_id ON plays(game_id);
	CREATE INDEX idx_plays_created ON plays(game_id, created_at DESC)`,
}

func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return err
	}
	for i := version; i < len(migrations); i++ {
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		// PRAGMA does not take bind parameters.
		if _, err := tx.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, i+1)); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}

// SchemaVersion reports how many migrations have been applied.
func (s *Store) SchemaVersion() (int, error) {
	var v int
	err := s.db.QueryRow(`PRAGMA user_version`).Scan(&v)
	return v, err
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// parseTime accepts what the driver hands back for a DATETIME column:
// either a time.Time or the text it was written as.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	case []byte:
		if parsed, err := time.Parse(timeLayout, string(t)); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
