package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Play is one finished session, whether or not it reached the leaderboard.
type Play struct {
	ID        string
	GameID    string
	Name      string
	Score     int
	CreatedAt time.Time
}

// GameStats aggregates the play history of one game.
type GameStats struct {
	GameID     string
	Plays      int
	BestScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// RecordPlay appends a play and returns its id.
func (s *Store) RecordPlay(gameID, name string, score int) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO plays (id, game_id, name, score, created_at) VALUES (?, ?, ?, ?, ?)",
		id, gameID, name, score, s.now().UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot record play: %w", err)
	}
	return id, nil
}

// SetPlayName attaches a name to a play after the fact, once the player
// has entered initials.
func (s *Store) SetPlayName(id, name string) error {
	if _, err := s.db.Exec("UPDATE plays SET name = ? WHERE id = ?", name, id); err != nil {
		return fmt.Errorf("storage: cannot name play: %w", err)
	}
	return nil
}

// RecentPlays returns the latest plays of gameID, newest first.
func (s *Store) RecentPlays(gameID string, limit int) ([]Play, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, name, score, created_at
		 FROM plays
		 WHERE game_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query plays: %w", err)
	}
	defer rows.Close()

	var plays []Play
	for rows.Next() {
		var p Play
		var createdAt any
		if err := rows.Scan(&p.ID, &p.GameID, &p.Name, &p.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.CreatedAt = parseTime(createdAt)
		plays = append(plays, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return plays, nil
}

// Stats aggregates the history of one game. A game never played returns
// zero stats and no error.
func (s *Store) Stats(gameID string) (GameStats, error) {
	stats := GameStats{GameID: gameID}
	var last any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0), MAX(created_at)
		 FROM plays WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Plays, &stats.BestScore, &stats.AvgScore, &stats.TotalScore, &last)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(last)
	return stats, nil
}

// AllStats aggregates every game that has been played.
func (s *Store) AllStats() (map[string]GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), MAX(score), AVG(score), SUM(score), MAX(created_at)
		 FROM plays
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]GameStats)
	for rows.Next() {
		var gs GameStats
		var last any
		if err := rows.Scan(&gs.GameID, &gs.Plays, &gs.BestScore, &gs.AvgScore, &gs.TotalScore, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		gs.LastPlayed = parseTime(last)
		stats[gs.GameID] = gs
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// ClearPlays deletes the history of gameID.
func (s *Store) ClearPlays(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM plays WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear plays: %w", err)
	}
	return nil
}
