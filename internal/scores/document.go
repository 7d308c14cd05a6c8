package scores

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// SchemaVersion is written into every document this package saves.
const SchemaVersion = 1

// Board maps a game id to its entries in rank order.
type Board map[string][]Entry

type document struct {
	Version int   `json:"version"`
	Games   Board `json:"games"`
}

// legacyEntry is the unversioned layout: a bare object of game id to
// entries that carry their time in a "date" field.
type legacyEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Date  string `json:"date"`
}

// encodeBoard serializes b as the current schema version.
func encodeBoard(b Board) ([]byte, error) {
	if b == nil {
		b = Board{}
	}
	data, err := json.Marshal(document{Version: SchemaVersion, Games: b})
	if err != nil {
		return nil, fmt.Errorf("scores: encode board: %w", err)
	}
	return data, nil
}

// decodeBoard parses either schema. The result is sanitized: names are
// normalized, scores are non-negative, and each list is sorted and capped.
func decodeBoard(data []byte, limit int) (Board, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("scores: decode board: %w", err)
	}

	var board Board
	if raw, ok := fields["version"]; ok {
		var version int
		if err := json.Unmarshal(raw, &version); err != nil {
			return nil, fmt.Errorf("scores: decode version: %w", err)
		}
		if version != SchemaVersion {
			return nil, fmt.Errorf("scores: unsupported schema version %d", version)
		}
		var doc document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("scores: decode board: %w", err)
		}
		board = doc.Games
	} else {
		var legacy map[string][]legacyEntry
		if err := json.Unmarshal(data, &legacy); err != nil {
			return nil, fmt.Errorf("scores: decode legacy board: %w", err)
		}
		board = make(Board, len(legacy))
		for id, list := range legacy {
			entries := make([]Entry, 0, len(list))
			for _, le := range list {
				ts, _ := time.Parse(time.RFC3339Nano, le.Date)
				entries = append(entries, Entry{Name: le.Name, Score: le.Score, Timestamp: ts})
			}
			board[id] = entries
		}
	}

	if board == nil {
		board = Board{}
	}
	for id, list := range board {
		board[id] = sanitize(list, limit)
	}
	return board, nil
}

func sanitize(list []Entry, limit int) []Entry {
	out := make([]Entry, 0, len(list))
	for _, e := range list {
		if !validName(e.Name) {
			e.Name = NormalizeName(e.Name)
		}
		e.Score = max(e.Score, 0)
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
