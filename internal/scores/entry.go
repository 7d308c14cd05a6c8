// Package scores is the persistent leaderboard: a ranked, capped list of
// entries per game id, stored as one JSON document behind a Backend.
package scores

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// StorageKey is the backend key the whole board is stored under.
	StorageKey = "arcade_high_scores"

	// MaxEntries is how many entries are kept per game.
	MaxEntries = 10

	// NameLength is the fixed width of a stored name.
	NameLength = 3

	// NameFiller pads names shorter than NameLength.
	NameFiller = '_'
)

// Entry is one leaderboard line.
type Entry struct {
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

// NormalizeName upper-cases name, keeps its first NameLength runes and pads
// the rest with NameFiller. It is total and idempotent.
func NormalizeName(name string) string {
	upper := strings.ToUpper(name)

	var b strings.Builder
	n := 0
	for _, r := range upper {
		if n == NameLength {
			break
		}
		b.WriteRune(r)
		n++
	}
	for ; n < NameLength; n++ {
		b.WriteRune(NameFiller)
	}
	return b.String()
}

// validName reports whether name already has the stored shape.
func validName(name string) bool {
	return utf8.RuneCountInString(name) == NameLength && NormalizeName(name) == name
}
