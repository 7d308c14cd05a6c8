package scores

import (
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Store is the leaderboard. Every method is safe for concurrent use: the
// whole board is read, changed and written back under one mutex.
//
// Store never returns storage errors. A board that cannot be parsed reads
// as empty, and a submit that cannot be persisted is dropped. Both are
// logged as warnings.
type Store struct {
	mu      sync.Mutex
	backend Backend
	key     string
	limit   int
	now     func() time.Time
	logger  *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the backend key.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithLimit overrides how many entries are kept per game.
func WithLimit(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithClock sets the time source for entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger for swallowed errors.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New creates a Store over backend.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		key:     StorageKey,
		limit:   MaxEntries,
		now:     time.Now,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// load reads the board. ok is false when the backend itself failed, in
// which case the returned board is empty and must not be written back.
func (s *Store) load() (board Board, ok bool) {
	data, err := s.backend.Load(s.key)
	if errors.Is(err, ErrNotFound) {
		return Board{}, true
	}
	if err != nil {
		s.logger.Warn("high score storage unavailable", "key", s.key, "err", err)
		return Board{}, false
	}

	board, err = decodeBoard(data, s.limit)
	if err != nil {
		s.logger.Warn("discarding unreadable high score data", "key", s.key, "err", err)
		return Board{}, true
	}
	return board, true
}

func (s *Store) save(board Board) bool {
	data, err := encodeBoard(board)
	if err == nil {
		err = s.backend.Save(s.key, data)
	}
	if err != nil {
		s.logger.Warn("high score not saved", "key", s.key, "err", err)
		return false
	}
	return true
}

// Submit records score for gameID under the normalized name and returns
// its 1-based rank. Zero means the entry did not make the cut or could not
// be persisted. Negative scores are stored as zero.
func (s *Store) Submit(gameID, name string, score int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, ok := s.load()
	if !ok {
		return 0
	}

	list := board[gameID]
	e := Entry{Name: NormalizeName(name), Score: max(score, 0), Timestamp: s.now().UTC()}

	// First position holding a strictly lower score; equal scores keep
	// their earlier rank.
	pos := sort.Search(len(list), func(i int) bool { return list[i].Score < e.Score })
	if pos >= s.limit {
		return 0
	}

	next := make([]Entry, 0, len(list)+1)
	next = append(next, list[:pos]...)
	next = append(next, e)
	next = append(next, list[pos:]...)
	if len(next) > s.limit {
		next = next[:s.limit]
	}
	board[gameID] = next

	if !s.save(board) {
		return 0
	}
	s.logger.Debug("high score recorded", "game", gameID, "name", e.Name, "score", e.Score, "rank", pos+1)
	return pos + 1
}

// Scores returns a copy of the ranked entries for gameID. It never
// returns nil.
func (s *Store) Scores(gameID string) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, _ := s.load()
	return append([]Entry{}, board[gameID]...)
}

// Best returns the top entry for gameID.
func (s *Store) Best(gameID string) (Entry, bool) {
	list := s.Scores(gameID)
	if len(list) == 0 {
		return Entry{}, false
	}
	return list[0], true
}

// Qualifies reports whether score would enter the board for gameID: the
// list has room, or score beats the lowest kept entry.
func (s *Store) Qualifies(gameID string, score int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, _ := s.load()
	list := board[gameID]
	if len(list) < s.limit {
		return true
	}
	return score > list[len(list)-1].Score
}

// Clear removes every entry for gameID.
func (s *Store) Clear(gameID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, ok := s.load()
	if !ok {
		return
	}
	if _, exists := board[gameID]; !exists {
		return
	}
	delete(board, gameID)
	s.save(board)
}

// Games returns the ids that have at least one entry, sorted.
func (s *Store) Games() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, _ := s.load()
	ids := make([]string, 0, len(board))
	for id, list := range board {
		if len(list) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
