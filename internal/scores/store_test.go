package scores

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func fixedClock() func() time.Time {
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return t0.Add(time.Duration(n) * time.Second)
	}
}

func newTestStore(b Backend) *Store {
	return New(b, WithClock(fixedClock()))
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ab", "AB_"},
		{"hello", "HEL"},
		{"", "___"},
		{"zz", "ZZ_"},
		{"abc", "ABC"},
		{"é", "É__"},
		{"a b c", "A B"},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%q", tc.in), func(t *testing.T) {
			got := NormalizeName(tc.in)
			if got != tc.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tc.in, got, tc.want)
			}
			if again := NormalizeName(got); again != got {
				t.Errorf("not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestSubmitFirstEntry(t *testing.T) {
	s := newTestStore(NewMemoryBackend())

	rank := s.Submit("snake", "zz", 100)
	if rank != 1 {
		t.Fatalf("rank = %d, want 1", rank)
	}

	list := s.Scores("snake")
	if len(list) != 1 {
		t.Fatalf("len = %d, want 1", len(list))
	}
	if list[0].Name != "ZZ_" || list[0].Score != 100 {
		t.Errorf("entry = %+v", list[0])
	}
	if list[0].Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestSubmitKeepsTopTen(t *testing.T) {
	s := newTestStore(NewMemoryBackend())

	for score := 10; score <= 110; score += 10 {
		s.Submit("snake", "abc", score)
	}

	list := s.Scores("snake")
	if len(list) != MaxEntries {
		t.Fatalf("len = %d, want %d", len(list), MaxEntries)
	}
	if list[0].Score != 110 || list[len(list)-1].Score != 20 {
		t.Errorf("kept %d..%d, want 110..20", list[0].Score, list[len(list)-1].Score)
	}
	for _, e := range list {
		if e.Score == 10 {
			t.Error("lowest score should have been discarded")
		}
	}
}

func TestSubmitSortedAndCapped(t *testing.T) {
	s := newTestStore(NewMemoryBackend())

	for i, score := range []int{50, 10, 90, 30, 30, 70, 0, 100, 20, 80, 60, 40, 30, 95} {
		s.Submit("pong", fmt.Sprintf("p%d", i), score)

		list := s.Scores("pong")
		if len(list) > MaxEntries {
			t.Fatalf("after %d submits len = %d", i+1, len(list))
		}
		for j := 1; j < len(list); j++ {
			if list[j-1].Score < list[j].Score {
				t.Fatalf("not sorted after %d submits: %v", i+1, list)
			}
		}
	}
}

func TestSubmitRank(t *testing.T) {
	s := newTestStore(NewMemoryBackend())

	s.Submit("tetris", "aaa", 300)
	s.Submit("tetris", "bbb", 100)

	tests := []struct {
		name  string
		score int
		want  int
	}{
		{"new best", 500, 1},
		{"tie ranks after existing", 300, 3},
		{"middle", 200, 4},
		{"last", 50, 6},
	}
	for _, tc := range tests {
		if got := s.Submit("tetris", tc.name, tc.score); got != tc.want {
			t.Errorf("%s: rank = %d, want %d", tc.name, got, tc.want)
		}
	}

	list := s.Scores("tetris")
	if list[2].Name != "TIE" || list[1].Name != "AAA" {
		t.Errorf("tie order = %q, %q; want AAA then TIE", list[1].Name, list[2].Name)
	}
}

func TestSubmitMissesCut(t *testing.T) {
	s := newTestStore(NewMemoryBackend())
	for i := 0; i < MaxEntries; i++ {
		s.Submit("flappy", "abc", 100)
	}

	if rank := s.Submit("flappy", "low", 100); rank != 0 {
		t.Errorf("equal-to-min rank = %d, want 0", rank)
	}
	if rank := s.Submit("flappy", "low", 5); rank != 0 {
		t.Errorf("below-min rank = %d, want 0", rank)
	}
	if rank := s.Submit("flappy", "top", 101); rank != 1 {
		t.Errorf("rank = %d, want 1", rank)
	}
}

func TestSubmitNegativeScore(t *testing.T) {
	s := newTestStore(NewMemoryBackend())
	s.Submit("runner", "neg", -40)
	if got := s.Scores("runner")[0].Score; got != 0 {
		t.Errorf("score = %d, want 0", got)
	}
}

func TestQualifies(t *testing.T) {
	s := newTestStore(NewMemoryBackend())

	if !s.Qualifies("snake", 0) {
		t.Error("empty board should accept any score")
	}
	for i := 1; i <= MaxEntries; i++ {
		if !s.Qualifies("snake", i*10) {
			t.Errorf("board with %d entries should accept", i-1)
		}
		s.Submit("snake", "abc", i*10)
	}

	// Full board, minimum is 10.
	tests := []struct {
		score int
		want  bool
	}{
		{11, true},
		{10, false},
		{5, false},
		{1000, true},
	}
	for _, tc := range tests {
		if got := s.Qualifies("snake", tc.score); got != tc.want {
			t.Errorf("Qualifies(%d) = %v, want %v", tc.score, got, tc.want)
		}
	}
}

func TestClear(t *testing.T) {
	s := newTestStore(NewMemoryBackend())
	s.Submit("snake", "a", 1)
	s.Submit("pong", "b", 2)

	s.Clear("snake")
	if len(s.Scores("snake")) != 0 {
		t.Error("Clear left entries behind")
	}
	if len(s.Scores("pong")) != 1 {
		t.Error("Clear removed another game's entries")
	}
	s.Clear("never-played")

	if got := s.Games(); len(got) != 1 || got[0] != "pong" {
		t.Errorf("Games() = %v", got)
	}
}

func TestScoresNeverNil(t *testing.T) {
	s := newTestStore(NewMemoryBackend())
	if s.Scores("unknown") == nil {
		t.Error("Scores should return an empty slice, not nil")
	}
	if _, ok := s.Best("unknown"); ok {
		t.Error("Best on empty board should report false")
	}
}

func TestScoresReturnsCopy(t *testing.T) {
	s := newTestStore(NewMemoryBackend())
	s.Submit("snake", "abc", 10)

	list := s.Scores("snake")
	list[0].Score = 9999
	if s.Scores("snake")[0].Score != 10 {
		t.Error("caller mutated stored entries")
	}
}

func TestCorruptDataReadsEmpty(t *testing.T) {
	b := NewMemoryBackend()
	b.Save(StorageKey, []byte("{not json"))
	s := newTestStore(b)

	if len(s.Scores("snake")) != 0 {
		t.Error("corrupt board should read as empty")
	}
	if !s.Qualifies("snake", 1) {
		t.Error("corrupt board should qualify everything")
	}
	if rank := s.Submit("snake", "new", 5); rank != 1 {
		t.Errorf("submit over corrupt data rank = %d, want 1", rank)
	}
	if len(s.Scores("snake")) != 1 {
		t.Error("submit should have replaced the corrupt board")
	}
}

func TestUnknownVersionReadsEmpty(t *testing.T) {
	b := NewMemoryBackend()
	b.Save(StorageKey, []byte(`{"version": 99, "games": {"snake": [{"name":"AAA","score":1}]}}`))
	s := newTestStore(b)

	if len(s.Scores("snake")) != 0 {
		t.Error("future schema should read as empty")
	}
}

func TestLegacyLayoutMigrates(t *testing.T) {
	b := NewMemoryBackend()
	legacy := `{"snake":[{"name":"bob","score":50,"date":"2024-01-02T03:04:05.000Z"},{"name":"AL","score":70,"date":"2024-01-01T00:00:00.000Z"}]}`
	b.Save(StorageKey, []byte(legacy))
	s := newTestStore(b)

	list := s.Scores("snake")
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[0].Name != "AL_" || list[0].Score != 70 {
		t.Errorf("first = %+v, want sanitized and sorted", list[0])
	}
	if list[1].Timestamp.Year() != 2024 {
		t.Errorf("legacy date not parsed: %v", list[1].Timestamp)
	}

	s.Submit("snake", "new", 10)

	raw, _ := b.Load(StorageKey)
	var doc struct {
		Version int                        `json:"version"`
		Games   map[string]json.RawMessage `json:"games"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("saved document: %v", err)
	}
	if doc.Version != SchemaVersion {
		t.Errorf("version = %d, want %d", doc.Version, SchemaVersion)
	}
}

func TestPersistedLayout(t *testing.T) {
	b := NewMemoryBackend()
	s := New(b, WithClock(func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) }))
	s.Submit("snake", "zz", 100)

	raw, err := b.Load(StorageKey)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := `{"version":1,"games":{"snake":[{"name":"ZZ_","score":100,"timestamp":"2024-05-06T07:08:09Z"}]}}`
	if string(raw) != want {
		t.Errorf("document =\n%s\nwant\n%s", raw, want)
	}
}

type failingBackend struct {
	loadErr error
	saveErr error
	saves   int
}

func (f *failingBackend) Load(string) ([]byte, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return nil, ErrNotFound
}

func (f *failingBackend) Save(string, []byte) error {
	f.saves++
	return f.saveErr
}

func TestWriteFailureIsSwallowed(t *testing.T) {
	b := &failingBackend{saveErr: errors.New("quota exceeded")}
	s := newTestStore(b)

	if rank := s.Submit("snake", "abc", 10); rank != 0 {
		t.Errorf("rank = %d, want 0 when save fails", rank)
	}
	if b.saves != 1 {
		t.Errorf("saves = %d, want 1", b.saves)
	}
	if len(s.Scores("snake")) != 0 {
		t.Error("unsaved entry should not be visible")
	}
}

func TestUnavailableStorageIsNoop(t *testing.T) {
	b := &failingBackend{loadErr: errors.New("storage disabled")}
	s := newTestStore(b)

	if rank := s.Submit("snake", "abc", 10); rank != 0 {
		t.Errorf("rank = %d, want 0", rank)
	}
	if b.saves != 0 {
		t.Error("Submit must not overwrite storage it could not read")
	}
	if len(s.Scores("snake")) != 0 || !s.Qualifies("snake", 1) {
		t.Error("unavailable storage should read as empty")
	}
	s.Clear("snake")
	if b.saves != 0 {
		t.Error("Clear must not write when storage is unavailable")
	}
}

func TestConcurrentSubmit(t *testing.T) {
	s := newTestStore(NewMemoryBackend())
	s.now = time.Now
	s.limit = 1000

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Submit("snake", "abc", i)
		}(i)
	}
	wg.Wait()

	if got := len(s.Scores("snake")); got != 50 {
		t.Errorf("len = %d, want 50; concurrent submits were lost", got)
	}
}
