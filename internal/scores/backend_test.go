package scores

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileBackendRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	b, err := NewFileBackend(dir)
	if err != nil {
		t.Fatalf("NewFileBackend: %v", err)
	}

	if _, err := b.Load("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load missing = %v, want ErrNotFound", err)
	}

	if err := b.Save("k", []byte("one")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := b.Save("k", []byte("two")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := b.Load("k")
	if err != nil || string(got) != "two" {
		t.Errorf("Load = %q, %v", got, err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("directory has %d files, want only the target (temp files left behind?)", len(entries))
	}
}

func TestFileBackendSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	b1, err := NewFileBackend(dir)
	if err != nil {
		t.Fatal(err)
	}
	New(b1).Submit("minesweeper", "joe", 425)

	b2, err := NewFileBackend(dir)
	if err != nil {
		t.Fatal(err)
	}
	list := New(b2).Scores("minesweeper")
	if len(list) != 1 || list[0].Name != "JOE" || list[0].Score != 425 {
		t.Errorf("after reopen = %+v", list)
	}
}

func TestFileBackendCorruptFile(t *testing.T) {
	dir := t.TempDir()
	b, _ := NewFileBackend(dir)
	if err := os.WriteFile(b.Path(StorageKey), []byte("\x00garbage"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New(b)
	if len(s.Scores("snake")) != 0 {
		t.Error("corrupt file should read as empty")
	}
	if rank := s.Submit("snake", "abc", 1); rank != 1 {
		t.Errorf("rank = %d, want 1", rank)
	}
}

func TestMemoryBackendCopies(t *testing.T) {
	b := NewMemoryBackend()
	data := []byte("abc")
	b.Save("k", data)
	data[0] = 'x'

	got, _ := b.Load("k")
	if string(got) != "abc" {
		t.Errorf("Load = %q, backend kept caller's slice", got)
	}
}
