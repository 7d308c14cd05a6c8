package tui

import (
	"path/filepath"
	"testing"
)

func TestConnShellTracksLatestShell(t *testing.T) {
	m, _, _ := newTestShell(t)
	conn := &connShell{shell: m}

	if next, _ := conn.Update(keyMsg("enter")); next != conn {
		t.Fatalf("Update returned %T, want the connection model", next)
	}
	conn.Update(insertMsg{Gen: conn.shell.gen})
	if conn.shell.State() != "playing" {
		t.Fatalf("state = %s, want playing", conn.shell.State())
	}
	if conn.shell.bus.Len() != 1 {
		t.Fatalf("bus listeners = %d, want 1", conn.shell.bus.Len())
	}

	conn.shell.Close()
	if conn.shell.bus.Len() != 0 {
		t.Errorf("bus listeners = %d after Close, want 0", conn.shell.bus.Len())
	}
}

func TestHostKeyPathCreatesDirectory(t *testing.T) {
	want := filepath.Join(t.TempDir(), "keys", "host_key")
	got, err := hostKeyPath(want)
	if err != nil || got != want {
		t.Fatalf("hostKeyPath = %q, %v", got, err)
	}
	t.Setenv("HOME", t.TempDir())
	if got, err := hostKeyPath(""); err != nil || got == "" {
		t.Errorf("default host key path = %q, %v", got, err)
	}
}
