package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

func TestMapKey(t *testing.T) {
	km := NewKeyMapper(1)
	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("w")}, core.ActionUp, false},
		{tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")}, core.ActionRight, false},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionJump, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")}, core.ActionFlag, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")}, core.ActionPause, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}, core.ActionRestart, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")}, core.ActionNone, false},
	}

	for _, tt := range tests {
		action, quit := km.MapKey(tt.msg)
		if action != tt.action || quit != tt.quit {
			t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
		}
	}
}

func TestMapMouse(t *testing.T) {
	km := NewKeyMapper(1)

	p, ok := km.MapMouse(tea.MouseMsg{X: 5, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !ok || p != (core.Pointer{X: 5, Y: 2, Button: core.PointerPrimary}) {
		t.Errorf("left press = %+v, %v", p, ok)
	}

	p, ok = km.MapMouse(tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	if !ok || p.Button != core.PointerSecondary || p.Y != 0 {
		t.Errorf("right press = %+v, %v", p, ok)
	}

	if _, ok := km.MapMouse(tea.MouseMsg{X: 1, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}); ok {
		t.Error("press on the header row mapped to the game screen")
	}
	if _, ok := km.MapMouse(tea.MouseMsg{X: 1, Y: 4, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}); ok {
		t.Error("release mapped to a click")
	}
	if _, ok := km.MapMouse(tea.MouseMsg{X: 1, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp}); ok {
		t.Error("wheel mapped to a click")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper(0)
	tests := map[string]MenuAction{
		"k": MenuActionUp,
		"j": MenuActionDown,
		"t": MenuActionScoreboard,
		"b": MenuActionBack,
		"q": MenuActionQuit,
		"x": MenuActionNone,
	}
	for in, want := range tests {
		got := km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(in)})
		if got != want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", in, got, want)
		}
	}
	if got := km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyEnter}); got != MenuActionSelect {
		t.Errorf("enter = %v, want select", got)
	}
	if got := km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyTab}); got != MenuActionScoreboard {
		t.Errorf("tab = %v, want scoreboard", got)
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 3)
	s.DrawTextColor(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd")
	s.DrawTextColor(1, 2, "xyz", core.ColorCyan)

	out := RenderScreen(s)
	if got := strings.Count(out, "\n"); got != 2 {
		t.Fatalf("rendered %d newlines, want 2", got)
	}
	for _, want := range []string{"ab", "cd", "xyz"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestRenderScreenMono(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawTextColor(0, 0, "hi", core.ColorRed)
	s.DrawTextColor(0, 1, "yo", core.ColorBlue)
	if got, want := renderScreen(s, true), "hi  \nyo  "; got != want {
		t.Errorf("mono render = %q, want %q", got, want)
	}
}
