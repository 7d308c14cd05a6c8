package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("size = %dx%d, want 80x24", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("new screen not blank at (%d, %d)", x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColor(5, 5, 'X', ColorRed)
	if c := s.GetCell(5, 5); c.Rune != 'X' || c.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v", c)
	}

	// Out of bounds is ignored.
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 4)
	s.FillRect(NewRect(0, 0, 4, 4), '#', ColorGreen)
	s.Clear()
	if strings.ContainsRune(s.String(), '#') {
		t.Error("Clear left content behind")
	}
	if s.GetCell(1, 1).Color != ColorDefault {
		t.Error("Clear should reset color")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawText(7, 0, "hello")
	if got := s.Row(0); got != "       hel" {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "abc", ColorCyan)
	if got := s.Row(0); got != "    abc    " {
		t.Errorf("Row(0) = %q", got)
	}
	if s.GetCell(4, 0).Color != ColorCyan {
		t.Error("centered text lost its color")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(NewRect(0, 0, 4, 3), ColorDefault)

	want := "┌──┐\n│  │\n└──┘"
	if got := s.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestScreenDrawMessage(t *testing.T) {
	s := NewScreen(20, 7)
	s.FillRect(NewRect(0, 0, 20, 7), '.', ColorDefault)
	s.DrawMessage([]string{"GAME OVER", "Score: 5"}, ColorRed)

	out := s.String()
	if !strings.Contains(out, "GAME OVER") || !strings.Contains(out, "Score: 5") {
		t.Errorf("message missing:\n%s", out)
	}
	// The box interior is cleared.
	if s.Get(s.Width()/2, 3) == '.' {
		t.Error("message box should blank its interior")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(5, 5)
	s.Set(1, 1, 'X')
	s.Resize(8, 3)

	if s.Width() != 8 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, want 8x3", s.Width(), s.Height())
	}
	if s.Get(1, 1) != ' ' {
		t.Error("resize should start from a blank grid")
	}

	s.Resize(-1, -1)
	if s.Width() != 0 || s.String() != "" {
		t.Error("negative size should produce an empty screen")
	}
}

func TestColorANSI(t *testing.T) {
	if got := ColorDefault.ANSI(); got != "" {
		t.Errorf("default color code = %q, want empty", got)
	}
	if got := ColorOrange.ANSI(); got != "208" {
		t.Errorf("orange code = %q, want 208", got)
	}
	if got := Color(200).ANSI(); got != "" {
		t.Errorf("out of range color code = %q, want empty", got)
	}
	for c := ColorRed; int(c) < Colors(); c++ {
		if c.ANSI() == "" {
			t.Errorf("color %d has no terminal code", c)
		}
	}
}
