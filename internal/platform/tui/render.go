package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// cellStyles holds one lipgloss style per core.Color, indexed by value.
var cellStyles = func() []lipgloss.Style {
	out := make([]lipgloss.Style, core.Colors())
	for i := range out {
		st := lipgloss.NewStyle()
		if code := core.Color(i).ANSI(); code != "" {
			st = st.Foreground(lipgloss.Color(code))
		}
		out[i] = st
	}
	return out
}()

func cellStyle(c core.Color) lipgloss.Style {
	if int(c) >= len(cellStyles) {
		return cellStyles[core.ColorDefault]
	}
	return cellStyles[c]
}

// RenderScreen draws s with its cell colors.
func RenderScreen(s *core.Screen) string {
	return renderScreen(s, false)
}

// renderScreen draws s one row at a time. In mono mode the runes are
// written without styling.
func renderScreen(s *core.Screen, mono bool) string {
	if mono {
		return s.String()
	}

	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())
	run := make([]rune, 0, s.Width())
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		run = writeRow(&sb, s, y, run)
	}
	return sb.String()
}

// writeRow appends row y to sb, styling each stretch of same-colored cells
// once. buf is scratch space and is returned for reuse.
func writeRow(sb *strings.Builder, s *core.Screen, y int, buf []rune) []rune {
	buf = buf[:0]
	var cur core.Color
	for x := range s.Width() {
		cell := s.GetCell(x, y)
		if x > 0 && cell.Color != cur {
			sb.WriteString(cellStyle(cur).Render(string(buf)))
			buf = buf[:0]
		}
		cur = cell.Color
		buf = append(buf, cell.Rune)
	}
	if len(buf) > 0 {
		sb.WriteString(cellStyle(cur).Render(string(buf)))
	}
	return buf
}
