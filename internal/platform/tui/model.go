package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/retro-arcade/internal/session"
)

// View implements tea.Model.
func (m Shell) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case stateInstructions:
		return m.viewInstructions()
	case stateInserting:
		return m.viewInserting()
	case statePlaying:
		return m.viewPlaying()
	case stateNameEntry:
		return m.viewNameEntry()
	case stateScoreboard:
		return m.board.View()
	default:
		return m.viewMenu()
	}
}

// viewPlaying renders the header, the game screen and the key hints.
func (m Shell) viewPlaying() string {
	if m.sess == nil {
		return ""
	}

	score, best := 0, 0
	if m.play != nil {
		score, best = m.play.score, max(m.play.best, m.play.score)
	}
	header := m.theme.HeaderTitle.Render(m.current.Title) + "  " +
		m.theme.HeaderLabel.Render("SCORE ") + m.theme.HeaderValue.Render(humanize.Comma(int64(score))) + "  " +
		m.theme.HeaderLabel.Render("HI ") + m.theme.HeaderValue.Render(humanize.Comma(int64(best)))

	hints := "P: Pause  |  R: Restart  |  Esc: Menu  |  Q: Quit"
	if m.play != nil && m.play.over {
		hints = "R: Play again  |  any other key: Menu"
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(renderScreen(m.sess.Screen(), m.opts.Monochrome))
	b.WriteString("\n")
	b.WriteString(m.theme.Footer.Render(hints))
	return b.String()
}

// viewInserting renders the coin dropping into the slot, then the loading
// and ready phases.
func (m Shell) viewInserting() string {
	total := m.insertTotal()
	progress := float64(m.insertFrames) / float64(total)

	var body strings.Builder
	body.WriteString(m.theme.CardTitle.Render(m.current.Title))
	body.WriteString("\n\n")

	switch {
	case progress < 0.4:
		drop := int(progress / 0.4 * 3)
		for i := range 3 {
			if i == drop {
				body.WriteString(m.theme.Coin.Render("  ( $ )"))
			}
			body.WriteString("\n")
		}
		body.WriteString(m.theme.CoinSlot.Render(" [=====]"))
		body.WriteString("\n\n")
		body.WriteString(m.theme.Blink.Render("INSERT COIN"))
	case progress < 0.8:
		const barWidth = 20
		filled := int((progress - 0.4) / 0.4 * barWidth)
		body.WriteString("LOADING\n\n")
		body.WriteString(m.theme.Coin.Render(strings.Repeat("█", filled)))
		body.WriteString(m.theme.CoinSlot.Render(strings.Repeat("░", barWidth-filled)))
	default:
		body.WriteString(m.theme.Blink.Render("READY PLAYER ONE"))
	}

	card := m.theme.CardBorder.Render(body.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}

// viewNameEntry renders the initials prompt after a qualifying score.
func (m Shell) viewNameEntry() string {
	final := 0
	if m.play != nil {
		final = m.play.final
	}

	var body strings.Builder
	body.WriteString(m.theme.CardTitle.Render("NEW HIGH SCORE!"))
	body.WriteString("\n\n")
	body.WriteString(m.theme.CardText.Render(fmt.Sprintf("%s  %s", m.current.Title, humanize.Comma(int64(final)))))
	body.WriteString("\n\n")
	body.WriteString("Enter your initials\n")
	body.WriteString(m.name.View())
	body.WriteString("\n\n")
	body.WriteString(m.theme.Footer.Render(fmt.Sprintf("Saved as %s  |  Enter: Save  |  Esc: Skip", m.entryName())))

	card := m.theme.CardBorder.Render(body.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}

// saveScreenshot writes the current game screen as plain text under
// dir/<game>_<timestamp>.txt.
func saveScreenshot(sess *session.Session, dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s_%s.txt", sess.Game().ID(), now.Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(sess.Screen().String()), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// Run starts a local Bubble Tea program on a shell and blocks until the
// player quits.
func Run(deps Deps, opts Options) error {
	shell := NewShell(deps, opts)

	p := tea.NewProgram(
		shell,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if s, ok := final.(Shell); ok {
		s.Close()
	}
	return err
}
