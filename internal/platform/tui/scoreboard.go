package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/retro-arcade/internal/registry"
	"github.com/vovakirdan/retro-arcade/internal/scores"
)

const (
	// below this width the game list collapses into a "< title >" switcher
	listMinWidth = 80
	listWidth    = 20
)

type boardKeys struct {
	scroll key.Binding
	next   key.Binding
	prev   key.Binding
	back   key.Binding
	quit   key.Binding
}

func newBoardKeys() boardKeys {
	return boardKeys{
		scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll")),
		next:   key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/tab", "next game")),
		prev:   key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev game")),
		back:   key.NewBinding(key.WithKeys("esc", "b", "enter"), key.WithHelp("esc", "menu")),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.scroll, k.next, k.prev, k.back, k.quit}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// ScoreboardModel pages through the leaderboards one game at a time. A
// rank that was just submitted is selected and called out below the table.
type ScoreboardModel struct {
	scores  *scores.Store
	history History // nil without a play history
	theme   Theme
	keys    boardKeys
	help    help.Model

	games []registry.GameInfo
	page  int

	entries []scores.Entry
	summary string
	table   table.Model

	placedGame string
	placedRank int

	width, height int

	done     bool
	quitting bool
}

// NewScoreboardModel opens the board of gameID, or the first game when
// gameID is unknown or empty. rank > 0 marks the player's new entry.
func NewScoreboardModel(store *scores.Store, history History, theme Theme, width, height int, gameID string, rank int) ScoreboardModel {
	m := ScoreboardModel{
		scores:     store,
		history:    history,
		theme:      theme,
		keys:       newBoardKeys(),
		help:       help.New(),
		games:      registry.List(),
		placedGame: gameID,
		placedRank: rank,
	}
	for i, g := range m.games {
		if g.ID == gameID {
			m.page = i
			break
		}
	}
	m.resize(width, height)
	return m
}

func (m ScoreboardModel) wide() bool { return m.width >= listMinWidth }

func (m ScoreboardModel) game() (registry.GameInfo, bool) {
	if len(m.games) == 0 {
		return registry.GameInfo{}, false
	}
	return m.games[m.page], true
}

// resize rebuilds the table for the new size and reloads the page.
func (m *ScoreboardModel) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width

	avail := width - 4
	if m.wide() {
		avail -= listWidth + 3
	}
	when := 14 + min(max(avail-42, 0), 10)

	m.table = table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Name", Width: 5},
			{Title: "Score", Width: 10},
			{Title: "When", Width: when},
		}),
		table.WithFocused(true),
		table.WithHeight(max(3, min(scores.MaxEntries+1, height-9))),
	)
	st := table.DefaultStyles()
	st.Header = m.theme.BoardHeader
	st.Selected = m.theme.BoardSelected
	m.table.SetStyles(st)

	m.reload()
}

// reload reads the entries and statistics of the current page.
func (m *ScoreboardModel) reload() {
	m.entries, m.summary = nil, ""
	g, ok := m.game()
	if !ok {
		m.table.SetRows(nil)
		return
	}

	if m.scores != nil {
		m.entries = m.scores.Scores(g.ID)
	}
	if m.history != nil {
		if st, err := m.history.Stats(g.ID); err == nil && st.Plays > 0 {
			m.summary = fmt.Sprintf("%s plays · best %s · avg %s · last %s",
				humanize.Comma(int64(st.Plays)),
				humanize.Comma(int64(st.BestScore)),
				humanize.Comma(int64(st.AvgScore)),
				humanize.Time(st.LastPlayed))
		}
	}

	rows := make([]table.Row, 0, len(m.entries))
	for i, e := range m.entries {
		rows = append(rows, table.Row{
			fmt.Sprintf("#%d", i+1),
			e.Name,
			humanize.Comma(int64(e.Score)),
			humanize.Time(e.Timestamp),
		})
	}
	m.table.SetRows(rows)

	if r := m.placed(); r > 0 && r <= len(rows) {
		m.table.SetCursor(r - 1)
	} else {
		m.table.GotoTop()
	}
}

// placed returns the highlighted rank when the current page shows it.
func (m ScoreboardModel) placed() int {
	if g, ok := m.game(); ok && g.ID == m.placedGame {
		return m.placedRank
	}
	return 0
}

func (m *ScoreboardModel) turn(delta int) {
	if n := len(m.games); n > 0 {
		m.page = (m.page + delta + n) % n
		m.reload()
	}
}

func (m ScoreboardModel) Init() tea.Cmd { return nil }

// Update handles paging and scrolling. Leaving is reported through Done and
// IsQuitting so the shell can decide where to go.
func (m ScoreboardModel) Update(msg tea.Msg) (ScoreboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			m.quitting = true
			return m, nil
		case key.Matches(msg, m.keys.back):
			m.done = true
			return m, nil
		case key.Matches(msg, m.keys.next):
			m.turn(1)
			return m, nil
		case key.Matches(msg, m.keys.prev):
			m.turn(-1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	title := "HIGH SCORES"
	if g, ok := m.game(); ok {
		title += " - " + g.Title
	}

	lines := []string{
		m.theme.BoardTitle.Render(centerText(title, m.width)),
		"",
	}
	if m.wide() {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, m.gameList(), "  ", m.panel()))
	} else {
		lines = append(lines, m.switcher(), "", m.panel())
	}
	lines = append(lines, "")

	if r := m.placed(); r > 0 {
		lines = append(lines, m.theme.BoardHighlight.Render(centerText(fmt.Sprintf("You placed #%d!", r), m.width)))
	}
	if m.summary != "" {
		lines = append(lines, m.theme.BoardStats.Render(centerText(m.summary, m.width)))
	}
	lines = append(lines, m.theme.Help.Render(m.help.View(m.keys)))
	return strings.Join(lines, "\n")
}

// gameList is the sidebar of the wide layout.
func (m ScoreboardModel) gameList() string {
	var b strings.Builder
	b.WriteString("Games\n")
	b.WriteString(strings.Repeat("─", listWidth-4))
	for i, g := range m.games {
		name := g.Title
		if limit := listWidth - 6; len(name) > limit {
			name = name[:limit-1] + "."
		}
		b.WriteByte('\n')
		if i == m.page {
			b.WriteString(m.theme.MenuItemActive.Render("> " + name))
		} else {
			b.WriteString(m.theme.MenuItemNormal.Render("  " + name))
		}
	}
	return m.theme.BoardPanel.Width(listWidth).Render(b.String())
}

// switcher replaces the sidebar on narrow terminals.
func (m ScoreboardModel) switcher() string {
	g, ok := m.game()
	if !ok {
		return ""
	}
	return centerText(fmt.Sprintf("< %s >  %d/%d", g.Title, m.page+1, len(m.games)), m.width)
}

func (m ScoreboardModel) panel() string {
	body := m.table.View()
	if len(m.entries) == 0 {
		body = m.theme.BoardEmpty.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return m.theme.BoardPanel.Render(body)
}

// Done reports whether the player left the scoreboard.
func (m ScoreboardModel) Done() bool { return m.done }

// IsQuitting reports whether the player asked to quit the arcade.
func (m ScoreboardModel) IsQuitting() bool { return m.quitting }

func centerText(text string, width int) string {
	if w := lipgloss.Width(text); w < width {
		return strings.Repeat(" ", (width-w)/2) + text
	}
	return text
}
