package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/input"
	"github.com/vovakirdan/retro-arcade/internal/registry"
	"github.com/vovakirdan/retro-arcade/internal/scores"
	"github.com/vovakirdan/retro-arcade/internal/session"
	"github.com/vovakirdan/retro-arcade/internal/storage"
)

// Rows of chrome around the game screen.
const (
	headerRows = 1
	footerRows = 1
)

// History records finished plays. *storage.Store implements it.
type History interface {
	RecordPlay(gameID, name string, score int) (string, error)
	SetPlayName(id, name string) error
	Stats(gameID string) (storage.GameStats, error)
}

// Deps are the shared services a shell uses. Only Scores is required.
type Deps struct {
	Scores  *scores.Store
	History History
	Logger  *log.Logger
}

// Options tunes one shell.
type Options struct {
	Width, Height    int           // initial terminal size; 80x24 when zero
	TickRate         int           // frames per second
	Seed             int64         // fixed seed for every play; zero picks one per play
	CountdownSeconds int           // "GET READY" countdown before each play
	InsertCoinDelay  time.Duration // length of the insert-coin screen
	Game             string        // open this game's card instead of the menu
	Player           string        // suggested initials
	ScreenshotDir    string        // ctrl+s saves the game screen here; empty disables it
	Monochrome       bool
}

// state is the screen the shell is on.
type state int

const (
	stateMenu state = iota
	stateInstructions
	stateInserting
	statePlaying
	stateNameEntry
	stateScoreboard
)

func (s state) String() string {
	return [...]string{"menu", "instructions", "inserting", "playing", "nameEntry", "scoreboard"}[s]
}

// play is what the session callbacks report about the current run. The
// shell is a value, so it lives behind a pointer every copy shares.
type play struct {
	score    int
	best     int
	over     bool
	final    int
	handled  bool
	recordID string
}

// Shell is the Bubble Tea model of the whole arcade.
type Shell struct {
	deps   Deps
	opts   Options
	theme  Theme
	keys   *KeyMapper
	bus    *input.Bus
	logger *log.Logger

	width  int
	height int
	state  state
	gen    int

	games   []registry.GameInfo
	best    map[string]string // menu best-score labels, refreshed by toMenu
	cursor  int
	current registry.GameInfo

	insertFrames int
	sess         *session.Session
	play         *play

	name  textinput.Model
	board ScoreboardModel

	quitting bool
}

// NewShell creates a shell on the menu, or on the card of opts.Game.
func NewShell(deps Deps, opts Options) Shell {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 80, 24
	}
	if opts.TickRate <= 0 {
		opts.TickRate = core.DefaultConfig().TickRate
	}

	theme := DefaultTheme()
	if opts.Monochrome {
		theme = MonochromeTheme()
	}

	ti := textinput.New()
	ti.CharLimit = scores.NameLength
	ti.Width = scores.NameLength + 1
	ti.Prompt = "> "
	ti.Placeholder = "AAA"

	m := Shell{
		deps:   deps,
		opts:   opts,
		theme:  theme,
		keys:   NewKeyMapper(headerRows),
		bus:    input.NewBus(),
		logger: deps.Logger,
		width:  opts.Width,
		height: opts.Height,
		games:  registry.List(),
		name:   ti,
	}

	m = m.toMenu()
	if info, ok := registry.Info(opts.Game); ok {
		m.current = info
		m.state = stateInstructions
		for i, g := range m.games {
			if g.ID == info.ID {
				m.cursor = i
			}
		}
	}
	return m
}

// Init implements tea.Model.
func (m Shell) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Shell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.state == stateScoreboard {
			var cmd tea.Cmd
			m.board, cmd = m.board.Update(msg)
			return m, cmd
		}
		return m, nil

	case TickMsg:
		return m.handleTick(msg)

	case insertMsg:
		return m.handleInsert(msg)

	case restartMsg:
		if msg.Gen != m.gen || m.state != stateInserting {
			return m, nil
		}
		return m, insertCmd(m.gen)

	case tea.MouseMsg:
		if m.state == statePlaying && m.sess != nil && m.sess.Active() {
			if p, ok := m.keys.MapMouse(msg); ok {
				m.bus.PublishPointer(p)
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.state == stateNameEntry {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Shell) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		switch m.keys.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			return m.quit()
		case MenuActionUp:
			if len(m.games) > 0 {
				m.cursor = (m.cursor - 1 + len(m.games)) % len(m.games)
			}
		case MenuActionDown:
			if len(m.games) > 0 {
				m.cursor = (m.cursor + 1) % len(m.games)
			}
		case MenuActionSelect:
			if len(m.games) > 0 {
				m.current = m.games[m.cursor]
				m.state = stateInstructions
			}
		case MenuActionScoreboard:
			return m.openScoreboard("", 0), nil
		}
		return m, nil

	case stateInstructions:
		switch m.keys.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			return m.quit()
		case MenuActionSelect:
			return m.insertCoin()
		case MenuActionBack:
			m = m.toMenu()
		}
		return m, nil

	case stateInserting:
		switch m.keys.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			return m.quit()
		case MenuActionBack:
			m.gen++
			m = m.toMenu()
		}
		return m, nil

	case statePlaying:
		return m.handlePlayKey(msg)

	case stateNameEntry:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m.quit()
		case tea.KeyEnter:
			return m.submitName(), nil
		case tea.KeyEsc:
			m = m.closeSession()
			m = m.toMenu()
			return m, nil
		}
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		m.name.SetValue(strings.ToUpper(m.name.Value()))
		return m, cmd

	case stateScoreboard:
		var cmd tea.Cmd
		m.board, cmd = m.board.Update(msg)
		if m.board.IsQuitting() {
			return m.quit()
		}
		if m.board.Done() {
			m = m.toMenu()
		}
		return m, cmd
	}
	return m, nil
}

func (m Shell) handlePlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" && m.opts.ScreenshotDir != "" && m.sess != nil {
		path, err := saveScreenshot(m.sess, m.opts.ScreenshotDir, time.Now())
		if err != nil {
			m.logger.Warn("cannot save screenshot", "error", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		return m.quit()
	}

	if m.play != nil && m.play.over {
		if action == core.ActionRestart {
			return m.restart()
		}
		m = m.closeSession()
		m = m.toMenu()
		return m, nil
	}

	switch action {
	case core.ActionBack:
		m = m.closeSession()
		m = m.toMenu()
		return m, nil
	case core.ActionRestart:
		return m.restart()
	case core.ActionNone:
		return m, nil
	}
	m.bus.PublishAction(action)
	return m, nil
}

// insertCoin shows the insert-coin screen for the current game.
func (m Shell) insertCoin() (Shell, tea.Cmd) {
	m.gen++
	m.state = stateInserting
	m.insertFrames = 0
	return m, insertCmd(m.gen)
}

// insertTotal is the number of insert-coin animation frames.
func (m Shell) insertTotal() int {
	return max(1, int(m.opts.InsertCoinDelay/insertStep))
}

func (m Shell) handleInsert(msg insertMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || m.state != stateInserting {
		return m, nil
	}
	m.insertFrames++
	if m.insertFrames < m.insertTotal() {
		return m, insertCmd(m.gen)
	}
	return m.begin()
}

// begin creates and activates a session for the current game.
func (m Shell) begin() (Shell, tea.Cmd) {
	game, err := registry.Create(m.current.ID)
	if err != nil {
		m.logger.Error("cannot create game", "game", m.current.ID, "error", err)
		m = m.toMenu()
		return m, nil
	}

	p := &play{}
	if best, ok := m.deps.Scores.Best(m.current.ID); ok {
		p.best = best.Score
	}
	cb := session.Guard(session.Callbacks{
		OnScoreChange: func(score int) { p.score = score },
		OnGameOver: func(final int) {
			p.score = final
			p.final = final
			p.over = true
		},
	})

	seed := m.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := core.RuntimeConfig{
		ScreenW:  m.width,
		ScreenH:  max(1, m.height-headerRows-footerRows),
		TickRate: m.opts.TickRate,
		Seed:     seed,
	}

	m.gen++
	m.play = p
	m.sess = session.New(game, cfg, m.bus, cb, session.Options{
		CountdownSeconds: m.opts.CountdownSeconds,
		Logger:           m.logger,
	})
	m.sess.SetActive(true)
	m.state = statePlaying
	return m, tickCmd(m.opts.TickRate, m.gen)
}

func (m Shell) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || m.state != statePlaying || m.sess == nil || !m.sess.Active() {
		return m, nil
	}

	more := m.sess.Frame()
	if m.play.over && !m.play.handled {
		return m.finish()
	}
	if !more {
		return m, nil
	}
	return m, tickCmd(m.opts.TickRate, m.gen)
}

// finish records a finished play and decides whether the player gets to
// enter initials.
func (m Shell) finish() (Shell, tea.Cmd) {
	m.play.handled = true
	id, final := m.current.ID, m.play.final

	if m.deps.History != nil {
		recID, err := m.deps.History.RecordPlay(id, "", final)
		if err != nil {
			m.logger.Warn("cannot record play", "game", id, "error", err)
		}
		m.play.recordID = recID
	}

	if !m.deps.Scores.Qualifies(id, final) {
		return m, nil
	}
	m.state = stateNameEntry
	m.name.SetValue("")
	if m.opts.Player != "" {
		m.name.Placeholder = scores.NormalizeName(m.opts.Player)
	}
	return m, m.name.Focus()
}

// entryName returns the initials as they will be stored.
func (m Shell) entryName() string {
	v := m.name.Value()
	if v == "" {
		v = m.name.Placeholder
	}
	return scores.NormalizeName(v)
}

func (m Shell) submitName() Shell {
	id, name := m.current.ID, m.entryName()
	rank := m.deps.Scores.Submit(id, name, m.play.final)
	if m.deps.History != nil && m.play.recordID != "" {
		if err := m.deps.History.SetPlayName(m.play.recordID, name); err != nil {
			m.logger.Warn("cannot name play", "game", id, "error", err)
		}
	}
	m.name.Blur()
	m = m.closeSession()
	return m.openScoreboard(id, rank)
}

// restart drops the current session and plays the same game again after
// a short pause.
func (m Shell) restart() (Shell, tea.Cmd) {
	m = m.closeSession()
	m.state = stateInserting
	m.insertFrames = 0
	return m, restartCmd(m.gen)
}

// closeSession tears down the current session, if any, and invalidates
// every message scheduled for it.
// toMenu switches to the menu and reloads the best scores it shows, so the
// menu view never reads the store.
func (m Shell) toMenu() Shell {
	m.state = stateMenu
	m.best = make(map[string]string, len(m.games))
	if m.deps.Scores == nil {
		return m
	}
	for _, g := range m.games {
		if e, ok := m.deps.Scores.Best(g.ID); ok {
			m.best[g.ID] = fmt.Sprintf("%s %s", e.Name, humanize.Comma(int64(e.Score)))
		}
	}
	return m
}

func (m Shell) closeSession() Shell {
	if m.sess != nil {
		m.sess.Close()
		m.sess = nil
	}
	m.gen++
	return m
}

func (m Shell) openScoreboard(gameID string, rank int) Shell {
	m.board = NewScoreboardModel(m.deps.Scores, m.deps.History, m.theme, m.width, m.height, gameID, rank)
	m.state = stateScoreboard
	return m
}

func (m Shell) quit() (Shell, tea.Cmd) {
	m = m.closeSession()
	m.quitting = true
	return m, tea.Quit
}

// State returns the name of the current screen, for logs and tests.
func (m Shell) State() string { return m.state.String() }

// Close releases the current session. Hosts call it after the program
// exits.
func (m Shell) Close() {
	if m.sess != nil {
		m.sess.Close()
	}
}
