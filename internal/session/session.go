// Package session runs one game from activation to its terminal state.
//
// A Session owns a registry.Game, its input subscription and its screen.
// It moves through Idle, Countdown, Running and Terminal; Terminal is
// absorbing. The host drives it by calling Frame once per scheduled frame
// while it is active, either from its own event loop or through Loop.
//
// A Session is not safe for concurrent use. Frame, SetActive and Close
// must be called from the one goroutine that drives the session. The input
// bus is the only entry point from other goroutines.
package session

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/input"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// Phase is the lifecycle state of a session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseCountdown
	PhaseRunning
	PhaseTerminal
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCountdown:
		return "countdown"
	case PhaseRunning:
		return "running"
	case PhaseTerminal:
		return "terminal"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Callbacks are the outputs of a session. Either may be nil.
type Callbacks struct {
	// OnScoreChange receives the running score after a frame in which it
	// changed. Several changes within one frame arrive as one call.
	OnScoreChange func(score int)
	// OnGameOver is called exactly once, as the last callback.
	OnGameOver func(finalScore int)
}

// Options tunes a session.
type Options struct {
	// CountdownSeconds before gameplay starts. Zero skips the countdown.
	CountdownSeconds int
	// HoldFrames is how long a key counts as held after its last press.
	// Zero uses a tenth of a second.
	HoldFrames int
	// Logger receives lifecycle events. Nil discards them.
	Logger *log.Logger
}

// Session is one run of one game.
type Session struct {
	id     string
	game   registry.Game
	cfg    core.RuntimeConfig
	bus    *input.Bus
	cb     Callbacks
	logger *log.Logger

	countdownFrames int
	holdFrames      int

	phase     Phase
	active    bool
	closed    bool
	remaining int // countdown frames left
	frame     uint64
	lastScore int

	unsubscribe func()
	screen      *core.Screen

	// Written by the bus listener, drained by Frame.
	inMu      sync.Mutex
	pending   []input.Event
	lastPress map[core.Action]uint64
}

// New creates an idle session. It neither resets the game nor subscribes
// to the bus until SetActive(true).
func New(game registry.Game, cfg core.RuntimeConfig, bus *input.Bus, cb Callbacks, opts Options) *Session {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if bus == nil {
		bus = input.NewBus()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	hold := opts.HoldFrames
	if hold <= 0 {
		hold = max(1, cfg.TickRate/10)
	}

	return &Session{
		id:              uuid.NewString(),
		game:            game,
		cfg:             cfg,
		bus:             bus,
		cb:              cb,
		logger:          logger.With("game", game.ID()),
		countdownFrames: max(0, opts.CountdownSeconds) * cfg.TickRate,
		holdFrames:      hold,
		screen:          core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		lastPress:       make(map[core.Action]uint64),
	}
}

// ID is a unique id for logs and play history.
func (s *Session) ID() string { return s.id }

// Game returns the wrapped game.
func (s *Session) Game() registry.Game { return s.game }

// Phase returns the lifecycle phase.
func (s *Session) Phase() Phase { return s.phase }

// Active reports whether frames should be scheduled.
func (s *Session) Active() bool { return s.active }

// Score returns the last observed score.
func (s *Session) Score() int { return s.lastScore }

// Screen returns the last rendered frame.
func (s *Session) Screen() *core.Screen { return s.screen }

// CountdownRemaining returns the whole seconds left in the countdown,
// rounded up, or zero outside the countdown.
func (s *Session) CountdownRemaining() int {
	if s.phase != PhaseCountdown {
		return 0
	}
	return (s.remaining + s.cfg.TickRate - 1) / s.cfg.TickRate
}

// SetActive starts, resumes or suspends the session. Activating a
// terminal or closed session does nothing.
func (s *Session) SetActive(active bool) {
	if active {
		s.activate()
		return
	}
	s.deactivate()
}

func (s *Session) activate() {
	if s.active || s.closed || s.phase == PhaseTerminal {
		return
	}

	if s.phase == PhaseIdle {
		s.game.Reset(s.cfg)
		s.lastScore = s.game.State().Score
		if s.countdownFrames > 0 {
			s.phase = PhaseCountdown
			s.remaining = s.countdownFrames
		} else {
			s.phase = PhaseRunning
		}
		s.logger.Debug("session started", "id", s.id, "seed", s.cfg.Seed)
	} else {
		s.logger.Debug("session resumed", "id", s.id, "phase", s.phase)
	}

	s.unsubscribe = s.bus.Subscribe(s.enqueue)
	s.active = true
	s.render()
}

func (s *Session) deactivate() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	if s.active {
		s.logger.Debug("session suspended", "id", s.id, "phase", s.phase)
	}
	s.active = false

	s.inMu.Lock()
	s.pending = s.pending[:0]
	s.inMu.Unlock()
}

// Close tears the session down. It is idempotent and fires no callbacks.
func (s *Session) Close() {
	s.deactivate()
	s.closed = true
}

func (s *Session) enqueue(ev input.Event) {
	s.inMu.Lock()
	s.pending = append(s.pending, ev)
	s.inMu.Unlock()
}

// sample drains pending events into an input frame. Keys pressed within
// the hold window are reported as held.
func (s *Session) sample() core.InputFrame {
	s.inMu.Lock()
	events := s.pending
	s.pending = nil
	s.inMu.Unlock()

	in := core.NewInputFrame()
	for _, ev := range events {
		if ev.Action != core.ActionNone {
			in.Set(ev.Action)
			s.lastPress[ev.Action] = s.frame
		}
		if ev.Pointer != nil {
			in.Click(*ev.Pointer)
		}
	}
	for a, at := range s.lastPress {
		if s.frame-at < uint64(s.holdFrames) {
			in.Hold(a)
		} else {
			delete(s.lastPress, a)
		}
	}
	return in
}

// Frame runs one update-then-render cycle. It returns whether the session
// still wants frames; false means the host should stop scheduling.
func (s *Session) Frame() bool {
	if !s.active || s.phase == PhaseTerminal {
		return false
	}
	s.frame++
	in := s.sample()

	switch s.phase {
	case PhaseCountdown:
		s.remaining--
		if s.remaining <= 0 {
			s.phase = PhaseRunning
		}
		s.render()
		return true

	case PhaseRunning:
		state := s.game.Step(in).State
		over := state.GameOver
		if over {
			s.phase = PhaseTerminal
			s.deactivate()
		}
		s.render()

		if state.Score != s.lastScore {
			s.lastScore = state.Score
			if s.cb.OnScoreChange != nil {
				s.cb.OnScoreChange(state.Score)
			}
		}
		if over && !s.closed {
			s.logger.Info("game over", "id", s.id, "score", state.Score, "frames", s.frame)
			if s.cb.OnGameOver != nil {
				s.cb.OnGameOver(state.Score)
			}
			return false
		}
		return s.active
	}
	return false
}

func (s *Session) render() {
	s.screen.Clear()
	s.game.Render(s.screen)
	if s.phase == PhaseCountdown {
		s.screen.DrawMessage([]string{
			s.game.Title(),
			"",
			fmt.Sprintf("  %d  ", s.CountdownRemaining()),
			"",
			"GET READY",
		}, core.ColorBrightYellow)
	}
}
