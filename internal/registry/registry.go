// Package registry holds the Game interface and the table of game
// factories. Games register themselves from init so the shell and the CLI
// can discover them without importing each one by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// Game is the per-game half of the session contract. Implementations own
// all of their state and never touch the terminal; the session layer
// decides when Step and Render are called.
type Game interface {
	// ID is the stable key used for the CLI and the leaderboard.
	ID() string

	// Title is the human-readable name shown in menus.
	Title() string

	// Reset (re)initializes every piece of state from cfg. The RNG must be
	// seeded from cfg.Seed so a seed always replays the same game.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one frame.
	Step(in core.InputFrame) core.StepResult

	// Render draws the whole current state. dst is cleared beforehand.
	Render(dst *core.Screen)

	// State reports score and terminal status.
	State() core.GameState
}

// Describer is implemented by games that provide an instruction card.
type Describer interface {
	Instructions() []string
}

// GameInfo is registry metadata for one game.
type GameInfo struct {
	ID           string
	Title        string
	Instructions []string
}

// Factory builds a fresh, unreset game.
type Factory func() Game

var (
	mu    sync.RWMutex
	games = make(map[string]entry)
)

type entry struct {
	factory Factory
	info    GameInfo
}

// Register adds a factory. It panics on a duplicate id, which is a
// programming error caught at startup.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := games[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Instructions = d.Instructions()
	}
	games[id] = entry{factory: f, info: info}
}

// List returns every registered game sorted by id.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(games))
	for _, e := range games {
		out = append(out, e.info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Info returns the metadata for id.
func Info(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := games[id]
	return e.info, ok
}

// Create builds a new game instance.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := games[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	_, ok := Info(id)
	return ok
}
