// Package memory implements a Simon-style tile game: watch a sequence of
// lit tiles, then repeat it. Sequences grow longer and the grid grows with
// the level.
package memory

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

const (
	StartLives  = 3
	LevelPoints = 100 // times the level, per repeated sequence
	MinGrid     = 3
	MaxGrid     = 6

	leadMS   = 500  // dark pause before the first tile
	showMS   = 600  // per tile in the sequence
	litMS    = 450  // part of showMS the tile stays lit
	resultMS = 1000 // pause after a correct or wrong answer
)

// Phase is the part of a round the game is in.
type Phase int

const (
	PhaseShow   Phase = iota // sequence playing back
	PhaseInput               // player repeating it
	PhaseResult              // short pause before the next round
)

// GridSize returns the side of the tile grid for level.
func GridSize(level int) int {
	return min(MinGrid+(level-1)/3, MaxGrid)
}

// PatternLength returns how many tiles the sequence has at level.
func PatternLength(level int) int {
	return 2 + level
}

// Game is one memory run.
type Game struct {
	cfg  core.RuntimeConfig
	rng  *rand.Rand
	tick uint64

	level   int
	size    int
	pattern []int
	entered int // correct tiles repeated so far
	phase   Phase
	showIdx int // tile of the pattern playing back, -1 during the lead-in
	timer   int
	passed  bool // outcome shown in PhaseResult
	wrong   int  // tile picked by mistake, -1 if none
	cursor  core.Point

	tile core.Rect // size of one tile, at the origin of the grid
	gapX int
	gapY int

	lives    int
	score    int
	gameOver bool
	paused   bool
}

// New creates a memory game. Call Reset before use.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("memory", func() registry.Game { return New() })
}

// ID implements registry.Game.
func (g *Game) ID() string { return "memory" }

// Title implements registry.Game.
func (g *Game) Title() string { return "Memory Tiles" }

// Instructions implements registry.Describer.
func (g *Game) Instructions() []string {
	return []string{
		"Watch the tiles light up, then repeat the sequence.",
		"Move with the arrow keys and press Space or Enter, or click a tile.",
		fmt.Sprintf("Each sequence is worth %d times the level.", LevelPoints),
		fmt.Sprintf("A wrong tile costs a life and replays the level. %d lives.", StartLives),
	}
}

// Reset implements registry.Game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0

	g.lives = StartLives
	g.score = 0
	g.gameOver = false
	g.paused = false
	g.cursor = core.Point{X: 1, Y: 1}

	g.startLevel(1)
}

func (g *Game) startLevel(level int) {
	g.level = level
	g.size = GridSize(level)
	g.pattern = g.pattern[:0]
	for range PatternLength(level) {
		g.pattern = append(g.pattern, g.rng.Intn(g.size*g.size))
	}
	g.cursor = core.Point{X: min(g.cursor.X, g.size-1), Y: min(g.cursor.Y, g.size-1)}
	g.layout()
	g.replay()
}

// replay plays the current sequence back from the start.
func (g *Game) replay() {
	g.phase = PhaseShow
	g.showIdx = -1
	g.timer = g.cfg.Ticks(leadMS)
	g.entered = 0
	g.wrong = -1
}

// layout sizes the tiles to fit the grid on screen, rows 0 and 1 and the
// last row being reserved for text.
func (g *Game) layout() {
	pitchY := (g.cfg.ScreenH - 3) / g.size
	h := core.Clamp(pitchY-1, 1, 3)
	w := h*2 + 2
	g.gapX, g.gapY = 2, 1
	if (w+g.gapX)*g.size > g.cfg.ScreenW {
		w = max(1, g.cfg.ScreenW/g.size-g.gapX)
	}
	if (h+g.gapY)*g.size-g.gapY > g.cfg.ScreenH-3 {
		g.gapY = 0
	}

	gridW := g.size*(w+g.gapX) - g.gapX
	gridH := g.size*(h+g.gapY) - g.gapY
	g.tile = core.NewRect(max(0, (g.cfg.ScreenW-gridW)/2), max(2, 2+(g.cfg.ScreenH-3-gridH)/2), w, h)
}

// tileRect returns the screen area of tile i.
func (g *Game) tileRect(i int) core.Rect {
	col, row := i%g.size, i/g.size
	return core.NewRect(
		g.tile.X+col*(g.tile.W+g.gapX),
		g.tile.Y+row*(g.tile.H+g.gapY),
		g.tile.W, g.tile.H,
	)
}

func (g *Game) tileAt(x, y int) (int, bool) {
	for i := range g.size * g.size {
		if g.tileRect(i).Contains(x, y) {
			return i, true
		}
	}
	return 0, false
}

// Lit returns the tile currently lit by the playback, if any.
func (g *Game) Lit() (int, bool) {
	if g.phase != PhaseShow || g.showIdx < 0 || g.showIdx >= len(g.pattern) {
		return 0, false
	}
	if g.timer <= g.cfg.Ticks(showMS-litMS) {
		return 0, false
	}
	return g.pattern[g.showIdx], true
}

// Step implements registry.Game.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	switch g.phase {
	case PhaseShow:
		g.timer--
		if g.timer <= 0 {
			g.showIdx++
			if g.showIdx >= len(g.pattern) {
				g.phase = PhaseInput
			} else {
				g.timer = g.cfg.Ticks(showMS)
			}
		}
	case PhaseInput:
		g.moveCursor(in)
		if in.Has(core.ActionJump) || in.Has(core.ActionConfirm) {
			g.choose(g.cursor.Y*g.size + g.cursor.X)
		}
		for _, p := range in.Clicks {
			if g.phase != PhaseInput {
				break
			}
			if i, ok := g.tileAt(p.X, p.Y); ok {
				g.cursor = core.Point{X: i % g.size, Y: i / g.size}
				g.choose(i)
			}
		}
	case PhaseResult:
		g.timer--
		if g.timer <= 0 {
			if g.passed {
				g.startLevel(g.level + 1)
			} else {
				g.replay()
			}
		}
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) moveCursor(in core.InputFrame) {
	c := g.cursor
	switch {
	case in.Has(core.ActionLeft):
		c.X--
	case in.Has(core.ActionRight):
		c.X++
	case in.Has(core.ActionUp):
		c.Y--
	case in.Has(core.ActionDown):
		c.Y++
	}
	g.cursor = core.Point{X: core.Clamp(c.X, 0, g.size-1), Y: core.Clamp(c.Y, 0, g.size-1)}
}

func (g *Game) choose(tile int) {
	if tile == g.pattern[g.entered] {
		g.entered++
		if g.entered == len(g.pattern) {
			g.score += g.level * LevelPoints
			g.passed = true
			g.phase = PhaseResult
			g.timer = g.cfg.Ticks(resultMS)
		}
		return
	}

	g.wrong = tile
	g.lives--
	if g.lives <= 0 {
		g.gameOver = true
		return
	}
	g.passed = false
	g.phase = PhaseResult
	g.timer = g.cfg.Ticks(resultMS)
}

// Render implements registry.Game.
func (g *Game) Render(dst *core.Screen) {
	dst.DrawTextColor(1, 0, fmt.Sprintf("Level: %d", g.level), core.ColorWhite)
	lives := fmt.Sprintf("Lives: %d  Score: %d", g.lives, g.score)
	dst.DrawTextColor(dst.Width()-len(lives)-1, 0, lives, core.ColorWhite)

	switch g.phase {
	case PhaseShow:
		dst.DrawTextCentered(1, "MEMORIZE THE PATTERN", core.ColorBrightYellow)
	case PhaseInput:
		dst.DrawTextCentered(1, fmt.Sprintf("YOUR TURN  %d/%d", g.entered, len(g.pattern)), core.ColorBrightGreen)
	case PhaseResult:
		if g.passed {
			dst.DrawTextCentered(1, "CORRECT!", core.ColorBrightGreen)
		} else {
			dst.DrawTextCentered(1, "WRONG!", core.ColorBrightRed)
		}
	}

	lit, isLit := g.Lit()
	chosen := make(map[int]bool, g.entered)
	for _, t := range g.pattern[:g.entered] {
		chosen[t] = true
	}
	for i := range g.size * g.size {
		ch, c := '░', core.ColorBlue
		switch {
		case isLit && i == lit:
			ch, c = '█', core.ColorBrightCyan
		case i == g.wrong:
			ch, c = '▓', core.ColorBrightRed
		case chosen[i]:
			ch, c = '▓', core.ColorGreen
		}
		dst.FillRect(g.tileRect(i), ch, c)
	}

	if g.phase == PhaseInput {
		r := g.tileRect(g.cursor.Y*g.size + g.cursor.X)
		for y := r.Y; y < r.Bottom(); y++ {
			dst.SetColor(r.X-1, y, '▐', core.ColorBrightYellow)
			dst.SetColor(r.Right(), y, '▌', core.ColorBrightYellow)
		}
	}

	switch {
	case g.gameOver:
		dst.DrawMessage([]string{"GAME OVER", fmt.Sprintf("Reached level %d", g.level), fmt.Sprintf("Score: %d", g.score)}, core.ColorRed)
	case g.paused:
		dst.DrawMessage([]string{"PAUSED", "P to resume"}, core.ColorYellow)
	}
}

// State implements registry.Game.
func (g *Game) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.gameOver, Paused: g.paused}
}
