// Package snake implements classic snake on a square grid: eat food to
// grow and speed up, and lose by running into a wall or yourself.
package snake

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// Tuning.
const (
	GridSize    = 20  // cells per side on a large enough screen
	MinGridSize = 8   // smallest grid used on cramped terminals
	FoodPoints  = 10  // score per food
	StartMoveMS = 150 // initial time between moves
	MoveStepMS  = 5   // speedup per food
	MinMoveMS   = 50  // fastest move interval
	cellWidth   = 2   // terminal columns per grid cell
	headChar    = '@'
	bodyChar    = 'o'
	foodChar    = '*'
)

// Direction is the heading of the snake.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

func (d Direction) delta() core.Point {
	switch d {
	case DirRight:
		return core.Point{X: 1}
	case DirDown:
		return core.Point{Y: 1}
	case DirLeft:
		return core.Point{X: -1}
	default:
		return core.Point{Y: -1}
	}
}

func (d Direction) opposite(o Direction) bool {
	return (d+2)%4 == o
}

// Game is one snake run.
type Game struct {
	cfg  core.RuntimeConfig
	rng  *rand.Rand
	tick uint64

	grid     int
	snake    []core.Point // head first
	dir      Direction
	queued   []Direction // turns waiting for the next move
	food     core.Point
	moveMS   int
	moveWait int

	score    int
	gameOver bool
	paused   bool
}

// New creates a snake game. Call Reset before use.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("snake", func() registry.Game { return New() })
}

// ID implements registry.Game.
func (g *Game) ID() string { return "snake" }

// Title implements registry.Game.
func (g *Game) Title() string { return "Snake" }

// Instructions implements registry.Describer.
func (g *Game) Instructions() []string {
	return []string{
		"Steer with the arrow keys or WASD.",
		fmt.Sprintf("Each food is worth %d points and makes you faster.", FoodPoints),
		"Hitting a wall or your own tail ends the game.",
		"P or Space pauses.",
	}
}

// Reset implements registry.Game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0

	g.grid = GridSize
	if fit := min((cfg.ScreenW-2)/cellWidth, cfg.ScreenH-2); fit < g.grid {
		g.grid = max(fit, MinGridSize)
	}

	mid := g.grid / 2
	g.snake = []core.Point{{X: mid, Y: mid}}
	g.dir = DirRight
	g.queued = g.queued[:0]
	g.food = core.Point{X: min(mid+5, g.grid-1), Y: mid}
	g.moveMS = StartMoveMS
	g.moveWait = cfg.Ticks(g.moveMS)

	g.score = 0
	g.gameOver = false
	g.paused = false
}

// Step implements registry.Game.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) || in.Has(core.ActionJump) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	g.queueTurns(in)

	g.moveWait--
	if g.moveWait <= 0 {
		g.move()
		g.moveWait = g.cfg.Ticks(g.moveMS)
	}
	return core.StepResult{State: g.State()}
}

// queueTurns buffers up to two turns so quick double taps are not lost.
func (g *Game) queueTurns(in core.InputFrame) {
	turns := []struct {
		a core.Action
		d Direction
	}{
		{core.ActionUp, DirUp},
		{core.ActionDown, DirDown},
		{core.ActionLeft, DirLeft},
		{core.ActionRight, DirRight},
	}
	for _, t := range turns {
		if !in.Has(t.a) || len(g.queued) >= 2 {
			continue
		}
		last := g.dir
		if n := len(g.queued); n > 0 {
			last = g.queued[n-1]
		}
		if t.d != last && !t.d.opposite(last) {
			g.queued = append(g.queued, t.d)
		}
	}
}

func (g *Game) move() {
	if len(g.queued) > 0 {
		g.dir = g.queued[0]
		g.queued = g.queued[1:]
	}

	head := g.snake[0].Add(g.dir.delta())
	if head.X < 0 || head.X >= g.grid || head.Y < 0 || head.Y >= g.grid {
		g.gameOver = true
		return
	}

	eating := head == g.food
	// The tail moves out of the way unless the snake is growing.
	body := g.snake
	if !eating {
		body = body[:len(body)-1]
	}
	for _, seg := range body {
		if seg == head {
			g.gameOver = true
			return
		}
	}

	g.snake = append([]core.Point{head}, body...)
	if eating {
		g.score += FoodPoints
		g.moveMS = max(MinMoveMS, g.moveMS-MoveStepMS)
		g.spawnFood()
	}
}

func (g *Game) spawnFood() {
	occupied := make(map[core.Point]bool, len(g.snake))
	for _, seg := range g.snake {
		occupied[seg] = true
	}
	free := make([]core.Point, 0, g.grid*g.grid-len(g.snake))
	for y := 0; y < g.grid; y++ {
		for x := 0; x < g.grid; x++ {
			if p := (core.Point{X: x, Y: y}); !occupied[p] {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		// The board is full; nothing left to eat.
		g.gameOver = true
		return
	}
	g.food = free[g.rng.Intn(len(free))]
}

// Render implements registry.Game.
func (g *Game) Render(dst *core.Screen) {
	boardW := g.grid*cellWidth + 2
	boardH := g.grid + 2
	ox := (dst.Width() - boardW) / 2
	oy := (dst.Height() - boardH) / 2
	dst.DrawBox(core.NewRect(ox, oy, boardW, boardH), core.ColorBlue)

	cell := func(p core.Point, r rune, c core.Color) {
		x := ox + 1 + p.X*cellWidth
		y := oy + 1 + p.Y
		dst.SetColor(x, y, r, c)
		dst.SetColor(x+1, y, r, c)
	}

	cell(g.food, foodChar, core.ColorBrightRed)
	for i := len(g.snake) - 1; i >= 0; i-- {
		if i == 0 {
			cell(g.snake[i], headChar, core.ColorBrightGreen)
		} else {
			cell(g.snake[i], bodyChar, core.ColorGreen)
		}
	}

	dst.DrawTextColor(ox, oy+boardH, fmt.Sprintf(" Score: %d  Length: %d ", g.score, len(g.snake)), core.ColorCyan)

	switch {
	case g.gameOver:
		dst.DrawMessage([]string{"GAME OVER", fmt.Sprintf("Score: %d", g.score)}, core.ColorRed)
	case g.paused:
		dst.DrawMessage([]string{"PAUSED", "P to resume"}, core.ColorYellow)
	}
}

// State implements registry.Game.
func (g *Game) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.gameOver, Paused: g.paused}
}
