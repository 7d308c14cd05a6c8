// Package tetris implements falling-block tetris on a 10x20 well.
package tetris

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

const (
	BoardW        = 10
	BoardH        = 20
	LinesPerLevel = 10

	baseGravityMS = 800
	gravityStepMS = 50
	minGravityMS  = 100

	cellWidth = 2
)

// linePoints is indexed by the number of rows cleared at once.
var linePoints = [5]int{0, 100, 300, 500, 800}

// wallKicks are the horizontal offsets tried when a rotation collides.
var wallKicks = []int{0, -1, 1, -2, 2}

type piece struct {
	kind  Kind
	shape Shape
	x, y  int
}

func (p piece) cells(fn func(x, y int)) {
	for dy, row := range p.shape {
		for dx, filled := range row {
			if filled {
				fn(p.x+dx, p.y+dy)
			}
		}
	}
}

// Game is one tetris run.
type Game struct {
	cfg  core.RuntimeConfig
	rng  *rand.Rand
	bag  *bag
	tick uint64

	// board holds the colour of each settled cell, or -1 when empty.
	board [BoardH][BoardW]int

	current piece
	next    Kind
	fall    int // frames until the next gravity step

	score    int
	lines    int
	level    int
	gameOver bool
	paused   bool
}

// New creates a tetris game. Call Reset before use.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("tetris", func() registry.Game { return New() })
}

// ID implements registry.Game.
func (g *Game) ID() string { return "tetris" }

// Title implements registry.Game.
func (g *Game) Title() string { return "Tetris" }

// Instructions implements registry.Describer.
func (g *Game) Instructions() []string {
	return []string{
		"Left/Right move, Up rotates, Down drops one row.",
		"Space hard-drops the piece.",
		"Clearing 1/2/3/4 lines scores 100/300/500/800 times the level.",
		"The level rises every 10 lines and pieces fall faster.",
		"P pauses.",
	}
}

// Reset implements registry.Game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.bag = newBag(g.rng)
	g.tick = 0

	for y := range g.board {
		for x := range g.board[y] {
			g.board[y][x] = -1
		}
	}

	g.score = 0
	g.lines = 0
	g.level = 1
	g.gameOver = false
	g.paused = false

	g.next = g.bag.next()
	g.spawn()
}

// GravityMS returns the time between automatic drops at the current level.
func (g *Game) GravityMS() int {
	return max(minGravityMS, baseGravityMS-(g.level-1)*gravityStepMS)
}

func (g *Game) spawn() {
	k := g.next
	g.next = g.bag.next()
	sh := shapes[k]
	g.current = piece{kind: k, shape: sh, x: (BoardW - sh.Width()) / 2}
	g.fall = g.cfg.Ticks(g.GravityMS())
	if g.collides(g.current) {
		g.gameOver = true
	}
}

func (g *Game) collides(p piece) bool {
	hit := false
	p.cells(func(x, y int) {
		if x < 0 || x >= BoardW || y >= BoardH {
			hit = true
			return
		}
		if y >= 0 && g.board[y][x] >= 0 {
			hit = true
		}
	})
	return hit
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

	if in.Has(core.ActionLeft) {
		g.shift(-1)
	}
	if in.Has(core.ActionRight) {
		g.shift(1)
	}
	if in.Has(core.ActionUp) {
		g.rotate()
	}
	if in.Has(core.ActionJump) {
		g.hardDrop()
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionDown) {
		g.drop()
		g.fall = g.cfg.Ticks(g.GravityMS())
		return core.StepResult{State: g.State()}
	}

	g.fall--
	if g.fall <= 0 {
		g.drop()
		g.fall = g.cfg.Ticks(g.GravityMS())
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) shift(dx int) {
	p := g.current
	p.x += dx
	if !g.collides(p) {
		g.current = p
	}
}

func (g *Game) rotate() {
	p := g.current
	p.shape = p.shape.Rotate()
	for _, kick := range wallKicks {
		try := p
		try.x += kick
		if !g.collides(try) {
			g.current = try
			return
		}
	}
}

// drop moves the piece one row down, locking it when it cannot move.
func (g *Game) drop() {
	p := g.current
	p.y++
	if !g.collides(p) {
		g.current = p
		return
	}
	g.lock()
}

func (g *Game) hardDrop() {
	for {
		p := g.current
		p.y++
		if g.collides(p) {
			break
		}
		g.current = p
	}
	g.lock()
}

func (g *Game) lock() {
	color := int(kindColors[g.current.kind])
	g.current.cells(func(x, y int) {
		if y >= 0 {
			g.board[y][x] = color
		}
	})
	if g.current.y <= 0 {
		// Locked without ever leaving the top row: the stack is full.
		g.gameOver = true
		return
	}

	if n := g.clearLines(); n > 0 {
		g.score += linePoints[n] * g.level
		g.lines += n
		g.level = g.lines/LinesPerLevel + 1
	}
	g.spawn()
}

func (g *Game) clearLines() int {
	cleared := 0
	dst := BoardH - 1
	for src := BoardH - 1; src >= 0; src-- {
		full := true
		for _, c := range g.board[src] {
			if c < 0 {
				full = false
				break
			}
		}
		if full {
			cleared++
			continue
		}
		g.board[dst] = g.board[src]
		dst--
	}
	for ; dst >= 0; dst-- {
		for x := range g.board[dst] {
			g.board[dst][x] = -1
		}
	}
	return cleared
}

func (g *Game) ghostY() int {
	p := g.current
	for {
		p.y++
		if g.collides(p) {
			return p.y - 1
		}
	}
}

// Render implements registry.Game.
func (g *Game) Render(dst *core.Screen) {
	const panelW = 16
	boardW := BoardW*cellWidth + 2
	boardH := BoardH + 2
	ox := max(0, (dst.Width()-boardW-panelW)/2)
	oy := max(0, (dst.Height()-boardH)/2)
	dst.DrawBox(core.NewRect(ox, oy, boardW, boardH), core.ColorCyan)

	cell := func(x, y int, r rune, c core.Color) {
		sx := ox + 1 + x*cellWidth
		sy := oy + 1 + y
		dst.SetColor(sx, sy, r, c)
		dst.SetColor(sx+1, sy, r, c)
	}

	for y := 0; y < BoardH; y++ {
		for x := 0; x < BoardW; x++ {
			if c := g.board[y][x]; c >= 0 {
				cell(x, y, '█', core.Color(c))
			} else {
				dst.SetColor(ox+1+x*cellWidth, oy+1+y, '.', core.ColorGray)
			}
		}
	}

	if !g.gameOver {
		ghost := g.current
		ghost.y = g.ghostY()
		ghost.cells(func(x, y int) {
			if y >= 0 {
				cell(x, y, '░', core.ColorGray)
			}
		})
		g.current.cells(func(x, y int) {
			if y >= 0 {
				cell(x, y, '█', kindColors[g.current.kind])
			}
		})
	}

	px := ox + boardW + 2
	dst.DrawTextColor(px, oy+1, fmt.Sprintf("Score %d", g.score), core.ColorBrightYellow)
	dst.DrawTextColor(px, oy+2, fmt.Sprintf("Level %d", g.level), core.ColorWhite)
	dst.DrawTextColor(px, oy+3, fmt.Sprintf("Lines %d", g.lines), core.ColorWhite)
	dst.DrawTextColor(px, oy+5, "Next", core.ColorGray)
	next := shapes[g.next]
	for y, row := range next {
		for x, filled := range row {
			if filled {
				dst.SetColor(px+x*cellWidth, oy+6+y, '█', kindColors[g.next])
				dst.SetColor(px+x*cellWidth+1, oy+6+y, '█', kindColors[g.next])
			}
		}
	}

	switch {
	case g.gameOver:
		dst.DrawMessage([]string{"GAME OVER", fmt.Sprintf("Score: %d", g.score), fmt.Sprintf("Lines: %d", g.lines)}, core.ColorRed)
	case g.paused:
		dst.DrawMessage([]string{"PAUSED", "P to resume"}, core.ColorYellow)
	}
}

// State implements registry.Game.
func (g *Game) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.gameOver, Paused: g.paused}
}
