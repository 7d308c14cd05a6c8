// Package minesweeper implements the classic mine field with a keyboard
// cursor and mouse support.
package minesweeper

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// Rules.
const (
	Cols        = 12
	Rows        = 12
	Mines       = 20
	CellPoints  = 5   // per opened cell
	ClearBonus  = 200 // for opening every safe cell
	cellWidth   = 3
	boardOffset = 1 // rows above the board frame, for the HUD
)

var numberColors = [9]core.Color{
	core.ColorDefault,
	core.ColorBrightCyan,
	core.ColorBrightGreen,
	core.ColorBrightRed,
	core.ColorBlue,
	core.ColorRed,
	core.ColorCyan,
	core.ColorWhite,
	core.ColorGray,
}

// Game is one mine field.
type Game struct {
	rng  *rand.Rand
	tick uint64

	board  *Board
	cursor core.Point
	frame  core.Rect // board frame on screen, border included

	score    int
	won      bool
	gameOver bool
	paused   bool
}

// New creates a minesweeper game. Call Reset before use.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("minesweeper", func() registry.Game { return New() })
}

// ID implements registry.Game.
func (g *Game) ID() string { return "minesweeper" }

// Title implements registry.Game.
func (g *Game) Title() string { return "Minesweeper" }

// Instructions implements registry.Describer.
func (g *Game) Instructions() []string {
	return []string{
		"Move the cursor with the arrow keys or WASD.",
		"Space or Enter reveals a cell, F plants or removes a flag.",
		"Left click reveals, right click flags.",
		fmt.Sprintf("%d mines. %d points per cell, %d for clearing the field.", Mines, CellPoints, ClearBonus),
	}
}

// Reset implements registry.Game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0

	g.board = NewBoard(Cols, Rows)
	g.cursor = core.Point{X: Cols / 2, Y: Rows / 2}
	g.frame = core.NewRect(0, boardOffset, Cols*cellWidth+2, Rows+2)
	g.frame.X = max(0, (cfg.ScreenW-g.frame.W)/2)

	g.score = 0
	g.won = false
	g.gameOver = false
	g.paused = false
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

	g.moveCursor(in)
	switch {
	case in.Has(core.ActionJump), in.Has(core.ActionConfirm):
		g.reveal(g.cursor)
	case in.Has(core.ActionFlag):
		g.board.ToggleFlag(g.cursor)
	}

	for _, p := range in.Clicks {
		if g.gameOver {
			break
		}
		cell, ok := g.cellAt(p.X, p.Y)
		if !ok {
			continue
		}
		g.cursor = cell
		if p.Button == core.PointerSecondary {
			g.board.ToggleFlag(cell)
		} else {
			g.reveal(cell)
		}
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) moveCursor(in core.InputFrame) {
	d := core.Point{}
	if in.Has(core.ActionLeft) {
		d.X--
	}
	if in.Has(core.ActionRight) {
		d.X++
	}
	if in.Has(core.ActionUp) {
		d.Y--
	}
	if in.Has(core.ActionDown) {
		d.Y++
	}
	c := g.cursor.Add(d)
	g.cursor = core.Point{X: core.Clamp(c.X, 0, Cols-1), Y: core.Clamp(c.Y, 0, Rows-1)}
}

// cellAt maps screen coordinates to a board cell.
func (g *Game) cellAt(x, y int) (core.Point, bool) {
	inner := core.NewRect(g.frame.X+1, g.frame.Y+1, Cols*cellWidth, Rows)
	if !inner.Contains(x, y) {
		return core.Point{}, false
	}
	return core.Point{X: (x - inner.X) / cellWidth, Y: y - inner.Y}, true
}

func (g *Game) reveal(p core.Point) {
	if !g.board.Laid() {
		g.board.Lay(g.rng, Mines, p)
	}
	opened, mine := g.board.Reveal(p)
	if mine {
		g.board.ShowMines()
		g.gameOver = true
		return
	}
	g.score += opened * CellPoints
	if opened > 0 && g.board.SafeLeft() == 0 {
		g.score += ClearBonus
		g.won = true
		g.gameOver = true
	}
}

// Render implements registry.Game.
func (g *Game) Render(dst *core.Screen) {
	flags := g.board.Count(CellFlagged)
	dst.DrawTextColor(g.frame.X, 0, fmt.Sprintf("Score: %d", g.score), core.ColorWhite)
	mines := fmt.Sprintf("Mines: %d", Mines-flags)
	dst.DrawTextColor(g.frame.Right()-len(mines), 0, mines, core.ColorWhite)

	dst.DrawBox(g.frame, core.ColorCyan)
	for y := 0; y < Rows; y++ {
		for x := 0; x < Cols; x++ {
			g.drawCell(dst, core.Point{X: x, Y: y})
		}
	}

	if !g.gameOver {
		cx := g.frame.X + 1 + g.cursor.X*cellWidth
		cy := g.frame.Y + 1 + g.cursor.Y
		dst.SetColor(cx, cy, '[', core.ColorBrightYellow)
		dst.SetColor(cx+cellWidth-1, cy, ']', core.ColorBrightYellow)
	}

	switch {
	case g.won:
		dst.DrawMessage([]string{"FIELD CLEARED!", fmt.Sprintf("Score: %d", g.score)}, core.ColorBrightGreen)
	case g.gameOver:
		dst.DrawMessage([]string{"BOOM! GAME OVER", fmt.Sprintf("Score: %d", g.score)}, core.ColorRed)
	case g.paused:
		dst.DrawMessage([]string{"PAUSED", "P to resume"}, core.ColorYellow)
	}
}

func (g *Game) drawCell(dst *core.Screen, p core.Point) {
	x := g.frame.X + 1 + p.X*cellWidth + 1
	y := g.frame.Y + 1 + p.Y
	c := g.board.At(p)
	switch c.State {
	case CellHidden:
		dst.SetColor(x, y, '■', core.ColorBlue)
	case CellFlagged:
		dst.SetColor(x, y, '⚑', core.ColorBrightMagenta)
	case CellRevealed:
		switch {
		case c.Mine:
			dst.SetColor(x, y, '*', core.ColorBrightRed)
		case c.Adjacent > 0:
			dst.SetColor(x, y, rune('0'+c.Adjacent), numberColors[c.Adjacent])
		default:
			dst.SetColor(x, y, '·', core.ColorGray)
		}
	}
}

// State implements registry.Game.
func (g *Game) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.gameOver, Paused: g.paused, Won: g.won}
}
