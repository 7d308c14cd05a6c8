package minesweeper

import (
	"math/rand"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// CellState is what the player has done to a cell.
type CellState int

const (
	CellHidden CellState = iota
	CellFlagged
	CellRevealed
)

// Cell is one square of the field.
type Cell struct {
	Mine     bool
	State    CellState
	Adjacent int // mines among the eight neighbours
}

// Board is the mine field. Mines are laid once, on the first reveal.
type Board struct {
	cols, rows int
	cells      []Cell
	mines      int
	laid       bool
}

// NewBoard creates an empty, fully hidden field.
func NewBoard(cols, rows int) *Board {
	return &Board{cols: cols, rows: rows, cells: make([]Cell, cols*rows)}
}

// In reports whether p is on the board.
func (b *Board) In(p core.Point) bool {
	return p.X >= 0 && p.X < b.cols && p.Y >= 0 && p.Y < b.rows
}

// At returns the cell at p. p must be on the board.
func (b *Board) At(p core.Point) Cell {
	return b.cells[p.Y*b.cols+p.X]
}

func (b *Board) at(p core.Point) *Cell {
	return &b.cells[p.Y*b.cols+p.X]
}

// Laid reports whether the mines have been placed.
func (b *Board) Laid() bool { return b.laid }

func (b *Board) neighbours(p core.Point, fn func(core.Point)) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			q := p.Add(core.Point{X: dx, Y: dy})
			if (dx != 0 || dy != 0) && b.In(q) {
				fn(q)
			}
		}
	}
}

// Lay places n mines at random, keeping safe and its neighbours clear so
// the first reveal always opens an area. On a board too small for that
// only safe itself is kept clear.
func (b *Board) Lay(rng *rand.Rand, n int, safe core.Point) {
	total := b.cols * b.rows
	n = core.Clamp(n, 0, total-1)

	keepClear := func(p core.Point) bool {
		return core.Abs(p.X-safe.X) <= 1 && core.Abs(p.Y-safe.Y) <= 1
	}
	if total-9 < n {
		keepClear = func(p core.Point) bool { return p == safe }
	}

	var mines []core.Point
	taken := make(map[int]bool, n)
	for len(mines) < n {
		i := rng.Intn(total)
		p := core.Point{X: i % b.cols, Y: i / b.cols}
		if taken[i] || keepClear(p) {
			continue
		}
		taken[i] = true
		mines = append(mines, p)
	}
	b.lay(mines)
}

func (b *Board) lay(mines []core.Point) {
	for _, p := range mines {
		b.at(p).Mine = true
	}
	for i := range b.cells {
		p := core.Point{X: i % b.cols, Y: i / b.cols}
		count := 0
		b.neighbours(p, func(q core.Point) {
			if b.At(q).Mine {
				count++
			}
		})
		b.cells[i].Adjacent = count
	}
	b.mines = len(mines)
	b.laid = true
}

// Reveal opens the cell at p. Opening a cell with no adjacent mines opens
// its neighbours too. It returns how many cells were opened and whether p
// held a mine. Flagged and already open cells are left alone.
func (b *Board) Reveal(p core.Point) (opened int, mine bool) {
	if !b.In(p) || b.At(p).State != CellHidden {
		return 0, false
	}
	if b.At(p).Mine {
		b.at(p).State = CellRevealed
		return 0, true
	}

	stack := []core.Point{p}
	for len(stack) > 0 {
		q := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		c := b.at(q)
		if c.State != CellHidden || c.Mine {
			continue
		}
		c.State = CellRevealed
		opened++
		if c.Adjacent == 0 {
			b.neighbours(q, func(n core.Point) {
				if b.At(n).State == CellHidden {
					stack = append(stack, n)
				}
			})
		}
	}
	return opened, false
}

// ToggleFlag flags or unflags a hidden cell and reports whether anything
// changed.
func (b *Board) ToggleFlag(p core.Point) bool {
	if !b.In(p) {
		return false
	}
	c := b.at(p)
	switch c.State {
	case CellHidden:
		c.State = CellFlagged
	case CellFlagged:
		c.State = CellHidden
	default:
		return false
	}
	return true
}

// ShowMines opens every mine, for the losing screen.
func (b *Board) ShowMines() {
	for i := range b.cells {
		if b.cells[i].Mine {
			b.cells[i].State = CellRevealed
		}
	}
}

// SafeLeft counts safe cells still closed.
func (b *Board) SafeLeft() int {
	n := 0
	for _, c := range b.cells {
		if !c.Mine && c.State != CellRevealed {
			n++
		}
	}
	return n
}

// Count returns how many cells are in state s.
func (b *Board) Count(s CellState) int {
	n := 0
	for _, c := range b.cells {
		if c.State == s {
			n++
		}
	}
	return n
}

// layout renders the mine positions row by row.
func (b *Board) layout() string {
	buf := make([]byte, len(b.cells))
	for i, c := range b.cells {
		buf[i] = '.'
		if c.Mine {
			buf[i] = '*'
		}
	}
	return string(buf)
}
