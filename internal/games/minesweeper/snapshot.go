package minesweeper

// Snapshot is the observable state of a field.
type Snapshot struct {
	Tick     uint64
	Score    int
	CursorX  int
	CursorY  int
	Revealed int
	Flagged  int
	Layout   string // mine positions, empty before the first reveal
	Won      bool
	GameOver bool
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:     g.tick,
		Score:    g.score,
		CursorX:  g.cursor.X,
		CursorY:  g.cursor.Y,
		Revealed: g.board.Count(CellRevealed),
		Flagged:  g.board.Count(CellFlagged),
		Won:      g.won,
		GameOver: g.gameOver,
	}
	if g.board.Laid() {
		s.Layout = g.board.layout()
	}
	return s
}
