package tetris

// Snapshot is the observable state of a game, for determinism tests.
type Snapshot struct {
	Tick     uint64
	Score    int
	Lines    int
	Level    int
	Piece    Kind
	Next     Kind
	PieceX   int
	PieceY   int
	Filled   int // settled cells on the board
	GameOver bool
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	filled := 0
	for y := range g.board {
		for _, c := range g.board[y] {
			if c >= 0 {
				filled++
			}
		}
	}
	return Snapshot{
		Tick:     g.tick,
		Score:    g.score,
		Lines:    g.lines,
		Level:    g.level,
		Piece:    g.current.kind,
		Next:     g.next,
		PieceX:   g.current.x,
		PieceY:   g.current.y,
		Filled:   filled,
		GameOver: g.gameOver,
	}
}
