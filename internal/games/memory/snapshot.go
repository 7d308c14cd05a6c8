package memory

import "fmt"

// Snapshot is the observable state of a run.
type Snapshot struct {
	Tick     uint64
	Score    int
	Level    int
	Lives    int
	Size     int
	Phase    Phase
	Pattern  string
	Entered  int
	CursorX  int
	CursorY  int
	GameOver bool
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:     g.tick,
		Score:    g.score,
		Level:    g.level,
		Lives:    g.lives,
		Size:     g.size,
		Phase:    g.phase,
		Pattern:  fmt.Sprint(g.pattern),
		Entered:  g.entered,
		CursorX:  g.cursor.X,
		CursorY:  g.cursor.Y,
		GameOver: g.gameOver,
	}
}
