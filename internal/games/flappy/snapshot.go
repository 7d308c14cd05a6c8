package flappy

// Snapshot is the observable state of a run.
type Snapshot struct {
	Tick     uint64
	Score    int
	PlayerY  int // scaled by 1000
	Pipes    int
	Waiting  bool
	GameOver bool
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:     g.tick,
		Score:    g.score,
		PlayerY:  int(g.playerY * 1000),
		Pipes:    len(g.pipes.Pipes()),
		Waiting:  g.waiting,
		GameOver: g.gameOver,
	}
}
