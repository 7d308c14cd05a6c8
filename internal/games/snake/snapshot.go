package snake

// Snapshot is the observable state of a game, for determinism tests.
type Snapshot struct {
	Tick     uint64
	Score    int
	Length   int
	HeadX    int
	HeadY    int
	Dir      Direction
	FoodX    int
	FoodY    int
	MoveMS   int
	GameOver bool
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	head := g.snake[0]
	return Snapshot{
		Tick:     g.tick,
		Score:    g.score,
		Length:   len(g.snake),
		HeadX:    head.X,
		HeadY:    head.Y,
		Dir:      g.dir,
		FoodX:    g.food.X,
		FoodY:    g.food.Y,
		MoveMS:   g.moveMS,
		GameOver: g.gameOver,
	}
}
