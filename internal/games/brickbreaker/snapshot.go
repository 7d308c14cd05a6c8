package brickbreaker

// Snapshot is the observable state of a game, for determinism tests.
type Snapshot struct {
	Tick     uint64
	Score    int
	Lives    int
	Bricks   int
	BallX    Fixed
	BallY    Fixed
	BallVX   Fixed
	BallVY   Fixed
	PaddleX  Fixed
	Stuck    bool
	GameOver bool
	Won      bool
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:     g.tick,
		Score:    g.score,
		Lives:    g.lives,
		Bricks:   g.left,
		BallX:    g.ball.X,
		BallY:    g.ball.Y,
		BallVX:   g.ball.VX,
		BallVY:   g.ball.VY,
		PaddleX:  g.paddle.X,
		Stuck:    g.ball.Stuck,
		GameOver: g.gameOver,
		Won:      g.won,
	}
}
