package pong

// Snapshot is the observable state of a match. Velocities are scaled by
// 1000 so snapshots compare exactly.
type Snapshot struct {
	Tick      uint64
	BallX     int
	BallY     int
	BallVX    int
	BallVY    int
	PlayerY   int
	CPUY      int
	PlayerPts int
	CPUPts    int
	Winner    Side
	Serving   bool
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:      g.tick,
		BallX:     int(g.ballX),
		BallY:     int(g.ballY),
		BallVX:    int(g.ballVX * 1000),
		BallVY:    int(g.ballVY * 1000),
		PlayerY:   int(g.playerY),
		CPUY:      int(g.cpuY),
		PlayerPts: g.playerPoints,
		CPUPts:    g.cpuPoints,
		Winner:    g.winner,
		Serving:   g.serving > 0,
	}
}
