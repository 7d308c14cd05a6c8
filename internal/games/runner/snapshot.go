package runner

// Snapshot is the observable state of a run. Fractional values are scaled
// by 1000.
type Snapshot struct {
	Tick      uint64
	Score     int
	Coins     int
	Distance  int
	PlayerY   int
	Ducking   bool
	Shield    int
	Obstacles int
	Powerups  int
	GameOver  bool
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:      g.tick,
		Score:     g.score,
		Coins:     g.coins,
		Distance:  int(g.distance * 1000),
		PlayerY:   int(g.playerY * 1000),
		Ducking:   g.ducking,
		Shield:    g.shield,
		Obstacles: len(g.spawn.Obstacles()),
		Powerups:  len(g.spawn.Powerups()),
		GameOver:  g.gameOver,
	}
}
