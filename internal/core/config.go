package core

// RuntimeConfig is handed to Game.Reset when a session starts.
type RuntimeConfig struct {
	ScreenW  int   // screen width in cells
	ScreenH  int   // screen height in cells
	TickRate int   // frames per second
	Seed     int64 // RNG seed; zero means the platform picks one
}

// DefaultConfig returns an 80x24 screen at 60 frames per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
}

// Ticks converts a duration in milliseconds to a whole number of frames,
// never less than one.
func (c RuntimeConfig) Ticks(ms int) int {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return max(1, ms*rate/1000)
}

// GameState is what the platform can observe about a running game.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
	Won      bool
}

// StepResult is returned from Game.Step.
type StepResult struct {
	State GameState
}
