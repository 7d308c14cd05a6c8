package config

import "embed"

// defaultFiles holds the YAML shipped inside the binary, one file per
// game id.
//
//go:embed defaults/*.yaml
var defaultFiles embed.FS

// DefaultFlappyConfig is used when no YAML can be read at all.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Physics: FlappyPhysics{
			Gravity:      0.025,
			FlapImpulse:  -0.42,
			MaxFallSpeed: 0.8,
			ScrollSpeed:  0.5,
		},
		Pipes: FlappyPipes{
			Width:       4,
			SpawnFrames: 90,
			MinGap:      7,
			MaxGap:      10,
			Margin:      2,
		},
		Player: PlayerBox{X: 10, Width: 2, Height: 1},
		Difficulty: DifficultyConfig{
			Enabled:     true,
			Progression: ProgressionConfig{Type: "score", MaxAt: 40},
			Scaling: ScalingConfig{
				SpeedMultiplier:  0.8,
				GapReduction:     3,
				SpacingReduction: 20,
			},
		},
	}
}

// DefaultRunnerConfig is used when no YAML can be read at all.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Physics: RunnerPhysics{
			Gravity:     0.05,
			JumpImpulse: -0.75,
			BaseSpeed:   0.5,
		},
		Spawns: RunnerSpawns{
			MinSpacing:     30,
			MaxSpacing:     60,
			HighChance:     0.3,
			PowerupFrames:  240,
			ShieldChance:   0.3,
			ShieldDuration: 300,
		},
		Player:  PlayerBox{X: 8, Width: 2, Height: 2},
		Scoring: RunnerScoring{DistancePerPoint: 2, CoinBonus: 50},
		Difficulty: DifficultyConfig{
			Enabled:     true,
			Progression: ProgressionConfig{Type: "time", MaxAt: 3600},
			Scaling: ScalingConfig{
				SpeedMultiplier:  1.0,
				SpacingReduction: 10,
			},
		},
	}
}

// DefaultPongConfig is used when no YAML can be read at all.
func DefaultPongConfig() PongConfig {
	return PongConfig{
		Paddle: PongPaddle{Height: 5, Speed: 0.5, CPUSpeed: 0.7},
		Ball: PongBall{
			Speed:      0.4,
			SpeedUp:    1.05,
			MaxSpeed:   1.2,
			ServeDelay: 45,
		},
		Match: PongMatch{WinningPoints: 5, PointValue: 100},
		Difficulty: DifficultyConfig{
			Enabled:     true,
			Progression: ProgressionConfig{Type: "none"},
			Scaling:     ScalingConfig{SpeedMultiplier: 0.5},
		},
	}
}
