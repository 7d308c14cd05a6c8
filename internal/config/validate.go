package config

import (
	"errors"
	"fmt"
)

// problems collects every rule a config breaks, so one error names them all.
type problems []error

func (p *problems) check(ok bool, format string, args ...any) {
	if !ok {
		*p = append(*p, fmt.Errorf(format, args...))
	}
}

// positive also rejects NaN.
func (p *problems) positive(name string, v float64) {
	p.check(v > 0, "%s must be > 0, got %v", name, v)
}

func (p *problems) atLeast(name string, v, lo int) {
	p.check(v >= lo, "%s must be >= %d, got %d", name, lo, v)
}

func (p *problems) fraction(name string, v float64) {
	p.check(v >= 0 && v <= 1, "%s must be within [0, 1], got %v", name, v)
}

func (p problems) err() error { return errors.Join(p...) }

// Validate reports values that would break the flappy simulation.
func (c FlappyConfig) Validate() error {
	var p problems
	p.check(c.Physics.Gravity >= 0, "physics.gravity must be >= 0, got %v", c.Physics.Gravity)
	p.check(c.Physics.FlapImpulse < 0, "physics.flap_impulse must be < 0, got %v", c.Physics.FlapImpulse)
	p.positive("physics.max_fall_speed", c.Physics.MaxFallSpeed)
	p.positive("physics.scroll_speed", c.Physics.ScrollSpeed)
	p.atLeast("pipes.width", c.Pipes.Width, 1)
	p.atLeast("pipes.spawn_frames", c.Pipes.SpawnFrames, 1)
	p.atLeast("pipes.min_gap", c.Pipes.MinGap, 1)
	p.atLeast("pipes.max_gap", c.Pipes.MaxGap, c.Pipes.MinGap)
	p.atLeast("pipes.margin", c.Pipes.Margin, 0)
	c.Player.validate(&p)
	c.Difficulty.validate(&p)
	return p.err()
}

// Validate reports values that would break the runner simulation or its
// score.
func (c RunnerConfig) Validate() error {
	var p problems
	p.positive("physics.gravity", c.Physics.Gravity)
	p.check(c.Physics.JumpImpulse < 0, "physics.jump_impulse must be < 0, got %v", c.Physics.JumpImpulse)
	p.positive("physics.base_speed", c.Physics.BaseSpeed)
	p.atLeast("spawns.min_spacing", c.Spawns.MinSpacing, 1)
	p.atLeast("spawns.max_spacing", c.Spawns.MaxSpacing, c.Spawns.MinSpacing)
	p.fraction("spawns.high_chance", c.Spawns.HighChance)
	p.atLeast("spawns.powerup_frames", c.Spawns.PowerupFrames, 1)
	p.fraction("spawns.shield_chance", c.Spawns.ShieldChance)
	p.atLeast("spawns.shield_duration", c.Spawns.ShieldDuration, 0)
	p.positive("scoring.distance_per_point", c.Scoring.DistancePerPoint)
	p.atLeast("scoring.coin_bonus", c.Scoring.CoinBonus, 0)
	c.Player.validate(&p)
	c.Difficulty.validate(&p)
	return p.err()
}

// Validate reports values that would break a pong match.
func (c PongConfig) Validate() error {
	var p problems
	p.atLeast("paddle.height", c.Paddle.Height, 1)
	p.positive("paddle.speed", c.Paddle.Speed)
	p.positive("paddle.cpu_speed", c.Paddle.CPUSpeed)
	p.positive("ball.speed", c.Ball.Speed)
	p.check(c.Ball.SpeedUp >= 1, "ball.speed_up must be >= 1, got %v", c.Ball.SpeedUp)
	p.check(c.Ball.MaxSpeed >= c.Ball.Speed, "ball.max_speed must be >= ball.speed, got %v", c.Ball.MaxSpeed)
	p.atLeast("ball.serve_delay", c.Ball.ServeDelay, 0)
	p.atLeast("match.winning_points", c.Match.WinningPoints, 1)
	p.atLeast("match.point_value", c.Match.PointValue, 0)
	c.Difficulty.validate(&p)
	return p.err()
}

func (b PlayerBox) validate(p *problems) {
	p.atLeast("player.x", b.X, 0)
	p.atLeast("player.width", b.Width, 1)
	p.atLeast("player.height", b.Height, 1)
}

func (d DifficultyConfig) validate(p *problems) {
	p.fraction("difficulty.initial_level", d.InitialLevel)
	switch d.Progression.Type {
	case "score", "time", "none":
	default:
		p.check(false, "difficulty.progression.type must be score, time or none, got %q", d.Progression.Type)
	}
	p.atLeast("difficulty.progression.max_at", d.Progression.MaxAt, 0)
	p.check(d.Scaling.SpeedMultiplier >= 0, "difficulty.scaling.speed_multiplier must be >= 0, got %v", d.Scaling.SpeedMultiplier)
	p.atLeast("difficulty.scaling.gap_reduction", d.Scaling.GapReduction, 0)
	p.atLeast("difficulty.scaling.spacing_reduction", d.Scaling.SpacingReduction, 0)
}
