// Package config loads per-game tuning from YAML, scales it with a
// difficulty curve, and reads process settings from the environment.
package config

// FlappyConfig tunes the flappy game.
type FlappyConfig struct {
	Physics    FlappyPhysics    `yaml:"physics"`
	Pipes      FlappyPipes      `yaml:"pipes"`
	Player     PlayerBox        `yaml:"player"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FlappyPhysics is per-frame motion of the bird and the pipes.
type FlappyPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	FlapImpulse  float64 `yaml:"flap_impulse"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	ScrollSpeed  float64 `yaml:"scroll_speed"`
}

// FlappyPipes controls pipe spawning.
type FlappyPipes struct {
	Width       int `yaml:"width"`
	SpawnFrames int `yaml:"spawn_frames"`
	MinGap      int `yaml:"min_gap"`
	MaxGap      int `yaml:"max_gap"`
	Margin      int `yaml:"margin"`
}

// PlayerBox is a player hitbox at a fixed column.
type PlayerBox struct {
	X      int `yaml:"x"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// RunnerConfig tunes the endless runner.
type RunnerConfig struct {
	Physics    RunnerPhysics    `yaml:"physics"`
	Spawns     RunnerSpawns     `yaml:"spawns"`
	Player     PlayerBox        `yaml:"player"`
	Scoring    RunnerScoring    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RunnerPhysics is per-frame motion of the runner.
type RunnerPhysics struct {
	Gravity     float64 `yaml:"gravity"`
	JumpImpulse float64 `yaml:"jump_impulse"`
	BaseSpeed   float64 `yaml:"base_speed"`
}

// RunnerSpawns controls obstacle and powerup frequency, in columns and
// frames.
type RunnerSpawns struct {
	MinSpacing     int     `yaml:"min_spacing"`
	MaxSpacing     int     `yaml:"max_spacing"`
	HighChance     float64 `yaml:"high_chance"`
	PowerupFrames  int     `yaml:"powerup_frames"`
	ShieldChance   float64 `yaml:"shield_chance"`
	ShieldDuration int     `yaml:"shield_duration"`
}

// RunnerScoring maps distance and pickups to points.
type RunnerScoring struct {
	DistancePerPoint float64 `yaml:"distance_per_point"`
	CoinBonus        int     `yaml:"coin_bonus"`
}

// PongConfig tunes pong.
type PongConfig struct {
	Paddle     PongPaddle       `yaml:"paddle"`
	Ball       PongBall         `yaml:"ball"`
	Match      PongMatch        `yaml:"match"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PongPaddle sizes and speeds.
type PongPaddle struct {
	Height   int     `yaml:"height"`
	Speed    float64 `yaml:"speed"`
	CPUSpeed float64 `yaml:"cpu_speed"` // fraction of Speed the CPU moves at
}

// PongBall speeds.
type PongBall struct {
	Speed      float64 `yaml:"speed"`
	SpeedUp    float64 `yaml:"speed_up"`
	MaxSpeed   float64 `yaml:"max_speed"`
	ServeDelay int     `yaml:"serve_delay"` // frames
}

// PongMatch is the scoring rule.
type PongMatch struct {
	WinningPoints int `yaml:"winning_points"`
	PointValue    int `yaml:"point_value"`
}

// DifficultyConfig describes how a game ramps up.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0 easy .. 1 hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig says what drives the level up.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time" or "none"
	MaxAt int    `yaml:"max_at"` // score or frames at which the level reaches 1
}

// ScalingConfig is the size of each effect at level 1.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`
	GapReduction     int     `yaml:"gap_reduction"`
	SpacingReduction int     `yaml:"spacing_reduction"`
}

// DifficultyPreset is a named starting difficulty.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	}
	return "", false
}

// Apply adjusts d for preset. Fixed turns progression off and keeps the
// configured initial level.
func (p DifficultyPreset) Apply(d *DifficultyConfig) {
	switch p {
	case DifficultyFixed:
		d.Enabled = false
	case DifficultyEasy:
		d.Enabled, d.InitialLevel = true, 0
	case DifficultyNormal:
		d.Enabled, d.InitialLevel = true, 0.3
	case DifficultyHard:
		d.Enabled, d.InitialLevel = true, 0.7
	}
}
