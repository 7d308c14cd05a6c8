// Package runner implements an endless runner: jump the low obstacles,
// duck the high ones and grab pickups while the track speeds up.
package runner

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

const (
	PlayerChar = '█'
	GroundChar = '▔'
	LowChar    = '▲'
	HighChar   = '▬'
	CoinChar   = '$'
	ShieldChar = '◆'

	refRate = 60.0
)

// Game implements the runner.
type Game struct {
	cfg   config.RunnerConfig
	diff  *config.DifficultyManager
	spawn *Spawner
	tick  uint64
	dt    float64

	floor    int     // ground row; the player's feet rest on it
	playerY  float64 // top of the standing player
	velocity float64
	ducking  bool

	distance float64
	coins    int
	shield   int // frames of shield left
	score    int
	gameOver bool
	paused   bool
}

// New creates a runner with the resolved config.
func New() *Game {
	cfg, _ := config.LoadRunner("")
	return NewWithConfig(cfg)
}

// NewWithConfig creates a runner with an explicit config.
func NewWithConfig(cfg config.RunnerConfig) *Game {
	return &Game{cfg: cfg, diff: config.NewDifficultyManager(cfg.Difficulty)}
}

func init() {
	registry.Register("runner", func() registry.Game { return New() })
}

// ID implements registry.Game.
func (g *Game) ID() string { return "runner" }

// Title implements registry.Game.
func (g *Game) Title() string { return "Endless Runner" }

// Instructions implements registry.Describer.
func (g *Game) Instructions() []string {
	return []string{
		"Space or Up jumps over " + string(LowChar) + " obstacles.",
		"Hold Down to duck under " + string(HighChar) + " bars.",
		fmt.Sprintf("%c coins are worth %d; a %c shield absorbs one hit.", CoinChar, g.cfg.Scoring.CoinBonus, ShieldChar),
		"The track keeps getting faster.",
	}
}

// Reset implements registry.Game.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.tick = 0
	rate := float64(rt.TickRate)
	if rate <= 0 {
		rate = refRate
	}
	g.dt = refRate / rate

	g.floor = rt.ScreenH - 1
	g.spawn = NewSpawner(rand.New(rand.NewSource(rt.Seed)), g.cfg.Spawns, g.diff, rt.ScreenW, g.floor)

	g.playerY = float64(g.floor - g.cfg.Player.Height)
	g.velocity = 0
	g.ducking = false
	g.distance = 0
	g.coins = 0
	g.shield = 0
	g.score = 0
	g.gameOver = false
	g.paused = false
}

func (g *Game) groundY() float64 {
	return float64(g.floor - g.cfg.Player.Height)
}

func (g *Game) onGround() bool {
	return g.playerY >= g.groundY()
}

// Speed returns the current track speed in cells per reference frame.
func (g *Game) Speed() float64 {
	return g.diff.Speed(g.cfg.Physics.BaseSpeed, g.score, int(g.tick))
}

// Step implements registry.Game.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	ph := g.cfg.Physics
	g.ducking = g.onGround() && in.IsHeld(core.ActionDown)
	if g.onGround() && !g.ducking && (in.Has(core.ActionJump) || in.Has(core.ActionUp)) {
		g.velocity = ph.JumpImpulse
	}
	if !g.onGround() || g.velocity < 0 {
		g.velocity += ph.Gravity * g.dt
		g.playerY += g.velocity * g.dt
		if g.playerY >= g.groundY() {
			g.playerY = g.groundY()
			g.velocity = 0
		}
	}

	dist := g.Speed() * g.dt
	g.distance += dist
	g.spawn.Update(dist, g.dt, g.score, int(g.tick))

	if g.shield > 0 {
		g.shield = max(0, g.shield-1)
	}

	box := g.hitbox()
	for _, kind := range g.spawn.Collect(box) {
		switch kind {
		case PowerupCoin:
			g.coins++
		case PowerupShield:
			g.shield = max(1, int(float64(g.cfg.Spawns.ShieldDuration)/g.dt))
		}
	}

	if i := g.spawn.Collide(box); i >= 0 {
		if g.shield > 0 {
			g.shield = 0
			g.spawn.Remove(i)
		} else {
			g.gameOver = true
		}
	}

	g.score = int(g.distance/g.cfg.Scoring.DistancePerPoint) + g.coins*g.cfg.Scoring.CoinBonus
	return core.StepResult{State: g.State()}
}

func (g *Game) hitbox() core.Box {
	p := g.cfg.Player
	if g.ducking {
		return core.Box{X: float64(p.X), Y: float64(g.floor - 1), W: float64(p.Width), H: 1}
	}
	return core.Box{X: float64(p.X), Y: g.playerY, W: float64(p.Width), H: float64(p.Height)}
}

// Render implements registry.Game.
func (g *Game) Render(dst *core.Screen) {
	for x := 0; x < dst.Width(); x++ {
		dst.SetColor(x, g.floor, GroundChar, core.ColorOrange)
	}

	for _, o := range g.spawn.Obstacles() {
		b := o.Box(g.floor)
		ch, c := LowChar, core.ColorBrightRed
		if o.Kind == ObstacleHigh {
			ch, c = HighChar, core.ColorMagenta
		}
		for y := int(b.Y); y < int(b.Y+b.H); y++ {
			for x := 0; x < o.Width; x++ {
				dst.SetColor(int(o.X)+x, y, ch, c)
			}
		}
	}

	for _, p := range g.spawn.Powerups() {
		if p.Kind == PowerupShield {
			dst.SetColor(int(p.X), p.Y, ShieldChar, core.ColorBrightCyan)
		} else {
			dst.SetColor(int(p.X), p.Y, CoinChar, core.ColorBrightYellow)
		}
	}

	color := core.ColorBrightGreen
	if g.shield > 0 {
		color = core.ColorBrightCyan
	}
	b := g.hitbox()
	for y := int(b.Y); y < int(b.Y+b.H); y++ {
		for x := 0; x < g.cfg.Player.Width; x++ {
			dst.SetColor(g.cfg.Player.X+x, y, PlayerChar, color)
		}
	}

	hud := fmt.Sprintf(" Score: %d  Speed: %.1f", g.score, g.Speed())
	if g.shield > 0 {
		hud += "  SHIELD"
	}
	dst.DrawTextColor(1, 0, hud, core.ColorWhite)

	switch {
	case g.gameOver:
		dst.DrawMessage([]string{"GAME OVER", fmt.Sprintf("Score: %d", g.score), fmt.Sprintf("Coins: %d", g.coins)}, core.ColorRed)
	case g.paused:
		dst.DrawMessage([]string{"PAUSED", "P to resume"}, core.ColorYellow)
	}
}

// State implements registry.Game.
func (g *Game) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.gameOver, Paused: g.paused}
}
