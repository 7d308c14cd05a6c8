// Package flappy implements a Flappy Bird style game: flap through the
// gaps between scrolling pipes.
package flappy

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

const (
	PlayerChar    = '▶'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'

	refRate = 60.0
)

// Game implements the flappy game logic.
type Game struct {
	cfg   config.FlappyConfig
	diff  *config.DifficultyManager
	rt    core.RuntimeConfig
	pipes *PipeManager
	tick  uint64
	dt    float64 // length of a frame in reference frames

	floor     int // ground row
	playerY   float64
	playerVel float64

	waiting  bool // hovering until the first flap
	score    int
	gameOver bool
	paused   bool
}

// New creates a flappy game with the resolved config.
func New() *Game {
	cfg, _ := config.LoadFlappy("")
	return NewWithConfig(cfg)
}

// NewWithConfig creates a flappy game with an explicit config.
func NewWithConfig(cfg config.FlappyConfig) *Game {
	return &Game{cfg: cfg, diff: config.NewDifficultyManager(cfg.Difficulty)}
}

func init() {
	registry.Register("flappy", func() registry.Game { return New() })
}

// ID implements registry.Game.
func (g *Game) ID() string { return "flappy" }

// Title implements registry.Game.
func (g *Game) Title() string { return "Flappy Pixel" }

// Instructions implements registry.Describer.
func (g *Game) Instructions() []string {
	return []string{
		"Space (or Up) flaps; gravity does the rest.",
		"Fly through the gaps between the pipes.",
		"Each pipe passed scores a point.",
		"Touching a pipe, the ceiling or the ground ends the run.",
	}
}

// Reset implements registry.Game.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.rt = rt
	g.tick = 0
	rate := float64(rt.TickRate)
	if rate <= 0 {
		rate = refRate
	}
	g.dt = refRate / rate

	g.floor = rt.ScreenH - 1
	g.pipes = NewPipeManager(rand.New(rand.NewSource(rt.Seed)), g.cfg.Pipes, g.diff, rt.ScreenW, g.floor)

	g.playerY = float64(g.floor) / 2
	g.playerVel = 0
	g.waiting = true
	g.score = 0
	g.gameOver = false
	g.paused = false
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

	flap := in.Has(core.ActionJump) || in.Has(core.ActionUp)
	if g.waiting {
		if !flap {
			return core.StepResult{State: g.State()}
		}
		g.waiting = false
	}
	g.tick++

	ph := g.cfg.Physics
	if flap {
		g.playerVel = ph.FlapImpulse
	}
	g.playerVel = min(g.playerVel+ph.Gravity*g.dt, ph.MaxFallSpeed)
	g.playerY += g.playerVel * g.dt

	speed := g.diff.Speed(ph.ScrollSpeed, g.score, int(g.tick))
	g.score += g.pipes.Update(speed, g.dt, g.cfg.Player.X, g.score, int(g.tick))

	switch {
	case g.playerY < 0:
		g.playerY = 0
		g.gameOver = true
	case g.playerY+float64(g.cfg.Player.Height) > float64(g.floor):
		g.playerY = float64(g.floor - g.cfg.Player.Height)
		g.gameOver = true
	case g.pipes.Hits(g.hitbox()):
		g.gameOver = true
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) hitbox() core.Box {
	p := g.cfg.Player
	return core.Box{X: float64(p.X), Y: g.playerY, W: float64(p.Width), H: float64(p.Height)}
}

// Render implements registry.Game.
func (g *Game) Render(dst *core.Screen) {
	for x := 0; x < dst.Width(); x++ {
		dst.SetColor(x, g.floor, GroundChar, core.ColorOrange)
	}

	w := g.cfg.Pipes.Width
	for _, p := range g.pipes.Pipes() {
		x0 := int(p.X)
		bottom := p.GapY + p.GapH
		for y := 0; y < g.floor; y++ {
			var ch rune
			switch {
			case y == p.GapY-1:
				ch = PipeCapTop
			case y == bottom:
				ch = PipeCapBottom
			case y < p.GapY || y > bottom:
				ch = PipeChar
			default:
				continue
			}
			for dx := 0; dx < w; dx++ {
				dst.SetColor(x0+dx, y, ch, core.ColorGreen)
			}
		}
	}

	pl := g.cfg.Player
	py := int(g.playerY)
	for dy := 0; dy < pl.Height; dy++ {
		for dx := 0; dx < pl.Width; dx++ {
			ch := '●'
			if dx == pl.Width-1 && dy == 0 {
				ch = PlayerChar
			}
			dst.SetColor(pl.X+dx, py+dy, ch, core.ColorBrightYellow)
		}
	}

	dst.DrawTextColor(2, 0, fmt.Sprintf(" Score: %d ", g.score), core.ColorWhite)

	switch {
	case g.gameOver:
		dst.DrawMessage([]string{"GAME OVER", fmt.Sprintf("Pipes: %d", g.score)}, core.ColorRed)
	case g.paused:
		dst.DrawMessage([]string{"PAUSED", "P to resume"}, core.ColorYellow)
	case g.waiting:
		dst.DrawTextCentered(g.floor/2+3, "SPACE to flap", core.ColorGray)
	}
}

// State implements registry.Game.
func (g *Game) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.gameOver, Paused: g.paused}
}
