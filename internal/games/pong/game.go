// Package pong implements Pong against a CPU paddle. The player holds the
// left paddle; the first side to the winning score ends the match.
package pong

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

const (
	PaddleChar = '█'
	BallChar   = '●'
	NetChar    = '│'

	paddleOffset = 2    // columns between a paddle and its wall
	maxDeflect   = 0.75 // vertical speed per unit of speed at a paddle tip
	refRate      = 60.0 // config speeds are per frame at this rate
)

// Side identifies a paddle.
type Side int

const (
	SideNone Side = iota
	SidePlayer
	SideCPU
)

// Game implements Pong.
type Game struct {
	cfg     config.PongConfig
	runtime core.RuntimeConfig
	diff    *config.DifficultyManager
	rng     *rand.Rand
	tick    uint64

	// dt scales per-frame config speeds to the actual tick rate.
	dt float64

	width, height int
	paddleH       int
	playerY       float64 // top of the left paddle
	cpuY          float64 // top of the right paddle

	ballX, ballY   float64
	ballVX, ballVY float64
	serving        int // frames left before the ball moves

	playerPoints int
	cpuPoints    int
	winner       Side
	paused       bool
}

// New creates a pong game with the resolved config. A broken config file
// falls back to the defaults.
func New() *Game {
	cfg, _ := config.LoadPong("")
	return NewWithConfig(cfg)
}

// NewWithConfig creates a pong game with an explicit config.
func NewWithConfig(cfg config.PongConfig) *Game {
	return &Game{cfg: cfg, diff: config.NewDifficultyManager(cfg.Difficulty)}
}

func init() {
	registry.Register("pong", func() registry.Game { return New() })
}

// ID implements registry.Game.
func (g *Game) ID() string { return "pong" }

// Title implements registry.Game.
func (g *Game) Title() string { return "Pong" }

// Instructions implements registry.Describer.
func (g *Game) Instructions() []string {
	return []string{
		"Hold Up/Down (or W/S) to move the left paddle.",
		fmt.Sprintf("First to %d points wins the match.", g.cfg.Match.WinningPoints),
		fmt.Sprintf("Each point you win is worth %d.", g.cfg.Match.PointValue),
		"Hitting the ball off the paddle edge sends it at a steeper angle.",
	}
}

// Reset implements registry.Game.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.runtime = rt
	g.rng = rand.New(rand.NewSource(rt.Seed))
	g.tick = 0

	rate := float64(rt.TickRate)
	if rate <= 0 {
		rate = refRate
	}
	g.dt = refRate / rate

	g.width, g.height = rt.ScreenW, rt.ScreenH
	g.paddleH = core.Clamp(g.cfg.Paddle.Height, 2, max(2, g.height/3))
	mid := float64(g.height-g.paddleH) / 2
	g.playerY, g.cpuY = mid, mid

	g.playerPoints, g.cpuPoints = 0, 0
	g.winner = SideNone
	g.paused = false
	g.serve(SidePlayer)
}

// serve centres the ball and sends it toward receiver after the delay.
func (g *Game) serve(receiver Side) {
	g.ballX = float64(g.width) / 2
	g.ballY = float64(g.height) / 2
	speed := g.cfg.Ball.Speed * g.dt
	g.ballVX = speed
	if receiver == SidePlayer {
		g.ballVX = -speed
	}
	g.ballVY = speed * (g.rng.Float64() - 0.5)
	g.serving = max(1, int(float64(g.cfg.Ball.ServeDelay)/g.dt))
}

// Step implements registry.Game.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.winner != SideNone {
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	speed := g.cfg.Paddle.Speed * g.dt
	if in.IsHeld(core.ActionUp) {
		g.playerY -= speed
	}
	if in.IsHeld(core.ActionDown) {
		g.playerY += speed
	}
	g.playerY = g.clampPaddle(g.playerY)
	g.moveCPU()

	if g.serving > 0 {
		g.serving--
		return core.StepResult{State: g.State()}
	}
	g.moveBall()
	return core.StepResult{State: g.State()}
}

func (g *Game) clampPaddle(y float64) float64 {
	return core.ClampF(y, 0, float64(g.height-g.paddleH))
}

// moveCPU tracks the ball centre at a fraction of the player's speed.
func (g *Game) moveCPU() {
	base := g.cfg.Paddle.Speed * g.cfg.Paddle.CPUSpeed * g.dt
	speed := g.diff.Speed(base, g.playerPoints, int(g.tick))
	target := g.ballY - float64(g.paddleH)/2
	diff := target - g.cpuY
	if math.Abs(diff) <= speed {
		g.cpuY = target
	} else {
		g.cpuY += math.Copysign(speed, diff)
	}
	g.cpuY = g.clampPaddle(g.cpuY)
}

func (g *Game) moveBall() {
	g.ballX += g.ballVX
	g.ballY += g.ballVY

	bottom := float64(g.height - 1)
	if g.ballY < 0 {
		g.ballY = -g.ballY
		g.ballVY = -g.ballVY
	}
	if g.ballY > bottom {
		g.ballY = 2*bottom - g.ballY
		g.ballVY = -g.ballVY
	}

	leftX := float64(paddleOffset + 1)            // first column right of the player paddle
	rightX := float64(g.width - paddleOffset - 1) // the CPU paddle column

	// Each paddle is one column wide; the hit zone also covers one frame
	// of travel so a fast ball cannot skip it.
	reach := 1 + math.Abs(g.ballVX)
	if g.ballVX < 0 && g.ballX < leftX && g.ballX >= leftX-reach {
		if g.onPaddle(g.playerY) {
			g.ballX = leftX
			g.bounce(g.playerY)
		}
	}
	if g.ballVX > 0 && g.ballX >= rightX && g.ballX < rightX+reach {
		if g.onPaddle(g.cpuY) {
			g.ballX = rightX - 0.001
			g.bounce(g.cpuY)
		}
	}

	switch {
	case g.ballX < 0:
		g.point(SideCPU)
	case g.ballX >= float64(g.width):
		g.point(SidePlayer)
	}
}

func (g *Game) onPaddle(top float64) bool {
	return g.ballY >= top-0.5 && g.ballY < top+float64(g.paddleH)+0.5
}

// bounce reverses the ball, speeds it up and deflects it by where it
// struck the paddle: centre hits go straight, edge hits go steep.
func (g *Game) bounce(top float64) {
	offset := (g.ballY - (top + float64(g.paddleH)/2)) / (float64(g.paddleH) / 2)
	offset = core.ClampF(offset, -1, 1)

	speed := math.Abs(g.ballVX) * g.cfg.Ball.SpeedUp
	speed = math.Min(speed, g.cfg.Ball.MaxSpeed*g.dt)
	g.ballVX = math.Copysign(speed, -g.ballVX)
	g.ballVY = offset * speed * maxDeflect
}

func (g *Game) point(to Side) {
	switch to {
	case SidePlayer:
		g.playerPoints++
		if g.playerPoints >= g.cfg.Match.WinningPoints {
			g.winner = SidePlayer
			return
		}
		g.serve(SideCPU)
	case SideCPU:
		g.cpuPoints++
		if g.cpuPoints >= g.cfg.Match.WinningPoints {
			g.winner = SideCPU
			return
		}
		g.serve(SidePlayer)
	}
}

// Render implements registry.Game.
func (g *Game) Render(dst *core.Screen) {
	cx := dst.Width() / 2
	for y := 0; y < dst.Height(); y += 2 {
		dst.SetColor(cx, y, NetChar, core.ColorGray)
	}

	for i := 0; i < g.paddleH; i++ {
		dst.SetColor(paddleOffset, int(g.playerY)+i, PaddleChar, core.ColorBrightCyan)
		dst.SetColor(dst.Width()-paddleOffset-1, int(g.cpuY)+i, PaddleChar, core.ColorBrightMagenta)
	}

	if g.serving == 0 || (g.serving/10)%2 == 0 {
		dst.SetColor(int(g.ballX), int(g.ballY), BallChar, core.ColorBrightYellow)
	}

	dst.DrawTextColor(cx-6, 0, fmt.Sprintf("%2d", g.playerPoints), core.ColorBrightCyan)
	dst.DrawTextColor(cx+4, 0, fmt.Sprintf("%-2d", g.cpuPoints), core.ColorBrightMagenta)
	dst.DrawTextColor(1, 0, "YOU", core.ColorBrightCyan)
	dst.DrawTextColor(dst.Width()-4, 0, "CPU", core.ColorBrightMagenta)

	switch {
	case g.winner == SidePlayer:
		dst.DrawMessage([]string{"YOU WIN!", fmt.Sprintf("%d - %d", g.playerPoints, g.cpuPoints)}, core.ColorBrightGreen)
	case g.winner == SideCPU:
		dst.DrawMessage([]string{"CPU WINS", fmt.Sprintf("%d - %d", g.playerPoints, g.cpuPoints)}, core.ColorRed)
	case g.paused:
		dst.DrawMessage([]string{"PAUSED", "P to resume"}, core.ColorYellow)
	}
}

// State implements registry.Game.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.playerPoints * g.cfg.Match.PointValue,
		GameOver: g.winner != SideNone,
		Paused:   g.paused,
		Won:      g.winner == SidePlayer,
	}
}
