// Package brickbreaker implements a brick breaker: keep the ball in play
// with the paddle and clear the wall of bricks.
package brickbreaker

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

const (
	Rows        = 6
	Cols        = 8
	BrickPoints = 10
	ClearBonus  = 100
	StartLives  = 3

	brickTop    = 3   // screen row of the first brick row
	ballSpeed   = 450 // fixed units per frame at 60 fps
	paddleSpeed = 900 // fixed units per frame at 60 fps
	strongHits  = 2
	maxBrickW   = 8
	minBrickW   = 2
	refRate     = 60

	PaddleChar = '▀'
	BallChar   = '●'
)

var rowColors = [Rows]core.Color{
	core.ColorBrightRed,
	core.ColorOrange,
	core.ColorBrightYellow,
	core.ColorBrightGreen,
	core.ColorBrightCyan,
	core.ColorBrightMagenta,
}

// Brick is one cell of the wall. Hits counts what is left to destroy it.
type Brick struct {
	Hits int
}

// Alive reports whether the brick is still standing.
func (b Brick) Alive() bool { return b.Hits > 0 }

// Game is one brick breaker run.
type Game struct {
	cfg  core.RuntimeConfig
	rng  *rand.Rand
	tick uint64

	width, height int
	brickW        int
	brickLeft     int // screen column of the first brick
	speed         Fixed
	paddleStep    Fixed

	bricks [Rows][Cols]Brick
	left   int // bricks still standing
	paddle Paddle
	ball   Ball

	score    int
	lives    int
	gameOver bool
	won      bool
	paused   bool
}

// New creates a brick breaker game. Call Reset before use.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("brickbreaker", func() registry.Game { return New() })
}

// ID implements registry.Game.
func (g *Game) ID() string { return "brickbreaker" }

// Title implements registry.Game.
func (g *Game) Title() string { return "Brick Breaker" }

// Instructions implements registry.Describer.
func (g *Game) Instructions() []string {
	return []string{
		"Hold Left/Right (or A/D) to move the paddle.",
		"Space launches the ball.",
		fmt.Sprintf("Each brick is worth %d; the top row takes two hits.", BrickPoints),
		fmt.Sprintf("Clear the wall for a %d bonus. You have %d lives.", ClearBonus, StartLives),
	}
}

// Reset implements registry.Game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0

	rate := cfg.TickRate
	if rate <= 0 {
		rate = refRate
	}
	g.speed = Fixed(ballSpeed * refRate / rate)
	g.paddleStep = Fixed(paddleSpeed * refRate / rate)

	g.width, g.height = cfg.ScreenW, cfg.ScreenH
	inner := g.width - 2
	g.brickW = core.Clamp(inner/Cols, minBrickW, maxBrickW)
	g.brickLeft = 1 + max(0, (inner-Cols*g.brickW)/2)

	g.left = 0
	for r := range g.bricks {
		for c := range g.bricks[r] {
			hits := 1
			if r == 0 {
				hits = strongHits
			}
			g.bricks[r][c] = Brick{Hits: hits}
			g.left++
		}
	}

	pw := core.Clamp(g.width/8, 5, 12)
	g.paddle = Paddle{X: ToFixed((g.width - pw) / 2), Y: g.height - 2, Width: pw}
	g.ball = Ball{Stuck: true}
	g.followPaddle()

	g.score = 0
	g.lives = StartLives
	g.gameOver = false
	g.won = false
	g.paused = false
}

func (g *Game) followPaddle() {
	g.ball.X = g.paddle.Center()
	g.ball.Y = ToFixed(g.paddle.Y) - 1
	g.ball.VX, g.ball.VY = 0, 0
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

	if in.IsHeld(core.ActionLeft) {
		g.paddle.X -= g.paddleStep
	}
	if in.IsHeld(core.ActionRight) {
		g.paddle.X += g.paddleStep
	}
	lo, hi := ToFixed(1), ToFixed(g.width-1-g.paddle.Width)
	g.paddle.X = min(max(g.paddle.X, lo), max(lo, hi))

	if g.ball.Stuck {
		g.followPaddle()
		if in.Has(core.ActionJump) {
			g.launch()
		}
		return core.StepResult{State: g.State()}
	}

	g.moveBall()
	return core.StepResult{State: g.State()}
}

func (g *Game) launch() {
	g.ball.Stuck = false
	g.ball.VX = g.speed / 2
	if g.rng.Intn(2) == 0 {
		g.ball.VX = -g.ball.VX
	}
	g.ball.VY = -g.speed
}

// moveBall advances each axis separately so a brick hit reflects only
// the axis that entered it.
func (g *Game) moveBall() {
	b := &g.ball

	b.X += b.VX
	leftWall, rightWall := ToFixed(1), ToFixed(g.width-1)
	if b.X < leftWall {
		b.X = 2*leftWall - b.X
		b.VX = -b.VX
	} else if b.X >= rightWall {
		b.X = 2*rightWall - b.X - 1
		b.VX = -b.VX
	}
	if g.hitBrickAt(b.X.Cell(), b.Y.Cell()) {
		b.X -= b.VX
		b.VX = -b.VX
	}

	b.Y += b.VY
	top := ToFixed(2)
	if b.Y < top {
		b.Y = 2*top - b.Y
		b.VY = -b.VY
	}
	if g.hitBrickAt(b.X.Cell(), b.Y.Cell()) {
		b.Y -= b.VY
		b.VY = -b.VY
	}
	if g.gameOver {
		return
	}

	if b.VY > 0 && b.Y.Cell() == g.paddle.Y && b.X >= g.paddle.Left() && b.X < g.paddle.Right() {
		paddleBounce(b, g.paddle, g.speed)
	}

	if b.Y >= ToFixed(g.height) {
		g.miss()
	}
}

// hitBrickAt damages the brick covering the cell, if any.
func (g *Game) hitBrickAt(x, y int) bool {
	row := y - brickTop
	if row < 0 || row >= Rows || x < g.brickLeft {
		return false
	}
	col := (x - g.brickLeft) / g.brickW
	if col >= Cols {
		return false
	}
	br := &g.bricks[row][col]
	if !br.Alive() {
		return false
	}

	br.Hits--
	if !br.Alive() {
		g.score += BrickPoints
		g.left--
		if g.left == 0 {
			g.score += ClearBonus
			g.won = true
			g.gameOver = true
		}
	}
	return true
}

func (g *Game) miss() {
	g.lives--
	if g.lives <= 0 {
		g.lives = 0
		g.gameOver = true
		return
	}
	g.ball.Stuck = true
	g.followPaddle()
}

// Render implements registry.Game.
func (g *Game) Render(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()

	hud := fmt.Sprintf(" Score: %d   Lives: %s", g.score, strings.Repeat("♥", g.lives))
	dst.DrawTextColor(0, 0, hud, core.ColorWhite)

	for x := 0; x < w; x++ {
		dst.SetColor(x, 1, '─', core.ColorBlue)
	}
	dst.SetColor(0, 1, '┌', core.ColorBlue)
	dst.SetColor(w-1, 1, '┐', core.ColorBlue)
	for y := 2; y < h; y++ {
		dst.SetColor(0, y, '│', core.ColorBlue)
		dst.SetColor(w-1, y, '│', core.ColorBlue)
	}

	for r := range g.bricks {
		for c, br := range g.bricks[r] {
			if !br.Alive() {
				continue
			}
			glyph := '█'
			if r == 0 && br.Hits < strongHits {
				glyph = '▒'
			}
			x0 := g.brickLeft + c*g.brickW
			for i := 0; i < g.brickW; i++ {
				ch := glyph
				if i == g.brickW-1 && g.brickW > minBrickW {
					ch = ' '
				}
				dst.SetColor(x0+i, brickTop+r, ch, rowColors[r])
			}
		}
	}

	px := g.paddle.X.Cell()
	for i := 0; i < g.paddle.Width; i++ {
		dst.SetColor(px+i, g.paddle.Y, PaddleChar, core.ColorBrightCyan)
	}
	if !g.gameOver {
		dst.SetColor(g.ball.X.Cell(), g.ball.Y.Cell(), BallChar, core.ColorWhite)
	}

	switch {
	case g.won:
		dst.DrawMessage([]string{"WALL CLEARED!", fmt.Sprintf("Score: %d", g.score)}, core.ColorBrightGreen)
	case g.gameOver:
		dst.DrawMessage([]string{"GAME OVER", fmt.Sprintf("Score: %d", g.score)}, core.ColorRed)
	case g.paused:
		dst.DrawMessage([]string{"PAUSED", "P to resume"}, core.ColorYellow)
	case g.ball.Stuck:
		dst.DrawTextCentered(g.paddle.Y-3, "SPACE to launch", core.ColorGray)
	}
}

// State implements registry.Game.
func (g *Game) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.gameOver, Paused: g.paused, Won: g.won}
}
