package pong

import (
	"math"
	"testing"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
)

var testRT = core.RuntimeConfig{Seed: 99, ScreenW: 80, ScreenH: 22, TickRate: 60}

func newGame(t *testing.T) *Game {
	t.Helper()
	g := NewWithConfig(config.DefaultPongConfig())
	g.Reset(testRT)
	return g
}

func hold(g *Game, n int, actions ...core.Action) {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Hold(a)
	}
	for i := 0; i < n; i++ {
		g.Step(in)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := newGame(t)
		hold(g, 120, core.ActionUp)
		hold(g, 200)
		hold(g, 90, core.ActionDown)
		return g.Snapshot()
	}
	if a, b := run(), run(); a != b {
		t.Errorf("same seed diverged:\n%+v\n%+v", a, b)
	}
}

func TestServeDelay(t *testing.T) {
	g := newGame(t)
	x := g.ballX
	hold(g, g.cfg.Ball.ServeDelay-1)
	if g.ballX != x {
		t.Fatal("ball moved during the serve delay")
	}
	hold(g, 2)
	if g.ballX >= x {
		t.Errorf("first serve should travel toward the player: x %v -> %v", x, g.ballX)
	}
}

func TestPlayerPaddleHeld(t *testing.T) {
	g := newGame(t)
	start := g.playerY
	hold(g, 4, core.ActionUp)
	if want := start - 4*g.cfg.Paddle.Speed; math.Abs(g.playerY-want) > 1e-9 {
		t.Errorf("paddle y = %v, want %v", g.playerY, want)
	}
	hold(g, 1000, core.ActionUp)
	if g.playerY != 0 {
		t.Errorf("paddle escaped the top: %v", g.playerY)
	}
}

func TestCPUSpeedFraction(t *testing.T) {
	g := newGame(t)
	g.ballY = float64(g.height - 1)
	g.cpuY = 0
	hold(g, 1)
	want := g.cfg.Paddle.Speed * g.cfg.Paddle.CPUSpeed
	if math.Abs(g.cpuY-want) > 1e-9 {
		t.Errorf("cpu moved %v, want %v", g.cpuY, want)
	}
}

func TestDifficultyScalesCPUNotBall(t *testing.T) {
	cfg := config.DefaultPongConfig()
	cfg.Difficulty.InitialLevel = 1
	g := NewWithConfig(cfg)
	g.Reset(testRT)

	if got, want := math.Abs(g.ballVX), cfg.Ball.Speed; math.Abs(got-want) > 1e-9 {
		t.Errorf("serve speed = %v, want unscaled %v", got, want)
	}

	g.ballY = float64(g.height - 1)
	g.cpuY = 0
	hold(g, 1)
	want := cfg.Paddle.Speed * cfg.Paddle.CPUSpeed * (1 + cfg.Difficulty.Scaling.SpeedMultiplier)
	if math.Abs(g.cpuY-want) > 1e-9 {
		t.Errorf("cpu moved %v at level 1, want %v", g.cpuY, want)
	}
}

func TestPaddleBounce(t *testing.T) {
	g := newGame(t)
	g.serving = 0
	g.playerY = 8
	// Dead centre of the paddle.
	g.ballX, g.ballY = 3.2, 8+float64(g.paddleH)/2
	g.ballVX, g.ballVY = -0.4, 0

	hold(g, 1)
	if g.ballVX <= 0 {
		t.Fatalf("ball did not bounce: vx=%v", g.ballVX)
	}
	if want := 0.4 * g.cfg.Ball.SpeedUp; math.Abs(g.ballVX-want) > 1e-9 {
		t.Errorf("speed after hit = %v, want %v", g.ballVX, want)
	}
	if math.Abs(g.ballVY) > 1e-9 {
		t.Errorf("centre hit deflected: vy=%v", g.ballVY)
	}
}

func TestEdgeHitDeflects(t *testing.T) {
	g := newGame(t)
	g.serving = 0
	g.playerY = 8
	g.ballX, g.ballY = 3.2, 8.1
	g.ballVX, g.ballVY = -0.4, 0

	hold(g, 1)
	if g.ballVX <= 0 || g.ballVY >= 0 {
		t.Errorf("top edge hit should go up: vx=%v vy=%v", g.ballVX, g.ballVY)
	}
}

func TestMaxSpeed(t *testing.T) {
	g := newGame(t)
	g.serving = 0
	g.playerY = 8
	g.ballX, g.ballY = 3.5, 10
	g.ballVX = -g.cfg.Ball.MaxSpeed
	hold(g, 1)
	if g.ballVX > g.cfg.Ball.MaxSpeed+1e-9 {
		t.Errorf("ball exceeded max speed: %v", g.ballVX)
	}
}

func TestMissScoresForCPU(t *testing.T) {
	g := newGame(t)
	g.serving = 0
	g.playerY = 0
	g.ballX, g.ballY = 0.5, 20
	g.ballVX, g.ballVY = -0.6, 0

	hold(g, 1)
	if g.cpuPoints != 1 || g.playerPoints != 0 {
		t.Fatalf("points = %d-%d", g.playerPoints, g.cpuPoints)
	}
	if g.serving == 0 || g.ballVX >= 0 {
		t.Error("the player should receive the next serve")
	}
}

func TestScoreAndWin(t *testing.T) {
	g := newGame(t)
	for i := 0; i < 4; i++ {
		g.point(SidePlayer)
	}
	g.point(SideCPU)
	if s := g.State(); s.Score != 400 || s.GameOver {
		t.Fatalf("state = %+v", s)
	}
	g.point(SidePlayer)
	s := g.State()
	if !s.GameOver || !s.Won || s.Score != 500 {
		t.Errorf("state after 5th point = %+v", s)
	}

	before := g.Snapshot()
	hold(g, 100, core.ActionUp)
	if g.Snapshot() != before {
		t.Error("finished match kept running")
	}
}

func TestCPUWinIsLoss(t *testing.T) {
	g := newGame(t)
	g.point(SidePlayer)
	for i := 0; i < 5; i++ {
		g.point(SideCPU)
	}
	s := g.State()
	if !s.GameOver || s.Won || s.Score != 100 {
		t.Errorf("state = %+v", s)
	}
}

func TestTickRateScaling(t *testing.T) {
	g := NewWithConfig(config.DefaultPongConfig())
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 22, TickRate: 30})
	if math.Abs(math.Abs(g.ballVX)-2*g.cfg.Ball.Speed) > 1e-9 {
		t.Errorf("30 fps ball speed = %v, want double the per-frame config", g.ballVX)
	}
}

func TestRender(t *testing.T) {
	g := newGame(t)
	scr := core.NewScreen(testRT.ScreenW, testRT.ScreenH)
	g.Render(scr)
	if scr.Get(paddleOffset, int(g.playerY)) != PaddleChar {
		t.Error("player paddle not drawn")
	}
}
