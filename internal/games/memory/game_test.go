package memory

import (
	"testing"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

var testRT = core.RuntimeConfig{ScreenW: 80, ScreenH: 22, TickRate: 60, Seed: 31337}

func newGame() *Game {
	g := New()
	g.Reset(testRT)
	return g
}

func step(g *Game, actions ...core.Action) core.GameState {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in).State
}

// showTicks is how long the playback of the current level lasts.
func showTicks(g *Game) int {
	return testRT.Ticks(leadMS) + len(g.pattern)*testRT.Ticks(showMS)
}

func skipShow(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < showTicks(g); i++ {
		step(g)
	}
	if g.phase != PhaseInput {
		t.Fatalf("phase = %v after the playback", g.phase)
	}
}

func pick(g *Game, tile int) core.GameState {
	g.cursor = core.Point{X: tile % g.size, Y: tile / g.size}
	return step(g, core.ActionConfirm)
}

func wrongTile(g *Game) int {
	return (g.pattern[g.entered] + 1) % (g.size * g.size)
}

func TestGridAndPatternGrowth(t *testing.T) {
	cases := []struct{ level, size, length int }{
		{1, 3, 3},
		{3, 3, 5},
		{4, 4, 6},
		{7, 5, 9},
		{10, 6, 12},
		{40, MaxGrid, 42},
	}
	for _, c := range cases {
		if got := GridSize(c.level); got != c.size {
			t.Errorf("GridSize(%d) = %d, want %d", c.level, got, c.size)
		}
		if got := PatternLength(c.level); got != c.length {
			t.Errorf("PatternLength(%d) = %d, want %d", c.level, got, c.length)
		}
	}
}

func TestInitialState(t *testing.T) {
	g := newGame()
	s := g.Snapshot()
	if s.Level != 1 || s.Size != 3 || s.Lives != StartLives || s.Phase != PhaseShow {
		t.Errorf("initial = %+v", s)
	}
	if len(g.pattern) != 3 {
		t.Errorf("pattern length = %d", len(g.pattern))
	}
	for _, tile := range g.pattern {
		if tile < 0 || tile >= 9 {
			t.Errorf("tile %d off the grid", tile)
		}
	}
}

func TestPlaybackLightsThePattern(t *testing.T) {
	g := newGame()
	var seen []int
	prevLit := false
	for i := 0; i < showTicks(g)-1; i++ {
		step(g)
		lit, ok := g.Lit()
		if ok && !prevLit {
			seen = append(seen, lit)
		}
		prevLit = ok
	}
	if g.phase != PhaseShow {
		t.Fatalf("playback ended early")
	}
	if len(seen) != len(g.pattern) {
		t.Fatalf("saw %v, pattern %v", seen, g.pattern)
	}
	for i := range seen {
		if seen[i] != g.pattern[i] {
			t.Errorf("tile %d lit %d, want %d", i, seen[i], g.pattern[i])
		}
	}

	step(g)
	if g.phase != PhaseInput {
		t.Errorf("phase = %v, want input", g.phase)
	}
}

func TestInputIgnoredDuringPlayback(t *testing.T) {
	g := newGame()
	step(g, core.ActionConfirm)
	if g.entered != 0 || g.lives != StartLives {
		t.Error("a pick during playback was counted")
	}
}

func TestCorrectRepeatAdvances(t *testing.T) {
	g := newGame()
	skipShow(t, g)
	for _, tile := range g.pattern {
		pick(g, tile)
	}
	if g.score != LevelPoints || g.phase != PhaseResult || !g.passed {
		t.Fatalf("after repeating: score %d, phase %v", g.score, g.phase)
	}

	for i := 0; i < testRT.Ticks(resultMS); i++ {
		step(g)
	}
	if g.level != 2 || len(g.pattern) != 4 || g.phase != PhaseShow {
		t.Errorf("level %d, pattern %d, phase %v", g.level, len(g.pattern), g.phase)
	}

	skipShow(t, g)
	for _, tile := range g.pattern {
		pick(g, tile)
	}
	if g.score != LevelPoints+2*LevelPoints {
		t.Errorf("score = %d after level 2", g.score)
	}
}

func TestWrongTileReplaysLevel(t *testing.T) {
	g := newGame()
	pattern := g.Snapshot().Pattern
	skipShow(t, g)
	pick(g, g.pattern[0])
	if g.entered != 1 {
		t.Fatal("correct first tile not counted")
	}
	pick(g, wrongTile(g))
	if g.lives != StartLives-1 || g.phase != PhaseResult || g.passed {
		t.Fatalf("lives %d, phase %v", g.lives, g.phase)
	}

	for i := 0; i < testRT.Ticks(resultMS); i++ {
		step(g)
	}
	s := g.Snapshot()
	if s.Phase != PhaseShow || s.Level != 1 || s.Entered != 0 || s.Pattern != pattern {
		t.Errorf("after a mistake = %+v", s)
	}
}

func TestLivesRunOut(t *testing.T) {
	g := newGame()
	skipShow(t, g)
	for _, tile := range g.pattern {
		pick(g, tile)
	}
	for i := 0; i < testRT.Ticks(resultMS); i++ {
		step(g)
	}

	var st core.GameState
	for lost := 0; lost < StartLives; lost++ {
		skipShow(t, g)
		st = pick(g, wrongTile(g))
		for i := 0; i < testRT.Ticks(resultMS) && !st.GameOver; i++ {
			st = step(g)
		}
	}
	if !st.GameOver || g.lives != 0 {
		t.Fatalf("state %+v, lives %d", st, g.lives)
	}
	if st.Score != LevelPoints {
		t.Errorf("score = %d, want the points already earned", st.Score)
	}

	before := g.Snapshot()
	step(g, core.ActionConfirm, core.ActionLeft)
	if g.Snapshot() != before {
		t.Error("game changed after game over")
	}
}

func TestMouse(t *testing.T) {
	g := newGame()
	skipShow(t, g)
	r := g.tileRect(g.pattern[0])
	in := core.NewInputFrame()
	in.Click(core.Pointer{X: r.X + 1, Y: r.Y})
	g.Step(in)
	if g.entered != 1 {
		t.Error("clicking the right tile did not count")
	}

	in = core.NewInputFrame()
	in.Click(core.Pointer{X: r.Right(), Y: r.Y})
	g.Step(in)
	if g.entered != 1 || g.lives != StartLives {
		t.Error("a click in the gap between tiles was counted")
	}
}

func TestLayoutFits(t *testing.T) {
	for _, size := range []struct{ w, h int }{{80, 22}, {60, 16}, {40, 12}} {
		g := New()
		g.Reset(core.RuntimeConfig{ScreenW: size.w, ScreenH: size.h, TickRate: 60, Seed: 1})
		for _, level := range []int{1, 4, 10} {
			g.startLevel(level)
			last := g.tileRect(g.size*g.size - 1)
			if last.Right() > size.w || last.Bottom() > size.h {
				t.Errorf("%dx%d level %d: grid ends at %d,%d", size.w, size.h, level, last.Right(), last.Bottom())
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := newGame()
		skipShow(t, g)
		for _, tile := range g.pattern {
			pick(g, tile)
		}
		for i := 0; i < 200; i++ {
			step(g)
		}
		return g.Snapshot()
	}
	if a, b := run(), run(); a != b {
		t.Errorf("same seed diverged:\n%+v\n%+v", a, b)
	}
}

func TestPause(t *testing.T) {
	g := newGame()
	step(g, core.ActionPause)
	before := g.Snapshot()
	for i := 0; i < 100; i++ {
		step(g)
	}
	if g.Snapshot() != before {
		t.Error("paused game advanced")
	}
}

func TestRenderLitTile(t *testing.T) {
	g := newGame()
	for i := 0; i < testRT.Ticks(leadMS); i++ {
		step(g)
	}
	lit, ok := g.Lit()
	if !ok {
		t.Fatal("no tile lit after the lead-in")
	}
	scr := core.NewScreen(testRT.ScreenW, testRT.ScreenH)
	g.Render(scr)
	r := g.tileRect(lit)
	if cell := scr.GetCell(r.X, r.Y); cell.Rune != '█' || cell.Color != core.ColorBrightCyan {
		t.Errorf("lit tile drawn as %+v", cell)
	}
}
