package tetris

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

var testCfg = core.RuntimeConfig{Seed: 7, ScreenW: 80, ScreenH: 22, TickRate: 60}

func press(g *Game, actions ...core.Action) {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	g.Step(in)
}

func idle(g *Game, n int) {
	in := core.NewInputFrame()
	for i := 0; i < n; i++ {
		g.Step(in)
	}
}

func TestRotateClockwise(t *testing.T) {
	got := shapes[KindJ].Rotate()
	want := parse("##", "#.", "#.")
	if len(got) != len(want) {
		t.Fatalf("rotated height = %d, want %d", len(got), len(want))
	}
	for y := range want {
		for x := range want[y] {
			if got[y][x] != want[y][x] {
				t.Fatalf("rotated J mismatch at (%d,%d)", x, y)
			}
		}
	}

	s := shapes[KindT]
	for i := 0; i < 4; i++ {
		s = s.Rotate()
	}
	for y := range s {
		for x := range s[y] {
			if s[y][x] != shapes[KindT][y][x] {
				t.Fatal("four rotations should be the identity")
			}
		}
	}
}

func TestBagDealsEachPieceOncePerRound(t *testing.T) {
	b := newBag(rand.New(rand.NewSource(3)))
	for round := 0; round < 3; round++ {
		seen := make(map[Kind]bool)
		for i := 0; i < int(kindCount); i++ {
			seen[b.next()] = true
		}
		if len(seen) != int(kindCount) {
			t.Errorf("round %d dealt %d distinct pieces", round, len(seen))
		}
	}
}

func TestSpawnPosition(t *testing.T) {
	g := New()
	g.Reset(testCfg)
	w := g.current.shape.Width()
	if g.current.x != (BoardW-w)/2 || g.current.y != 0 {
		t.Errorf("spawn at (%d,%d)", g.current.x, g.current.y)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := New()
		g.Reset(testCfg)
		for i := 0; i < 500 && !g.gameOver; i++ {
			switch i % 7 {
			case 0:
				press(g, core.ActionLeft)
			case 3:
				press(g, core.ActionUp)
			case 5:
				press(g, core.ActionJump)
			default:
				idle(g, 1)
			}
		}
		return g.Snapshot()
	}
	if a, b := run(), run(); a != b {
		t.Errorf("same seed diverged:\n%+v\n%+v", a, b)
	}
}

func TestGravity(t *testing.T) {
	g := New()
	g.Reset(testCfg)
	interval := testCfg.Ticks(g.GravityMS())

	idle(g, interval-1)
	if g.current.y != 0 {
		t.Fatalf("piece fell early: y=%d", g.current.y)
	}
	idle(g, 1)
	if g.current.y != 1 {
		t.Errorf("y after one interval = %d, want 1", g.current.y)
	}
}

func TestGravityInterval(t *testing.T) {
	g := New()
	g.Reset(testCfg)
	cases := []struct{ level, want int }{
		{1, 800}, {2, 750}, {10, 350}, {15, 100}, {30, 100},
	}
	for _, c := range cases {
		g.level = c.level
		if got := g.GravityMS(); got != c.want {
			t.Errorf("level %d: gravity = %d, want %d", c.level, got, c.want)
		}
	}
}

func TestMoveBlockedByWalls(t *testing.T) {
	g := New()
	g.Reset(testCfg)
	for i := 0; i < BoardW; i++ {
		press(g, core.ActionLeft)
	}
	if g.current.x != 0 {
		t.Errorf("x after pushing left = %d, want 0", g.current.x)
	}
	for i := 0; i < BoardW; i++ {
		press(g, core.ActionRight)
	}
	if g.current.x+g.current.shape.Width() != BoardW {
		t.Errorf("piece did not stop at the right wall: x=%d", g.current.x)
	}
}

func TestRotationWallKick(t *testing.T) {
	g := New()
	g.Reset(testCfg)
	// A vertical I near the right wall must kick left to turn horizontal.
	g.current = piece{kind: KindI, shape: shapes[KindI].Rotate(), x: BoardW - 2, y: 5}
	press(g, core.ActionUp)
	if g.current.shape.Width() != 4 {
		t.Fatal("rotation at the wall was rejected")
	}
	if g.current.x+4 > BoardW {
		t.Errorf("kicked piece is outside the well: x=%d", g.current.x)
	}
}

func TestHardDropLocks(t *testing.T) {
	g := New()
	g.Reset(testCfg)
	first := g.current.kind
	press(g, core.ActionJump)

	if g.Snapshot().Filled != 4 {
		t.Errorf("filled after hard drop = %d, want 4", g.Snapshot().Filled)
	}
	if g.current.y != 0 || g.current.kind == first {
		t.Error("a new piece should spawn after locking")
	}
	bottom := false
	for x := 0; x < BoardW; x++ {
		if g.board[BoardH-1][x] >= 0 {
			bottom = true
		}
	}
	if !bottom {
		t.Error("hard drop did not reach the floor")
	}
}

func fillRow(g *Game, y, gapX int) {
	for x := 0; x < BoardW; x++ {
		if x != gapX {
			g.board[y][x] = int(core.ColorRed)
		}
	}
}

func TestLineClearScoring(t *testing.T) {
	cases := []struct {
		rows, level, want int
	}{
		{1, 1, 100},
		{2, 1, 300},
		{3, 2, 1000},
		{4, 1, 800},
	}
	for _, c := range cases {
		g := New()
		g.Reset(testCfg)
		g.level = c.level
		for i := 0; i < c.rows; i++ {
			fillRow(g, BoardH-1-i, 0)
		}
		// A vertical I dropped into the gap at column 0.
		g.current = piece{kind: KindI, shape: shapes[KindI].Rotate(), x: 0, y: 1}
		g.hardDrop()

		if g.score != c.want {
			t.Errorf("%d rows at level %d: score = %d, want %d", c.rows, c.level, g.score, c.want)
		}
		if g.lines != c.rows {
			t.Errorf("lines = %d, want %d", g.lines, c.rows)
		}
		if filled := g.Snapshot().Filled; filled != 4-c.rows {
			t.Errorf("%d rows: %d cells left, want %d", c.rows, filled, 4-c.rows)
		}
	}
}

func TestClearShiftsRowsDown(t *testing.T) {
	g := New()
	g.Reset(testCfg)
	fillRow(g, BoardH-1, -1)
	g.board[BoardH-2][3] = int(core.ColorBlue)

	if n := g.clearLines(); n != 1 {
		t.Fatalf("cleared = %d, want 1", n)
	}
	if g.board[BoardH-1][3] != int(core.ColorBlue) {
		t.Error("row above the cleared line did not fall")
	}
	if g.board[BoardH-2][3] != -1 {
		t.Error("old position should be empty")
	}
}

func TestLevelUp(t *testing.T) {
	g := New()
	g.Reset(testCfg)
	g.lines = 9
	fillRow(g, BoardH-1, 0)
	g.current = piece{kind: KindI, shape: shapes[KindI].Rotate(), x: 0, y: 1}
	g.hardDrop()
	if g.level != 2 {
		t.Errorf("level after 10 lines = %d, want 2", g.level)
	}
}

func TestTopOutEndsGame(t *testing.T) {
	g := New()
	g.Reset(testCfg)
	for i := 0; i < 1000 && !g.gameOver; i++ {
		press(g, core.ActionJump)
	}
	if !g.State().GameOver {
		t.Fatal("stacking pieces never ended the game")
	}
	before := g.Snapshot()
	press(g, core.ActionJump)
	idle(g, 100)
	if g.Snapshot() != before {
		t.Error("game changed after game over")
	}
}

func TestAlwaysReachesGameOver(t *testing.T) {
	g := New()
	g.Reset(testCfg)
	for i := 0; i < 200000 && !g.gameOver; i++ {
		idle(g, 1)
	}
	if !g.State().GameOver {
		t.Error("idle tetris never topped out")
	}
}

func TestPause(t *testing.T) {
	g := New()
	g.Reset(testCfg)
	press(g, core.ActionPause)
	before := g.Snapshot()
	idle(g, 500)
	press(g, core.ActionJump)
	if g.Snapshot() != before {
		t.Error("paused game advanced")
	}
}

func TestRender(t *testing.T) {
	g := New()
	g.Reset(testCfg)
	scr := core.NewScreen(testCfg.ScreenW, testCfg.ScreenH)
	g.Render(scr)
	if scr.String() == "" {
		t.Fatal("empty render")
	}
	g.gameOver = true
	g.Render(scr)
}
