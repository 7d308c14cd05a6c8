package session

import (
	"testing"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/input"
)

// fakeGame scores one point per step and ends after overAt steps. A zero
// overAt never ends.
type fakeGame struct {
	resets    int
	steps     int
	overAt    int
	pointsPer int
	last      core.InputFrame
	score     int
	over      bool
}

func (g *fakeGame) ID() string { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.steps, g.score, g.over = 0, 0, false
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.last = in
	if g.over {
		return core.StepResult{State: g.State()}
	}
	g.steps++
	g.score += g.pointsPer
	if g.overAt > 0 && g.steps >= g.overAt {
		g.over = true
	}
	return core.StepResult{State: g.State()}
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.Set(0, 0, '@')
}

func (g *fakeGame) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.over}
}

type recorder struct {
	scores []int
	overs  []int
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnScoreChange: func(s int) { r.scores = append(r.scores, s) },
		OnGameOver:    func(s int) { r.overs = append(r.overs, s) },
	}
}

var testCfg = core.RuntimeConfig{ScreenW: 20, ScreenH: 10, TickRate: 10, Seed: 1}

func TestIdleUntilActivated(t *testing.T) {
	g := &fakeGame{pointsPer: 1}
	bus := input.NewBus()
	s := New(g, testCfg, bus, Callbacks{}, Options{})

	if s.Phase() != PhaseIdle || s.Active() {
		t.Fatalf("new session phase = %v active = %v", s.Phase(), s.Active())
	}
	if s.Frame() {
		t.Error("Frame on idle session should do nothing")
	}
	if g.resets != 0 || g.steps != 0 || bus.Len() != 0 {
		t.Error("idle session touched the game or the bus")
	}

	s.SetActive(true)
	if g.resets != 1 || bus.Len() != 1 || s.Phase() != PhaseRunning {
		t.Errorf("after activate: resets=%d listeners=%d phase=%v", g.resets, bus.Len(), s.Phase())
	}
	if s.Screen().Get(0, 0) != '@' {
		t.Error("activation should render the first frame")
	}
}

func TestGameOverFiresOnce(t *testing.T) {
	g := &fakeGame{pointsPer: 10, overAt: 3}
	bus := input.NewBus()
	var rec recorder
	s := New(g, testCfg, bus, rec.callbacks(), Options{})
	s.SetActive(true)

	frames := 0
	for s.Frame() {
		frames++
	}
	for i := 0; i < 10; i++ {
		if s.Frame() {
			t.Fatal("terminal session asked for another frame")
		}
	}
	s.SetActive(true)
	s.Frame()
	s.Close()
	s.Close()

	if frames != 2 {
		t.Errorf("frames before terminal = %d, want 2", frames)
	}
	if len(rec.overs) != 1 || rec.overs[0] != 30 {
		t.Errorf("OnGameOver calls = %v, want [30]", rec.overs)
	}
	if want := []int{10, 20, 30}; !equalInts(rec.scores, want) {
		t.Errorf("score changes = %v, want %v", rec.scores, want)
	}
	if s.Phase() != PhaseTerminal {
		t.Errorf("phase = %v, want terminal", s.Phase())
	}
	if bus.Len() != 0 {
		t.Errorf("listeners after terminal = %d, want 0", bus.Len())
	}
	if g.steps != 3 || g.resets != 1 {
		t.Errorf("steps = %d resets = %d; terminal must be absorbing", g.steps, g.resets)
	}
}

func TestGameOverIsLastCallback(t *testing.T) {
	g := &fakeGame{pointsPer: 5, overAt: 1}
	var order []string
	s := New(g, testCfg, nil, Callbacks{
		OnScoreChange: func(int) { order = append(order, "score") },
		OnGameOver:    func(int) { order = append(order, "over") },
	}, Options{})
	s.SetActive(true)
	s.Frame()
	s.Frame()

	if len(order) != 2 || order[0] != "score" || order[1] != "over" {
		t.Errorf("callback order = %v, want [score over]", order)
	}
}

func TestScoreChangesCoalesced(t *testing.T) {
	g := &fakeGame{pointsPer: 0}
	var rec recorder
	s := New(g, testCfg, nil, rec.callbacks(), Options{})
	s.SetActive(true)

	for i := 0; i < 5; i++ {
		s.Frame()
	}
	if len(rec.scores) != 0 {
		t.Errorf("unchanged score produced callbacks: %v", rec.scores)
	}

	g.pointsPer = 3
	s.Frame()
	if len(rec.scores) != 1 || rec.scores[0] != 3 || s.Score() != 3 {
		t.Errorf("scores = %v, Score() = %d", rec.scores, s.Score())
	}
}

func TestDeactivateBeforeTerminal(t *testing.T) {
	g := &fakeGame{pointsPer: 1, overAt: 5}
	bus := input.NewBus()
	var rec recorder
	s := New(g, testCfg, bus, rec.callbacks(), Options{})
	s.SetActive(true)
	s.Frame()
	s.Frame()

	s.SetActive(false)
	s.SetActive(false)
	if bus.Len() != 0 {
		t.Fatalf("listeners after deactivate = %d", bus.Len())
	}

	before := len(rec.scores)
	for i := 0; i < 10; i++ {
		if s.Frame() {
			t.Fatal("inactive session asked for a frame")
		}
	}
	if len(rec.scores) != before || len(rec.overs) != 0 || g.steps != 2 {
		t.Errorf("inactive session kept running: scores=%v overs=%v steps=%d", rec.scores, rec.overs, g.steps)
	}

	// Resuming continues the same run without a reset.
	s.SetActive(true)
	if g.resets != 1 || bus.Len() != 1 {
		t.Errorf("resume: resets=%d listeners=%d", g.resets, bus.Len())
	}
	for s.Frame() {
	}
	if len(rec.overs) != 1 || rec.overs[0] != 5 {
		t.Errorf("OnGameOver = %v, want [5]", rec.overs)
	}
}

func TestCloseFiresNothing(t *testing.T) {
	g := &fakeGame{pointsPer: 1, overAt: 1}
	bus := input.NewBus()
	var rec recorder
	s := New(g, testCfg, bus, rec.callbacks(), Options{})
	s.SetActive(true)
	s.Close()

	if s.Frame() {
		t.Error("closed session asked for a frame")
	}
	s.SetActive(true)
	if s.Active() || bus.Len() != 0 {
		t.Error("closed session must not reactivate")
	}
	if len(rec.scores)+len(rec.overs) != 0 {
		t.Error("closed session fired callbacks")
	}
}

func TestCountdown(t *testing.T) {
	g := &fakeGame{pointsPer: 1}
	var rec recorder
	s := New(g, testCfg, nil, rec.callbacks(), Options{CountdownSeconds: 3})
	s.SetActive(true)

	if s.Phase() != PhaseCountdown || s.CountdownRemaining() != 3 {
		t.Fatalf("phase = %v remaining = %d", s.Phase(), s.CountdownRemaining())
	}

	want := 3 * testCfg.TickRate
	for i := 1; i < want; i++ {
		s.Frame()
		if s.Phase() != PhaseCountdown {
			t.Fatalf("countdown ended after %d frames, want %d", i, want)
		}
	}
	if s.CountdownRemaining() != 1 {
		t.Errorf("remaining before last frame = %d, want 1", s.CountdownRemaining())
	}
	s.Frame()
	if s.Phase() != PhaseRunning {
		t.Fatalf("phase after %d frames = %v, want running", want, s.Phase())
	}
	if g.steps != 0 {
		t.Errorf("game stepped %d times during countdown", g.steps)
	}

	s.Frame()
	if g.steps != 1 {
		t.Errorf("steps after countdown = %d, want 1", g.steps)
	}
}

func TestDeactivateMidCountdown(t *testing.T) {
	g := &fakeGame{pointsPer: 1, overAt: 1}
	bus := input.NewBus()
	var rec recorder
	s := New(g, testCfg, bus, rec.callbacks(), Options{CountdownSeconds: 1})
	s.SetActive(true)
	s.Frame()
	s.SetActive(false)

	for i := 0; i < 100; i++ {
		s.Frame()
	}
	if g.steps != 0 || len(rec.overs) != 0 || bus.Len() != 0 {
		t.Errorf("deactivated countdown kept running: steps=%d overs=%v listeners=%d", g.steps, rec.overs, bus.Len())
	}
	if s.Phase() != PhaseCountdown {
		t.Errorf("phase = %v, want countdown", s.Phase())
	}
}

func TestInputDelivery(t *testing.T) {
	g := &fakeGame{}
	bus := input.NewBus()
	s := New(g, testCfg, bus, Callbacks{}, Options{HoldFrames: 3})

	bus.PublishAction(core.ActionJump)
	s.SetActive(true)
	s.Frame()
	if g.last.Has(core.ActionJump) {
		t.Error("input published before activation was delivered")
	}

	bus.PublishAction(core.ActionLeft)
	bus.PublishPointer(core.Pointer{X: 2, Y: 3, Button: core.PointerSecondary})
	s.Frame()
	if !g.last.Has(core.ActionLeft) || len(g.last.Clicks) != 1 {
		t.Fatalf("frame input = %+v", g.last)
	}

	s.Frame()
	if g.last.Has(core.ActionLeft) {
		t.Error("press should only appear in one frame")
	}
	if !g.last.IsHeld(core.ActionLeft) {
		t.Error("press should stay held within the hold window")
	}
	s.Frame()
	s.Frame()
	if g.last.IsHeld(core.ActionLeft) {
		t.Error("hold should expire after HoldFrames")
	}

	s.SetActive(false)
	bus.PublishAction(core.ActionRight)
	s.SetActive(true)
	s.Frame()
	if g.last.Has(core.ActionRight) {
		t.Error("input published while inactive was delivered")
	}
}

func TestCallbackMayCloseSession(t *testing.T) {
	g := &fakeGame{pointsPer: 1, overAt: 3}
	var s *Session
	var overs int
	s = New(g, testCfg, nil, Callbacks{
		OnScoreChange: func(score int) {
			if score == 1 {
				s.Close()
			}
		},
		OnGameOver: func(int) { overs++ },
	}, Options{})
	s.SetActive(true)

	if s.Frame() {
		t.Error("Frame should report false after a callback closed the session")
	}
	if s.Frame() || overs != 0 {
		t.Error("closed session kept running")
	}
}

func TestGuard(t *testing.T) {
	var rec recorder
	cb := Guard(rec.callbacks())

	cb.OnScoreChange(1)
	cb.OnGameOver(5)
	cb.OnGameOver(7)
	cb.OnScoreChange(9)

	if !equalInts(rec.scores, []int{1}) || !equalInts(rec.overs, []int{5}) {
		t.Errorf("scores = %v overs = %v", rec.scores, rec.overs)
	}

	// Nil callbacks are tolerated.
	empty := Guard(Callbacks{})
	empty.OnScoreChange(1)
	empty.OnGameOver(1)
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
