package flappy

import (
	"math/rand"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
)

// Pipe is a vertical obstacle with a gap to fly through.
type Pipe struct {
	X      float64 // left edge
	GapY   int     // first open row
	GapH   int     // open rows
	Passed bool    // already counted toward the score
}

// Top returns the hitbox of the upper section.
func (p Pipe) Top(width int) core.Box {
	return core.Box{X: p.X, Y: 0, W: float64(width), H: float64(p.GapY)}
}

// Bottom returns the hitbox of the lower section down to floor.
func (p Pipe) Bottom(width, floor int) core.Box {
	y := p.GapY + p.GapH
	return core.Box{X: p.X, Y: float64(y), W: float64(width), H: float64(max(0, floor-y))}
}

// PipeManager spawns, scrolls and retires pipes.
type PipeManager struct {
	cfg   config.FlappyPipes
	diff  *config.DifficultyManager
	rng   *rand.Rand
	pipes []Pipe

	screenW int
	floor   int     // first row of the ground
	wait    float64 // reference frames until the next spawn
}

// NewPipeManager creates a manager for a screen screenW wide whose ground
// starts at row floor.
func NewPipeManager(rng *rand.Rand, cfg config.FlappyPipes, diff *config.DifficultyManager, screenW, floor int) *PipeManager {
	return &PipeManager{
		cfg:     cfg,
		diff:    diff,
		rng:     rng,
		pipes:   make([]Pipe, 0, 8),
		screenW: screenW,
		floor:   floor,
	}
}

// Update scrolls every pipe by speed*dt and spawns a new one when the
// interval elapses. dt is the length of this frame in reference frames.
// It returns how many pipes the player at playerX cleared this frame.
func (pm *PipeManager) Update(speed, dt float64, playerX, score, ticks int) int {
	passed := 0
	kept := pm.pipes[:0]
	for _, p := range pm.pipes {
		p.X -= speed * dt
		if !p.Passed && p.X+float64(pm.cfg.Width) <= float64(playerX) {
			p.Passed = true
			passed++
		}
		if p.X+float64(pm.cfg.Width) > 0 {
			kept = append(kept, p)
		}
	}
	pm.pipes = kept

	pm.wait -= dt
	if pm.wait <= 0 {
		pm.spawn(score, ticks)
		pm.wait += float64(pm.diff.Spacing(pm.cfg.SpawnFrames, score, ticks))
	}
	return passed
}

func (pm *PipeManager) spawn(score, ticks int) {
	widest := max(pm.cfg.MinGap, pm.diff.GapSize(pm.cfg.MaxGap, score, ticks))
	gap := pm.cfg.MinGap
	if widest > gap {
		gap += pm.rng.Intn(widest - gap + 1)
	}

	lo := pm.cfg.Margin
	hi := max(lo, pm.floor-pm.cfg.Margin-gap)
	y := lo
	if hi > lo {
		y += pm.rng.Intn(hi - lo + 1)
	}
	pm.pipes = append(pm.pipes, Pipe{X: float64(pm.screenW), GapY: y, GapH: gap})
}

// Pipes returns the live pipes, oldest first.
func (pm *PipeManager) Pipes() []Pipe {
	return pm.pipes
}

// Hits reports whether box overlaps any pipe.
func (pm *PipeManager) Hits(box core.Box) bool {
	for _, p := range pm.pipes {
		if box.Overlaps(p.Top(pm.cfg.Width)) || box.Overlaps(p.Bottom(pm.cfg.Width, pm.floor)) {
			return true
		}
	}
	return false
}
