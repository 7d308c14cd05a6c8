package runner

import (
	"math/rand"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
)

// ObstacleKind distinguishes obstacles to jump from obstacles to duck.
type ObstacleKind int

const (
	ObstacleLow  ObstacleKind = iota // on the ground; jump over it
	ObstacleHigh                     // at head height; duck under it
)

// Obstacle is one hazard scrolling toward the player.
type Obstacle struct {
	Kind  ObstacleKind
	X     float64
	Width int
	// Height is only used for low obstacles.
	Height int
}

// Box returns the hitbox relative to a ground at row floor.
func (o Obstacle) Box(floor int) core.Box {
	if o.Kind == ObstacleHigh {
		return core.Box{X: o.X, Y: float64(floor - 3), W: float64(o.Width), H: 2}
	}
	return core.Box{X: o.X, Y: float64(floor - o.Height), W: float64(o.Width), H: float64(o.Height)}
}

// PowerupKind is what a pickup does.
type PowerupKind int

const (
	PowerupCoin PowerupKind = iota
	PowerupShield
)

// Powerup is a pickup floating over the track.
type Powerup struct {
	Kind PowerupKind
	X    float64
	Y    int
}

// Center returns the pickup's midpoint for the circle test.
func (p Powerup) Center() core.Vec {
	return core.Vec{X: p.X + 0.5, Y: float64(p.Y) + 0.5}
}

// Spawner places obstacles at random distances and powerups on a timer.
type Spawner struct {
	cfg  config.RunnerSpawns
	diff *config.DifficultyManager
	rng  *rand.Rand

	screenW int
	floor   int

	obstacles []Obstacle
	powerups  []Powerup

	untilObstacle float64 // cells of track before the next obstacle
	untilPowerup  float64 // reference frames before the next pickup
}

// NewSpawner creates a spawner for a track screenW wide.
func NewSpawner(rng *rand.Rand, cfg config.RunnerSpawns, diff *config.DifficultyManager, screenW, floor int) *Spawner {
	return &Spawner{
		cfg:           cfg,
		diff:          diff,
		rng:           rng,
		screenW:       screenW,
		floor:         floor,
		untilObstacle: float64(cfg.MinSpacing),
		untilPowerup:  float64(cfg.PowerupFrames),
	}
}

// Update scrolls everything by dist cells and spawns what is due. dt is
// the frame length in reference frames.
func (s *Spawner) Update(dist, dt float64, score, ticks int) {
	s.obstacles = scroll(s.obstacles, func(o *Obstacle) float64 {
		o.X -= dist
		return o.X + float64(o.Width)
	})
	s.powerups = scroll(s.powerups, func(p *Powerup) float64 {
		p.X -= dist
		return p.X + 1
	})

	s.untilObstacle -= dist
	if s.untilObstacle <= 0 {
		s.spawnObstacle()
		widest := max(s.cfg.MinSpacing, s.diff.Spacing(s.cfg.MaxSpacing, score, ticks))
		s.untilObstacle += float64(s.cfg.MinSpacing + s.rng.Intn(widest-s.cfg.MinSpacing+1))
	}

	s.untilPowerup -= dt
	if s.untilPowerup <= 0 {
		s.spawnPowerup()
		s.untilPowerup += float64(s.cfg.PowerupFrames)
	}
}

// scroll applies move to every item and keeps those whose returned right
// edge is still on screen.
func scroll[T any](items []T, move func(*T) float64) []T {
	kept := items[:0]
	for i := range items {
		if right := move(&items[i]); right > 0 {
			kept = append(kept, items[i])
		}
	}
	return kept
}

func (s *Spawner) spawnObstacle() {
	o := Obstacle{Kind: ObstacleLow, X: float64(s.screenW), Width: 1 + s.rng.Intn(2), Height: 1 + s.rng.Intn(2)}
	if s.rng.Float64() < s.cfg.HighChance {
		o = Obstacle{Kind: ObstacleHigh, X: float64(s.screenW), Width: 3 + s.rng.Intn(3)}
	}
	s.obstacles = append(s.obstacles, o)
}

func (s *Spawner) spawnPowerup() {
	p := Powerup{Kind: PowerupCoin, X: float64(s.screenW)}
	if s.rng.Float64() < s.cfg.ShieldChance {
		p.Kind = PowerupShield
	}
	// Either in reach of a runner on the ground, or only of a jump.
	p.Y = s.floor - 2
	if s.rng.Intn(2) == 0 {
		p.Y = s.floor - 5
	}
	s.powerups = append(s.powerups, p)
}

// Obstacles returns the live obstacles, oldest first.
func (s *Spawner) Obstacles() []Obstacle { return s.obstacles }

// Powerups returns the live pickups, oldest first.
func (s *Spawner) Powerups() []Powerup { return s.powerups }

// Collide returns the index of the first obstacle box overlaps, or -1.
func (s *Spawner) Collide(box core.Box) int {
	for i, o := range s.obstacles {
		if box.Overlaps(o.Box(s.floor)) {
			return i
		}
	}
	return -1
}

// Remove drops obstacle i.
func (s *Spawner) Remove(i int) {
	s.obstacles = append(s.obstacles[:i], s.obstacles[i+1:]...)
}

// Collect removes and returns every pickup touching box.
func (s *Spawner) Collect(box core.Box) []PowerupKind {
	var got []PowerupKind
	kept := s.powerups[:0]
	for _, p := range s.powerups {
		if core.CircleHitsBox(p.Center(), 0.5, box) {
			got = append(got, p.Kind)
			continue
		}
		kept = append(kept, p)
	}
	s.powerups = kept
	return got
}
