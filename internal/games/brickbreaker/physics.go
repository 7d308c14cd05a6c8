package brickbreaker

// Scale is the number of fixed-point units per cell. Positions and
// velocities are integers so a replay with the same inputs is exact.
const Scale = 1000

// Fixed is a fixed-point coordinate or velocity.
type Fixed int

// ToFixed converts a cell coordinate to fixed point.
func ToFixed(cell int) Fixed { return Fixed(cell * Scale) }

// Cell truncates to a cell coordinate, rounding toward negative infinity
// so positions just above the top wall do not land in row 0.
func (f Fixed) Cell() int {
	if f < 0 {
		return (int(f) - Scale + 1) / Scale
	}
	return int(f) / Scale
}

// Abs returns the magnitude of f.
func (f Fixed) Abs() Fixed {
	if f < 0 {
		return -f
	}
	return f
}

// Ball is the ball position and velocity.
type Ball struct {
	X, Y   Fixed
	VX, VY Fixed
	Stuck  bool // resting on the paddle, waiting for launch
}

// Paddle is the player's bat. X is the left edge.
type Paddle struct {
	X     Fixed
	Y     int
	Width int
}

// Left returns the left edge.
func (p Paddle) Left() Fixed { return p.X }

// Right returns the right edge.
func (p Paddle) Right() Fixed { return p.X + ToFixed(p.Width) }

// Center returns the horizontal midpoint.
func (p Paddle) Center() Fixed { return p.X + ToFixed(p.Width)/2 }

// paddleBounce sends the ball back up. The horizontal speed depends on
// where it struck: the centre returns it nearly straight up, the tips send
// it out at up to maxSide per frame. It is never exactly vertical so the
// ball cannot settle into one column.
func paddleBounce(b *Ball, p Paddle, speed Fixed) {
	half := ToFixed(p.Width) / 2
	offset := b.X - p.Center()
	if offset > half {
		offset = half
	}
	if offset < -half {
		offset = -half
	}
	maxSide := speed * 4 / 5
	b.VX = Fixed(int(offset) * int(maxSide) / max(1, int(half)))
	if minSide := speed / 10; b.VX.Abs() < minSide {
		b.VX = minSide
		if offset < 0 {
			b.VX = -minSide
		}
	}
	b.VY = -speed
	b.Y = ToFixed(p.Y) - 1
}
