package tetris

import (
	"math/rand"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// Kind names a tetromino.
type Kind int

const (
	KindI Kind = iota
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
	kindCount
)

// Shape is a rectangular block mask, row major.
type Shape [][]bool

var shapes = [kindCount]Shape{
	KindI: parse("####"),
	KindO: parse("##", "##"),
	KindT: parse(".#.", "###"),
	KindS: parse(".##", "##."),
	KindZ: parse("##.", ".##"),
	KindJ: parse("#..", "###"),
	KindL: parse("..#", "###"),
}

var kindColors = [kindCount]core.Color{
	KindI: core.ColorBrightCyan,
	KindO: core.ColorBrightYellow,
	KindT: core.ColorMagenta,
	KindS: core.ColorBrightGreen,
	KindZ: core.ColorBrightRed,
	KindJ: core.ColorBlue,
	KindL: core.ColorOrange,
}

func parse(rows ...string) Shape {
	s := make(Shape, len(rows))
	for y, row := range rows {
		s[y] = make([]bool, len(row))
		for x, ch := range row {
			s[y][x] = ch == '#'
		}
	}
	return s
}

// Width returns the number of columns.
func (s Shape) Width() int { return len(s[0]) }

// Height returns the number of rows.
func (s Shape) Height() int { return len(s) }

// Rotate returns the shape turned 90 degrees clockwise.
func (s Shape) Rotate() Shape {
	h, w := s.Height(), s.Width()
	out := make(Shape, w)
	for x := 0; x < w; x++ {
		out[x] = make([]bool, h)
		for y := 0; y < h; y++ {
			out[x][h-1-y] = s[y][x]
		}
	}
	return out
}

// bag deals each of the seven pieces once per round in shuffled order.
type bag struct {
	rng   *rand.Rand
	queue []Kind
}

func newBag(rng *rand.Rand) *bag {
	return &bag{rng: rng}
}

func (b *bag) next() Kind {
	if len(b.queue) == 0 {
		b.queue = make([]Kind, kindCount)
		for i := range b.queue {
			b.queue[i] = Kind(i)
		}
		b.rng.Shuffle(len(b.queue), func(i, j int) {
			b.queue[i], b.queue[j] = b.queue[j], b.queue[i]
		})
	}
	k := b.queue[0]
	b.queue = b.queue[1:]
	return k
}
