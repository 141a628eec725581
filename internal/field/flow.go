package field

import (
	"fmt"
	"math"

	"github.com/san-kum/threebody/internal/rng"
	"github.com/san-kum/threebody/internal/vec"
)

// RandomFlow is an unbounded vector field whose value at each integer cell is
// a random vector of length < 1, seeded by hashing the cell coordinates. The
// same cell always yields the same vector.
type RandomFlow struct{}

func (RandomFlow) At(ix, iy int) vec.Vec2 {
	g := rng.New(fmt.Sprintf("%d.%d", ix, iy))
	theta := g.Next() * 2 * math.Pi
	r := g.Next()
	return vec.Polar(r, theta)
}

func (f RandomFlow) Get(x, y float64) vec.Vec2 {
	return Bilinear[vec.Vec2](f, x, y)
}

// ScaledFlow evaluates a RandomFlow at (Fx*x + X0, Fy*y + Y0).
type ScaledFlow struct {
	RandomFlow
	Fx, Fy float64
	X0, Y0 float64
}

func NewScaledFlow(fx, fy float64) *ScaledFlow {
	return &ScaledFlow{Fx: fx, Fy: fy}
}

func (f *ScaledFlow) Get(x, y float64) vec.Vec2 {
	return f.RandomFlow.Get(f.Fx*x+f.X0, f.Fy*y+f.Y0)
}

// NewRandomVectorGrid fills a grid with random vectors of length < 1.
func NewRandomVectorGrid(width, height int, src rng.Source) *Grid[vec.Vec2] {
	g := NewGrid[vec.Vec2](width, height)
	g.Fill(func(_, _ int) vec.Vec2 {
		theta := src.Next() * 2 * math.Pi
		return vec.Polar(src.Next(), theta)
	})
	return g
}

// NewUnitVectorGrid fills a grid with random unit vectors.
func NewUnitVectorGrid(width, height int, src rng.Source) *Grid[vec.Vec2] {
	g := NewGrid[vec.Vec2](width, height)
	g.Fill(func(_, _ int) vec.Vec2 {
		return vec.Polar(1, rng.Uniform(src.Next(), 0, 2*math.Pi))
	})
	return g
}
