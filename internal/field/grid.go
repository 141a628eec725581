package field

import "math"

// edgeInset keeps coordinates on the upper boundary inside the last cell.
const edgeInset = 1e-6

// Grid is an explicit width x height array of samples. Cell (ix, iy) holds the
// value at integer coordinates (ix, iy), so Get is defined on
// [0, width-1] x [0, height-1].
type Grid[T Value] struct {
	Width, Height int
	data          []T
}

// NewGrid returns a grid filled with the zero value.
func NewGrid[T Value](width, height int) *Grid[T] {
	return &Grid[T]{
		Width:  width,
		Height: height,
		data:   make([]T, width*height),
	}
}

func (g *Grid[T]) At(ix, iy int) T {
	return g.data[ix*g.Height+iy]
}

func (g *Grid[T]) Set(ix, iy int, v T) {
	g.data[ix*g.Height+iy] = v
}

// Get interpolates between the four cells around (x, y). A coordinate on the
// upper boundary is nudged inward so the enclosing cell stays in range.
func (g *Grid[T]) Get(x, y float64) T {
	if hi := float64(g.Width - 1); x >= hi {
		x = hi - edgeInset
	}
	if hi := float64(g.Height - 1); y >= hi {
		y = hi - edgeInset
	}
	return Bilinear[T](g, x, y)
}

// Clear resets every cell to the zero value.
func (g *Grid[T]) Clear() {
	var zero T
	for i := range g.data {
		g.data[i] = zero
	}
}

// Fill sets every cell from f(ix, iy).
func (g *Grid[T]) Fill(f func(ix, iy int) T) {
	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			g.Set(x, y, f(x, y))
		}
	}
}

// Clamp limits (x, y) to the interpolation domain of the grid.
func (g *Grid[T]) Clamp(x, y float64) (float64, float64) {
	x = math.Max(0, math.Min(x, float64(g.Width-1)))
	y = math.Max(0, math.Min(y, float64(g.Height-1)))
	return x, y
}
