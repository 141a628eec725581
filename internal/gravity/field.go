package gravity

import (
	"github.com/san-kum/threebody/internal/field"
	"github.com/san-kum/threebody/internal/vec"
)

const DefaultOvershoot = 1.05

// Field is the summed attraction of Bodies. The body slice is shared with the
// scene, so position updates are seen by Get immediately; the grid only
// changes on Calculate.
type Field struct {
	Bodies    []*Body
	Overshoot float64
	grid      *field.Grid[vec.Vec2]
}

var _ field.Field[vec.Vec2] = (*Field)(nil)

// NewField builds the field and computes its grid once.
func NewField(bodies []*Body, width, height int) *Field {
	f := &Field{
		Bodies:    bodies,
		Overshoot: DefaultOvershoot,
		grid:      field.NewGrid[vec.Vec2](width, height),
	}
	f.Calculate()
	return f
}

func (f *Field) Width() int  { return f.grid.Width }
func (f *Field) Height() int { return f.grid.Height }

// CellCenter maps grid cell (ix, iy) to its centre in field coordinates.
func (f *Field) CellCenter(ix, iy int) vec.Vec2 {
	span := 2 * f.Overshoot
	return vec.Vec2{
		X: (float64(ix)+0.5)/float64(f.grid.Width)*span - f.Overshoot,
		Y: (float64(iy)+0.5)/float64(f.grid.Height)*span - f.Overshoot,
	}
}

// Calculate refreshes every grid cell from the current body positions.
func (f *Field) Calculate() {
	f.grid.Fill(func(ix, iy int) vec.Vec2 {
		return Acceleration(f.Bodies, f.CellCenter(ix, iy))
	})
}

// At returns the cached grid value of cell (ix, iy).
func (f *Field) At(ix, iy int) vec.Vec2 {
	return f.grid.At(ix, iy)
}

// Get evaluates the field exactly at (x, y).
func (f *Field) Get(x, y float64) vec.Vec2 {
	return Acceleration(f.Bodies, vec.Vec2{X: x, Y: y})
}

// Sample interpolates the cached grid at field coordinates (x, y). Points
// outside the grid are clamped to its edge. It is cheap and coarse, and is
// never used for tracing.
func (f *Field) Sample(x, y float64) vec.Vec2 {
	span := 2 * f.Overshoot
	gx := (x+f.Overshoot)/span*float64(f.grid.Width) - 0.5
	gy := (y+f.Overshoot)/span*float64(f.grid.Height) - 0.5
	gx, gy = f.grid.Clamp(gx, gy)
	return f.grid.Get(gx, gy)
}

// Potential evaluates the scalar potential -sum(m/d) at p.
func (f *Field) Potential(p vec.Vec2) float64 {
	return Potential(f.Bodies, p)
}

// Acceleration sums -m/d^2 along the unit displacement from each body to p.
// A body exactly at p has no defined direction and contributes nothing.
func Acceleration(bodies []*Body, p vec.Vec2) vec.Vec2 {
	var g vec.Vec2
	for _, b := range bodies {
		r := p.Sub(b.Origin)
		d2 := r.Norm2()
		if d2 == 0 {
			continue
		}
		g = g.Add(r.Normalize().Scale(-b.Mass / d2))
	}
	return g
}

// Potential is -sum(m/d); bodies coincident with p are skipped.
func Potential(bodies []*Body, p vec.Vec2) float64 {
	phi := 0.0
	for _, b := range bodies {
		d := vec.Distance(p, b.Origin)
		if d == 0 {
			continue
		}
		phi -= b.Mass / d
	}
	return phi
}
