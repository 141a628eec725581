package analysis

import (
	"math"

	"github.com/san-kum/threebody/internal/field"
	"github.com/san-kum/threebody/internal/tracer"
	"github.com/san-kum/threebody/internal/vec"
)

// Divergence traces streamlines from seed and from seed shifted by eps
// across the field direction, and returns log(d/eps) per unit arc length,
// where d is their separation at the last step both reached. Positive
// values mean the lines fan out, negative that they bunch together. It is 0
// when either line is empty.
func Divergence(f field.Field[vec.Vec2], seed vec.Vec2, eps float64, discs []tracer.Disc, style tracer.StreamStyle) float64 {
	dir := f.Get(seed.X, seed.Y).Normalize().Perp()
	if dir.IsZero() {
		dir = vec.New(0, 1)
	}
	a := tracer.Streamline(f, seed, discs, style)
	b := tracer.Streamline(f, seed.Add(dir.Scale(eps)), discs, style)

	n := min(len(a.Points), len(b.Points))
	if n < 2 {
		return 0
	}
	d := vec.Distance(a.Points[n-1], b.Points[n-1])
	length := 0.0
	for i := 1; i < n; i++ {
		length += vec.Distance(a.Points[i-1], a.Points[i])
	}
	if d == 0 || length == 0 {
		return 0
	}
	return math.Log(d/eps) / length
}
