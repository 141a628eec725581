package analysis

import (
	"fmt"
	"strings"

	"github.com/san-kum/threebody/internal/gravity"
	"github.com/san-kum/threebody/internal/tracer"
	"github.com/san-kum/threebody/internal/vec"
)

// SweepPoint is one equipotential seed of a closure sweep.
type SweepPoint struct {
	Seed       vec.Vec2
	Distance   float64
	Closed     bool
	Iterations int
	Stop       tracer.Stop
}

// ClosureSweep traces an equipotential from each of n seeds spaced along the
// segment a-b and records whether it closed.
func ClosureSweep(f *gravity.Field, a, b vec.Vec2, n int, style tracer.ContourStyle) []SweepPoint {
	if n < 2 {
		n = 2
	}
	out := make([]SweepPoint, 0, n)
	for i := 0; i < n; i++ {
		s := float64(i) / float64(n-1)
		seed := a.Lerp(b, s)
		c := tracer.Equipotential(f, seed, style)
		out = append(out, SweepPoint{
			Seed:       seed,
			Distance:   s * vec.Distance(a, b),
			Closed:     c.Closed,
			Iterations: c.Iterations,
			Stop:       c.Stop,
		})
	}
	return out
}

// SweepToASCII lists the sweep as a table with a bar per seed.
func SweepToASCII(points []SweepPoint, width int) string {
	if len(points) == 0 || width <= 0 {
		return ""
	}
	most := 1
	for _, p := range points {
		most = max(most, p.Iterations)
	}

	var b strings.Builder
	for _, p := range points {
		mark := "open  "
		if p.Closed {
			mark = "closed"
		}
		bar := p.Iterations * width / most
		fmt.Fprintf(&b, "%7.3f  %s %5d %-9s %s\n", p.Distance, mark, p.Iterations, p.Stop, strings.Repeat("#", bar))
	}
	return b.String()
}
