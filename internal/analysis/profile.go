package analysis

import (
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/threebody/internal/gravity"
	"github.com/san-kum/threebody/internal/vec"
)

// Profile holds field samples taken at evenly spaced points from From to To.
type Profile struct {
	From, To  vec.Vec2
	Distance  []float64
	Magnitude []float64
	Potential []float64
}

// NewProfile samples f at n points along the segment a-b, ends included.
func NewProfile(f *gravity.Field, a, b vec.Vec2, n int) *Profile {
	if n < 2 {
		n = 2
	}
	p := &Profile{
		From:      a,
		To:        b,
		Distance:  make([]float64, n),
		Magnitude: make([]float64, n),
		Potential: make([]float64, n),
	}
	length := vec.Distance(a, b)
	for i := 0; i < n; i++ {
		s := float64(i) / float64(n-1)
		q := a.Lerp(b, s)
		p.Distance[i] = s * length
		p.Magnitude[i] = f.Get(q.X, q.Y).Norm()
		p.Potential[i] = f.Potential(q)
	}
	return p
}

// LogMagnitude is log10 of the magnitude, floored at floor so that
// singular samples stay plottable.
func (p *Profile) LogMagnitude(floor float64) []float64 {
	out := make([]float64, len(p.Magnitude))
	for i, m := range p.Magnitude {
		out[i] = math.Max(floor, math.Log10(math.Max(m, 1e-300)))
		if math.IsInf(m, 0) || math.IsNaN(m) {
			out[i] = floor
		}
	}
	return out
}

// Plot renders the log magnitude and the potential as two text graphs.
func (p *Profile) Plot(width, height int) string {
	mag := asciigraph.Plot(p.LogMagnitude(-3),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("log10 |g|"),
	)
	pot := asciigraph.Plot(clampSeries(p.Potential, -100, 0),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("potential"),
	)
	return mag + "\n\n" + pot
}

func clampSeries(xs []float64, lo, hi float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = math.Max(lo, math.Min(hi, x))
	}
	return out
}
