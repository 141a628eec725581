package tracer

import (
	"github.com/san-kum/threebody/internal/field"
	"github.com/san-kum/threebody/internal/gravity"
	"github.com/san-kum/threebody/internal/integrators"
	"github.com/san-kum/threebody/internal/vec"
)

// euler takes every trace step; the traces differ only in the velocity
// they feed it.
var euler integrators.Stepper = integrators.NewEuler()

// StreamStyle tunes a streamline trace. A zero Period leaves the dash
// pattern to the scene, which draws one from its seed.
type StreamStyle struct {
	Steps        int     `yaml:"steps" json:"steps"`
	Delta        float64 `yaml:"delta" json:"delta"`
	Escape       float64 `yaml:"escape" json:"escape"`
	MinSpeed     float64 `yaml:"min_speed" json:"min_speed"`
	MaxSpeed     float64 `yaml:"max_speed" json:"max_speed"`
	Period       int     `yaml:"period" json:"period"`
	Duty         int     `yaml:"duty" json:"duty"`
	Subdivisions int     `yaml:"subdivisions" json:"subdivisions"`
}

func DefaultStreamStyle() StreamStyle {
	return StreamStyle{
		Steps:        512,
		Delta:        0.002,
		Escape:       3e2,
		MinSpeed:     2,
		MaxSpeed:     8,
		Subdivisions: 128,
	}
}

// Disc is a region that field lines may not enter.
type Disc struct {
	Center vec.Vec2
	Radius float64
}

func (d Disc) Contains(p vec.Vec2) bool {
	return vec.Distance(p, d.Center) < d.Radius
}

// BodyDiscs returns the drawn disc of each body.
func BodyDiscs(bodies []*gravity.Body) []Disc {
	out := make([]Disc, len(bodies))
	for i, b := range bodies {
		out[i] = Disc{Center: b.Origin, Radius: b.Radius()}
	}
	return out
}

// Streamline follows f from seed. The sampled vector is clamped to
// [MinSpeed, MaxSpeed] before each Euler step. A step that would enter one
// of the discs is cut at the last sub-step outside it and ends the line.
func Streamline(f field.Field[vec.Vec2], seed vec.Vec2, discs []Disc, style StreamStyle) *Polyline {
	pl := &Polyline{Period: style.Period, Duty: style.Duty}
	last := seed

	for i := 0; i < style.Steps; i++ {
		pl.Iterations = i + 1

		g := f.Get(last.X, last.Y)
		n := g.Norm()
		if n > style.Escape {
			pl.Stop = Escaped
			return pl
		}
		if n == 0 || !g.IsValid() {
			pl.Stop = Stalled
			return pl
		}

		next := euler.Step(last, g.Limit(style.MinSpeed, style.MaxSpeed), style.Delta)

		if end, hit := clip(last, next, discs, style.Subdivisions); hit {
			if end != last {
				pl.extend(last, end)
			}
			pl.Stop = Collided
			return pl
		}

		pl.extend(last, next)
		last = next
	}

	pl.Stop = Exhausted
	return pl
}

func (p *Polyline) extend(from, to vec.Vec2) {
	if len(p.Points) == 0 {
		p.Points = append(p.Points, from)
	}
	p.Points = append(p.Points, to)
}

// clip reports whether the step a->b enters a disc and, if so, the last of n
// evenly spaced sub-points along it that is still outside every disc.
func clip(a, b vec.Vec2, discs []Disc, n int) (vec.Vec2, bool) {
	near := false
	for _, d := range discs {
		if vec.SegmentDistance(d.Center, a, b) < d.Radius {
			near = true
			break
		}
	}
	if !near {
		return b, false
	}
	if n < 1 {
		n = 1
	}

	prev := a
	for k := 0; k <= n; k++ {
		q := a.Lerp(b, float64(k)/float64(n))
		for _, d := range discs {
			if d.Contains(q) {
				return prev, true
			}
		}
		prev = q
	}
	// grazed the rim without landing inside
	return b, false
}

// Seeds spaces n seeds along each edge of the [-1, 1] square, in the order
// bottom, top, left, right.
func Seeds(n int) []vec.Vec2 {
	out := make([]vec.Vec2, 0, 4*n)
	for _, edge := range []func(t float64) vec.Vec2{
		func(t float64) vec.Vec2 { return vec.New(t, -1) },
		func(t float64) vec.Vec2 { return vec.New(t, 1) },
		func(t float64) vec.Vec2 { return vec.New(-1, t) },
		func(t float64) vec.Vec2 { return vec.New(1, t) },
	} {
		for i := 0; i < n; i++ {
			out = append(out, edge((float64(i)+0.5)/float64(n)*2-1))
		}
	}
	return out
}
