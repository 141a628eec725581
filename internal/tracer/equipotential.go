package tracer

import (
	"slices"

	"github.com/san-kum/threebody/internal/field"
	"github.com/san-kum/threebody/internal/vec"
)

// ContourStyle tunes an equipotential trace. CloseTolerance and MinIterations
// drive the closing test and are visual tunables: a contour is not guaranteed
// to close.
type ContourStyle struct {
	Steps          int     `yaml:"steps" json:"steps"`
	Delta          float64 `yaml:"delta" json:"delta"`
	Escape         float64 `yaml:"escape" json:"escape"`
	CloseTolerance float64 `yaml:"close_tolerance" json:"close_tolerance"`
	MinIterations  int     `yaml:"min_iterations" json:"min_iterations"`
	Period         int     `yaml:"period" json:"period"`
	Duty           int     `yaml:"duty" json:"duty"`
}

func DefaultContourStyle() ContourStyle {
	return ContourStyle{
		Steps:          5000,
		Delta:          3e-3,
		Escape:         1e4,
		CloseTolerance: 1e-2,
		MinIterations:  64,
		Period:         1,
		Duty:           1,
	}
}

// IsolineStyle is the cheap unnormalised variant: each half moves by the
// rotated field times Delta, so it crawls where the field is weak.
func IsolineStyle() ContourStyle {
	return ContourStyle{
		Steps:  256,
		Delta:  1e-4,
		Escape: 1e4,
		Period: 6,
		Duty:   6,
	}
}

// Contour is a pair of half-traces leaving a common seed in opposite
// directions. Left turns the field by -90 degrees and Right by +90.
type Contour struct {
	Left       []vec.Vec2
	Right      []vec.Vec2
	Closed     bool
	Iterations int
	Stop       Stop
	Period     int
	Duty       int
}

// Points joins the halves into one curve running from the end of Left
// through the seed to the end of Right. A closed contour ends back at the
// start of the curve.
func (c *Contour) Points() []vec.Vec2 {
	if len(c.Left) < 2 && len(c.Right) < 2 {
		return nil
	}
	out := make([]vec.Vec2, 0, len(c.Left)+len(c.Right)+1)
	out = append(out, c.Left...)
	slices.Reverse(out)
	if len(c.Right) > 0 {
		if len(out) == 0 {
			out = append(out, c.Right...)
		} else {
			out = append(out, c.Right[1:]...)
		}
	}
	if c.Closed {
		out = append(out, out[0])
	}
	return out
}

// Gap is the distance between the current ends of the two halves.
func (c *Contour) Gap() float64 {
	if len(c.Left) == 0 || len(c.Right) == 0 {
		return 0
	}
	return vec.Distance(c.Left[len(c.Left)-1], c.Right[len(c.Right)-1])
}

// Dashes splits both halves into drawn runs. Each half keeps its own step
// index so the dash pattern starts at the seed on both sides.
func (c *Contour) Dashes() [][]vec.Vec2 {
	out := dashes(c.Left, c.Period, c.Duty)
	out = append(out, dashes(c.Right, c.Period, c.Duty)...)
	if c.Closed {
		out = append(out, []vec.Vec2{c.Right[len(c.Right)-1], c.Left[len(c.Left)-1]})
	}
	return out
}

func (c *Contour) Length() float64 {
	return arcLength(c.Points())
}

// Equipotential traces both halves from seed in lockstep, each step of fixed
// length Delta perpendicular to the field. It stops when either half passes
// the escape magnitude or meets a zero field, and closes the contour once
// the halves come within CloseTolerance after MinIterations steps.
func Equipotential(f field.Field[vec.Vec2], seed vec.Vec2, style ContourStyle) *Contour {
	c := &Contour{Period: style.Period, Duty: style.Duty}
	l, r := seed, seed

	for i := 0; i < style.Steps; i++ {
		c.Iterations = i + 1

		g0 := f.Get(l.X, l.Y)
		g1 := f.Get(r.X, r.Y)
		if g0.Norm() > style.Escape || g1.Norm() > style.Escape {
			c.Stop = Escaped
			return c
		}
		if g0.IsZero() || g1.IsZero() || !g0.IsValid() || !g1.IsValid() {
			c.Stop = Stalled
			return c
		}

		l1 := euler.Step(l, g0.Normalize().Perp().Scale(-1), style.Delta)
		r1 := euler.Step(r, g1.Normalize().Perp(), style.Delta)
		if i == 0 {
			c.Left = append(c.Left, seed)
			c.Right = append(c.Right, seed)
		}
		c.Left = append(c.Left, l1)
		c.Right = append(c.Right, r1)

		if i > style.MinIterations && vec.Distance(l1, r1) < style.CloseTolerance {
			c.Closed = true
			c.Stop = Closed
			return c
		}
		l, r = l1, r1
	}

	c.Stop = Exhausted
	return c
}

// Isoline traces the two halves one after the other without normalising the
// field, so step length follows field strength. It never closes.
func Isoline(f field.Field[vec.Vec2], seed vec.Vec2, style ContourStyle) *Contour {
	c := &Contour{Period: style.Period, Duty: style.Duty}
	var its [2]int
	var stops [2]Stop
	c.Left, its[0], stops[0] = half(f, seed, -1, style)
	c.Right, its[1], stops[1] = half(f, seed, 1, style)
	c.Iterations = max(its[0], its[1])
	c.Stop = stops[0]
	if stops[0] == Exhausted {
		c.Stop = stops[1]
	}
	return c
}

func half(f field.Field[vec.Vec2], seed vec.Vec2, sign float64, style ContourStyle) ([]vec.Vec2, int, Stop) {
	var pts []vec.Vec2
	last := seed
	for i := 0; i < style.Steps; i++ {
		g := f.Get(last.X, last.Y)
		if g.Norm() > style.Escape {
			return pts, i + 1, Escaped
		}
		next := euler.Step(last, g.Perp().Scale(sign), style.Delta)
		if !next.IsValid() {
			return pts, i + 1, Stalled
		}
		if len(pts) == 0 {
			pts = append(pts, last)
		}
		pts = append(pts, next)
		last = next
	}
	return pts, style.Steps, Exhausted
}
