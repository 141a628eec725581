package tracer

import "github.com/san-kum/threebody/internal/vec"

// Stop records why a trace ended.
type Stop int

const (
	Exhausted Stop = iota // step budget used up
	Escaped               // field magnitude passed the escape threshold
	Collided              // entered a body
	Closed                // the two halves of a contour met
	Stalled               // field was exactly zero or the point became invalid
)

func (s Stop) String() string {
	switch s {
	case Exhausted:
		return "exhausted"
	case Escaped:
		return "escaped"
	case Collided:
		return "collided"
	case Closed:
		return "closed"
	case Stalled:
		return "stalled"
	}
	return "unknown"
}

// Polyline is a traced curve. Segment i joins Points[i] and Points[i+1] and is
// drawn only when Visible(i).
type Polyline struct {
	Points     []vec.Vec2
	Period     int
	Duty       int
	Iterations int
	Stop       Stop
}

// Segments is the number of segments in the curve.
func (p *Polyline) Segments() int {
	if len(p.Points) < 2 {
		return 0
	}
	return len(p.Points) - 1
}

func (p *Polyline) Empty() bool {
	return len(p.Points) < 2
}

// Visible applies the duty cycle to segment i.
func (p *Polyline) Visible(i int) bool {
	return visible(i, p.Period, p.Duty)
}

// Dashes splits the curve into its drawn runs.
func (p *Polyline) Dashes() [][]vec.Vec2 {
	return dashes(p.Points, p.Period, p.Duty)
}

// Length is the arc length of the whole curve, drawn or not.
func (p *Polyline) Length() float64 {
	return arcLength(p.Points)
}

func visible(i, period, duty int) bool {
	if period <= 0 {
		return true
	}
	return i%period < duty
}

func dashes(pts []vec.Vec2, period, duty int) [][]vec.Vec2 {
	var out [][]vec.Vec2
	var run []vec.Vec2
	for i := 0; i+1 < len(pts); i++ {
		if !visible(i, period, duty) {
			if len(run) > 0 {
				out = append(out, run)
				run = nil
			}
			continue
		}
		if len(run) == 0 {
			run = append(run, pts[i])
		}
		run = append(run, pts[i+1])
	}
	if len(run) > 0 {
		out = append(out, run)
	}
	return out
}

func arcLength(pts []vec.Vec2) float64 {
	l := 0.0
	for i := 1; i < len(pts); i++ {
		l += vec.Distance(pts[i-1], pts[i])
	}
	return l
}
