package vec

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec2 is a point or displacement in the plane.
type Vec2 r2.Vec

// New returns the vector (x, y).
func New(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Polar returns the vector of length r at angle theta.
func Polar(r, theta float64) Vec2 {
	sin, cos := math.Sincos(theta)
	return Vec2{X: r * cos, Y: r * sin}
}

func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2(r2.Add(r2.Vec(v), r2.Vec(w)))
}

func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2(r2.Sub(r2.Vec(v), r2.Vec(w)))
}

func (v Vec2) Scale(k float64) Vec2 {
	return Vec2(r2.Scale(k, r2.Vec(v)))
}

func (v Vec2) Dot(w Vec2) float64 {
	return r2.Dot(r2.Vec(v), r2.Vec(w))
}

// Norm is the Euclidean length.
func (v Vec2) Norm() float64 {
	return r2.Norm(r2.Vec(v))
}

func (v Vec2) Norm2() float64 {
	return r2.Norm2(r2.Vec(v))
}

func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalize returns the unit vector along v, or the zero vector when v is zero.
func (v Vec2) Normalize() Vec2 {
	if v.IsZero() {
		return Vec2{}
	}
	return Vec2(r2.Unit(r2.Vec(v)))
}

// Limit rescales v so its length lies in [lo, hi]. The zero vector has no
// direction and is returned unchanged.
func (v Vec2) Limit(lo, hi float64) Vec2 {
	n := v.Norm()
	switch {
	case n == 0:
		return v
	case n > hi:
		return v.Scale(hi / n)
	case n < lo:
		return v.Scale(lo / n)
	}
	return v
}

// Perp rotates v by +90 degrees.
func (v Vec2) Perp() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// Heading is the angle of v measured from the positive x axis.
func (v Vec2) Heading() float64 {
	return math.Atan2(v.Y, v.X)
}

func (v Vec2) Lerp(w Vec2, s float64) Vec2 {
	return v.Scale(1 - s).Add(w.Scale(s))
}

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Distance between two points.
func Distance(a, b Vec2) float64 {
	return a.Sub(b).Norm()
}

// SegmentDistance is the distance from p to the closest point of segment ab.
func SegmentDistance(p, a, b Vec2) float64 {
	ab := b.Sub(a)
	l2 := ab.Norm2()
	if l2 == 0 {
		return Distance(p, a)
	}
	t := p.Sub(a).Dot(ab) / l2
	t = math.Max(0, math.Min(1, t))
	return Distance(p, a.Add(ab.Scale(t)))
}
