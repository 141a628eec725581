package vec

import "math"

// Circle returns n points evenly spaced around the circle of radius r at c,
// starting on the positive x axis. Used to polygonise discs and rings.
func Circle(c Vec2, r float64, n int) []Vec2 {
	pts := make([]Vec2, n)
	for i := range pts {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		pts[i] = Vec2{X: c.X + r*cos, Y: c.Y + r*sin}
	}
	return pts
}
