package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/threebody/internal/vec"
)

func TestEulerStep(t *testing.T) {
	integ := NewEuler()
	got := integ.Step(vec.New(1, 1), vec.New(2, -4), 0.5)
	if got != vec.New(2, -1) {
		t.Errorf("Euler step = %v", got)
	}
}

func TestSemiImplicitOrbit(t *testing.T) {
	integ := NewSemiImplicit(0)

	// unit circular orbit around a unit mass at the origin
	p, v := vec.New(1, 0), vec.New(0, 1)
	dt := 0.001
	steps := int(2 * math.Pi / dt)

	for i := 0; i < steps; i++ {
		r := p.Norm()
		a := p.Scale(-1 / (r * r * r))
		p, v = integ.Step(p, v, a, dt)
	}

	if math.Abs(p.Norm()-1) > 1e-2 {
		t.Errorf("radius drifted to %.6f", p.Norm())
	}
	if vec.Distance(p, vec.New(1, 0)) > 2e-2 {
		t.Errorf("did not return after one period: %v", p)
	}
}

func TestSemiImplicitSpeedCap(t *testing.T) {
	integ := NewSemiImplicit(3)
	_, v := integ.Step(vec.Vec2{}, vec.New(0, 0), vec.New(100, 0), 1)
	if math.Abs(v.Norm()-3) > 1e-12 {
		t.Errorf("speed not capped: %v", v.Norm())
	}
}

func BenchmarkEuler(b *testing.B) {
	integ := NewEuler()
	p := vec.New(1, 0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p = integ.Step(p, p.Perp(), 0.001)
	}
}
