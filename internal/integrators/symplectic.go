package integrators

import "github.com/san-kum/threebody/internal/vec"

// SemiImplicit is the symplectic Euler update for a particle: velocity is
// advanced from the acceleration first and the position then moves with the
// new velocity. MaxSpeed, when positive, caps the velocity after the kick.
type SemiImplicit struct {
	MaxSpeed float64
}

func NewSemiImplicit(maxSpeed float64) *SemiImplicit {
	return &SemiImplicit{MaxSpeed: maxSpeed}
}

func (s *SemiImplicit) Step(p, v, a vec.Vec2, dt float64) (vec.Vec2, vec.Vec2) {
	v = v.Add(a.Scale(dt))
	if s.MaxSpeed > 0 {
		if n := v.Norm(); n > s.MaxSpeed {
			v = v.Scale(s.MaxSpeed / n)
		}
	}
	return p.Add(v.Scale(dt)), v
}
