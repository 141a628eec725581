package integrators

import "github.com/san-kum/threebody/internal/vec"

// Stepper advances a point through a velocity field by one fixed step.
type Stepper interface {
	Step(p, v vec.Vec2, dt float64) vec.Vec2
}

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(p, v vec.Vec2, dt float64) vec.Vec2 {
	return p.Add(v.Scale(dt))
}
