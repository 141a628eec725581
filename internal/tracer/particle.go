package tracer

import (
	"math"

	"github.com/san-kum/threebody/internal/field"
	"github.com/san-kum/threebody/internal/integrators"
	"github.com/san-kum/threebody/internal/orbit"
	"github.com/san-kum/threebody/internal/vec"
)

const (
	ParticleMaxAccel = 5e2
	ParticleMaxSpeed = 1e3
	ParticleHistory  = 100
)

// Particle is a massless tracer pushed around by the field. Acceleration
// and speed are capped, and it bounces off the walls of the [-1, 1] square.
type Particle struct {
	Position vec.Vec2
	Velocity vec.Vec2
	MaxAccel float64
	Trail    *orbit.Trail

	integ *integrators.SemiImplicit
}

func NewParticle(origin vec.Vec2) *Particle {
	p := &Particle{
		Position: origin,
		MaxAccel: ParticleMaxAccel,
		Trail:    orbit.NewTrail(ParticleHistory, 1),
		integ:    integrators.NewSemiImplicit(ParticleMaxSpeed),
	}
	p.Trail.Push(origin)
	return p
}

// Update advances the particle by dt using sub-steps of length target and
// logs the final position.
func (p *Particle) Update(f field.Field[vec.Vec2], dt, target float64) {
	n := int(math.Floor(dt/target)) + 1
	for i := 0; i < n; i++ {
		a := f.Get(p.Position.X, p.Position.Y)
		if norm := a.Norm(); norm > p.MaxAccel {
			a = a.Scale(p.MaxAccel / norm)
		}
		p.Position, p.Velocity = p.integ.Step(p.Position, p.Velocity, a, target)
		p.Position.X, p.Velocity.X = bounce(p.Position.X, p.Velocity.X)
		p.Position.Y, p.Velocity.Y = bounce(p.Position.Y, p.Velocity.Y)
	}
	p.Trail.Push(p.Position)
}

// bounce puts a coordinate that crossed a wall back on it and turns the
// velocity inward, so a particle reflects once per contact.
func bounce(x, v float64) (float64, float64) {
	switch {
	case x > 1:
		return 1, -math.Abs(v)
	case x < -1:
		return -1, math.Abs(v)
	}
	return x, v
}

// Warm fills the trail by spreading delta seconds over a full history of
// updates.
func (p *Particle) Warm(f field.Field[vec.Vec2], delta, target float64) {
	dt := delta / float64(p.Trail.Cap())
	for i := 0; i < p.Trail.Cap(); i++ {
		p.Update(f, dt, target)
	}
}
