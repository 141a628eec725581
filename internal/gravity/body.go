package gravity

import (
	"math"

	"github.com/san-kum/threebody/internal/vec"
)

// Body is a point mass. Mass is fixed at creation; Origin is moved every frame
// by the orbit kinematics.
type Body struct {
	Mass   float64
	Origin vec.Vec2
}

func NewBody(mass float64, origin vec.Vec2) *Body {
	return &Body{Mass: mass, Origin: origin}
}

// Radius is the drawn radius of the body in normalised units. Field lines
// stop where they would enter this disc.
func (b *Body) Radius() float64 {
	return BodyRadius(b.Mass)
}

// RingRadius is the radius of the halo ring and of any moon orbit.
func (b *Body) RingRadius() float64 {
	return math.Sqrt(b.Mass) / 10
}

// BodyRadius maps a mass to its drawn radius: a disc of sqrt(mass)*50 pixels
// across on a 640 pixel canvas.
func BodyRadius(mass float64) float64 {
	return math.Sqrt(mass) * 25 / 320
}

// TotalMass sums the masses.
func TotalMass(bodies []*Body) float64 {
	m := 0.0
	for _, b := range bodies {
		m += b.Mass
	}
	return m
}

// ReducedMass is 1 / sum(1/m).
func ReducedMass(bodies []*Body) float64 {
	inv := 0.0
	for _, b := range bodies {
		inv += 1 / b.Mass
	}
	if inv == 0 {
		return 0
	}
	return 1 / inv
}

// CenterOfMass is the mass-weighted mean position. It is the origin when
// there are no bodies.
func CenterOfMass(bodies []*Body) vec.Vec2 {
	var cm vec.Vec2
	mass := 0.0
	for _, b := range bodies {
		cm = cm.Add(b.Origin.Scale(b.Mass))
		mass += b.Mass
	}
	if mass == 0 {
		return vec.Vec2{}
	}
	return cm.Scale(1 / mass)
}
