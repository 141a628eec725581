package orbit

import (
	"math"

	"github.com/san-kum/threebody/internal/gravity"
	"github.com/san-kum/threebody/internal/vec"
)

const (
	DefaultRadius = 0.35
	DefaultPeriod = 90.0 // seconds per revolution

	// MoonPhaseRate is how much faster moons turn than the ring.
	MoonPhaseRate = 4.0
	TrailHistory  = 600
	TrailSkip     = 2
	TrailFade     = 8
)

// Ring places bodies at equal angles on a circle that turns rigidly.
type Ring struct {
	Radius float64
	Period float64
}

func NewRing(radius, period float64) *Ring {
	return &Ring{Radius: radius, Period: period}
}

// Phase is the ring angle after t seconds.
func (r *Ring) Phase(t float64) float64 {
	if r.Period == 0 {
		return 0
	}
	return 2 * math.Pi * t / r.Period
}

// Position is the location of body i of n at the given ring phase.
func (r *Ring) Position(phase float64, i, n int) vec.Vec2 {
	return vec.Polar(r.Radius, phase+2*math.Pi*float64(i)/float64(n))
}

// Place moves every body to its position at the given phase.
func (r *Ring) Place(bodies []*gravity.Body, phase float64) {
	for i, b := range bodies {
		b.Origin = r.Position(phase, i, len(bodies))
	}
}
