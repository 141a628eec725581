package orbit

import (
	"github.com/san-kum/threebody/internal/gravity"
	"github.com/san-kum/threebody/internal/vec"
)

// Moon circles its parent body at the parent's ring radius. The parent is
// shared with the scene and never owned.
type Moon struct {
	Parent      *gravity.Body
	Phase       float64
	PhaseOffset float64
	Radius      float64
	Position    vec.Vec2
	Trail       *Trail
}

// NewMoon creates a moon with a trail of history entries and places it.
func NewMoon(parent *gravity.Body, phaseOffset float64, history int) *Moon {
	m := &Moon{
		Parent:      parent,
		PhaseOffset: phaseOffset,
		Radius:      parent.RingRadius(),
		Trail:       NewTrail(history, TrailSkip),
	}
	m.Update()
	return m
}

// Update recomputes the position from the parent and logs it to the trail.
func (m *Moon) Update() {
	m.Position = m.Parent.Origin.Add(vec.Polar(m.Radius, m.Phase+m.PhaseOffset))
	m.Trail.Push(m.Position)
}

// Advance sets the phase from the ring phase and updates.
func (m *Moon) Advance(ringPhase float64) {
	m.Phase = MoonPhaseRate * ringPhase
	m.Update()
}
