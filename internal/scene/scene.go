package scene

import (
	"fmt"
	"math"

	"github.com/san-kum/threebody/internal/config"
	"github.com/san-kum/threebody/internal/gravity"
	"github.com/san-kum/threebody/internal/orbit"
	"github.com/san-kum/threebody/internal/palette"
	"github.com/san-kum/threebody/internal/rng"
	"github.com/san-kum/threebody/internal/tracer"
	"github.com/san-kum/threebody/internal/vec"
)

const (
	maxStartTime    = 100.0 // seconds
	contourSeeds    = 3
	particleCount   = 3
	particleTarget  = 0.001
	energyMin       = -8.0
	energyMax       = -2.0
	energyChance    = 0.1
	particleChance  = 0.15
	isolineChance   = 0.1
	featureChance   = 0.2
	orbitChance     = 0.8
	generatedScheme = "generated"
)

// Toggles are the seeded draw switches of a scene.
type Toggles struct {
	Equipotential bool     `json:"equipotential" yaml:"equipotential"`
	EqPX          bool     `json:"eqpx" yaml:"eqpx"`
	EqPY          bool     `json:"eqpy" yaml:"eqpy"`
	CenterOfMass  bool     `json:"center_of_mass" yaml:"center_of_mass"`
	Orbit         bool     `json:"orbit" yaml:"orbit"`
	Rings         []bool   `json:"rings" yaml:"rings"`
	Cross         [][]bool `json:"cross" yaml:"cross"`
	Lines         [][]bool `json:"lines" yaml:"lines"`
	Energy        bool     `json:"energy" yaml:"energy"`
	EnergyLevel   float64  `json:"energy_level" yaml:"energy_level"`
	Particles     bool     `json:"particles" yaml:"particles"`
	Isolines      bool     `json:"isolines" yaml:"isolines"`
	Flow          bool     `json:"flow" yaml:"flow"`
}

// Scene holds everything one artwork needs between frames.
type Scene struct {
	Config    *config.Config
	Bodies    []*gravity.Body
	Moons     []*orbit.Moon
	Particles []*tracer.Particle
	Field     *gravity.Field
	Ring      *orbit.Ring
	Flow      *Flow // nil unless the flow toggle is on
	Scheme    palette.Scheme
	Toggles   Toggles

	// Drawn is the body count drawn from the seed, before any override.
	Drawn int
	// Draws is how many values composition took from the source.
	Draws int

	Elapsed float64
	Phase   float64
	Frames  int

	stream  tracer.StreamStyle
	contour tracer.ContourStyle
	seeds   []vec.Vec2
}

func bodyCount(x float64) int {
	switch {
	case x < 0.1:
		return 1
	case x < 0.9:
		return 2
	case x < 0.99:
		return 3
	}
	return 5
}

func moonCount(x float64) int {
	switch {
	case x < 0.8:
		return 1
	case x < 0.9:
		return 2
	}
	return 3
}

var dashStyles = [][2]int{{6, 4}, {1, 1}, {8, 2}, {4, 2}, {12, 6}}

// Compose builds the scene for cfg.Seed. It returns an error only when cfg
// does not validate.
func Compose(cfg *config.Config) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	src := &rng.Counter{Source: rng.New(cfg.Seed)}

	s := &Scene{
		Config:  cfg,
		Ring:    orbit.NewRing(cfg.Orbit.Radius, cfg.Orbit.Period),
		stream:  cfg.Streamline,
		contour: cfg.Equipotential,
		seeds:   tracer.Seeds(cfg.SeedsPerEdge),
	}

	s.Drawn = bodyCount(src.Next())
	n := s.Drawn
	if cfg.Bodies > 0 {
		n = cfg.Bodies
	}
	for i := 0; i < n; i++ {
		mass := rng.Uniform(src.Next(), cfg.Orbit.MassMin, cfg.Orbit.MassMax)
		s.Bodies = append(s.Bodies, gravity.NewBody(mass, vec.Vec2{}))
	}

	s.Elapsed = src.Next() * maxStartTime
	src.Next() // reserved
	s.Phase = s.Ring.Phase(s.Elapsed)
	s.Ring.Place(s.Bodies, s.Phase)

	for _, b := range s.Bodies {
		if src.Next() >= cfg.Moons.Probability {
			continue
		}
		count := moonCount(src.Next())
		offset := src.Next() * 2 * math.Pi
		for j := 0; j < count; j++ {
			src.Next() // per-moon phase, replaced by the even spread below
			history := 0
			if src.Next() < cfg.Moons.HistoryProbability {
				history = cfg.Moons.History
			}
			m := orbit.NewMoon(b, 2*math.Pi*float64(j)/float64(count)+offset, history)
			m.Trail.Clear()
			s.Moons = append(s.Moons, m)
		}
	}

	s.Field = gravity.NewField(s.Bodies, cfg.Grid.Width, cfg.Grid.Height)
	s.Field.Overshoot = cfg.Grid.Overshoot
	s.Field.Calculate()

	s.composeToggles(src, n)
	if err := s.composeStyle(src); err != nil {
		return nil, err
	}
	s.composeExtras(src)

	s.Draws = src.Draws
	s.composeFlow()
	return s, nil
}

func (s *Scene) composeToggles(src rng.Source, n int) {
	t := &s.Toggles
	t.Equipotential = src.Next() < featureChance
	if !t.Equipotential {
		t.EqPX = src.Next() < featureChance
		t.EqPY = src.Next() < featureChance
	}
	t.CenterOfMass = src.Next() < featureChance
	t.Orbit = src.Next() < orbitChance
	lines := src.Next() < featureChance

	p := 0.6 / float64(n)
	t.Rings = make([]bool, n)
	t.Cross = make([][]bool, n)
	t.Lines = make([][]bool, n)
	for i := 0; i < n; i++ {
		t.Rings[i] = src.Next() < p
		t.Cross[i] = make([]bool, n)
		t.Lines[i] = make([]bool, n)
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			t.Cross[i][j] = src.Next() < p
			t.Lines[i][j] = j > i && lines
		}
	}
}

func (s *Scene) composeStyle(src rng.Source) error {
	name := s.Config.Palette
	pick := src.Next()
	if name == "" {
		name = rng.Sample(pick, append(palette.Names(), generatedScheme))
	}
	if name == generatedScheme {
		s.Scheme = palette.Generate(src)
	} else {
		scheme, err := palette.Get(name)
		if err != nil {
			return fmt.Errorf("%w: %q", err, name)
		}
		s.Scheme = scheme
	}

	dash := rng.Sample(src.Next(), dashStyles)
	if s.stream.Period == 0 {
		s.stream.Period, s.stream.Duty = dash[0], dash[1]
	}
	return nil
}

func (s *Scene) composeExtras(src rng.Source) {
	t := &s.Toggles
	t.Energy = src.Next() < energyChance
	t.EnergyLevel = rng.Uniform(src.Next(), energyMin, energyMax)

	t.Particles = src.Next() < particleChance
	for i := 0; i < particleCount; i++ {
		p := vec.New(rng.Uniform(src.Next(), -0.9, 0.9), rng.Uniform(src.Next(), -0.9, 0.9))
		if t.Particles {
			s.Particles = append(s.Particles, tracer.NewParticle(p))
		}
	}
	for _, p := range s.Particles {
		p.Warm(s.Field, 1, particleTarget)
	}

	t.Isolines = src.Next() < isolineChance
}

// Advance moves the scene forward by dt seconds: bodies turn with the ring,
// moons follow at their faster rate, and particles drift in the field.
func (s *Scene) Advance(dt float64) {
	s.Elapsed += dt
	s.Phase = s.Ring.Phase(s.Elapsed)
	s.Ring.Place(s.Bodies, s.Phase)
	for _, m := range s.Moons {
		m.Advance(s.Phase)
	}
	for _, p := range s.Particles {
		p.Update(s.Field, dt, particleTarget)
	}
	s.Frames++
}

// StreamStyle is the streamline style in effect, after any seeded dash
// choice.
func (s *Scene) StreamStyle() tracer.StreamStyle {
	return s.stream
}

func (s *Scene) TotalMass() float64 {
	return gravity.TotalMass(s.Bodies)
}

func (s *Scene) ReducedMass() float64 {
	return gravity.ReducedMass(s.Bodies)
}
