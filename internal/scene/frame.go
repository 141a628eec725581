package scene

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/threebody/internal/field"
	"github.com/san-kum/threebody/internal/gravity"
	"github.com/san-kum/threebody/internal/palette"
	"github.com/san-kum/threebody/internal/tracer"
	"github.com/san-kum/threebody/internal/vec"
)

const arrowGrid = 8

type CircleKind int

const (
	OrbitCircle CircleKind = iota
	RingCircle
	CrossCircle
	CenterOrbitCircle
)

type Circle struct {
	Center vec.Vec2
	Radius float64
	Kind   CircleKind
}

type Segment struct {
	A, B vec.Vec2
}

// Arrow is a coarse field sample drawn from the grid cache.
type Arrow struct {
	At vec.Vec2
	V  vec.Vec2
}

// Mover is anything drawn as a head with a fading tail.
type Mover struct {
	Position vec.Vec2
	Trail    []vec.Vec2 // most recent first
	Cap      int
	Colours  []colorful.Color
	Head     float64 // head diameter in normalised units, 0 for none
}

type Disc struct {
	Center vec.Vec2
	Radius float64
}

// Stats summarises the tracing work of one frame.
type Stats struct {
	Streamlines  int
	Contours     int
	Closed       int
	Iterations   int
	StreamStops  map[tracer.Stop]int
	ContourStops map[tracer.Stop]int
}

// Frame is the complete draw list of one frame in normalised [-1, 1]
// coordinates, ordered back to front.
type Frame struct {
	Index        int
	Phase        float64
	Scheme       palette.Scheme
	Flow         *field.Grid[float64] // background texture in [0, 1), may be nil
	Arrows       []Arrow
	Streamlines  []*tracer.Polyline
	Contours     []*tracer.Contour
	Circles      []Circle
	Segments     []Segment
	Moons        []Mover
	Particles    []Mover
	CenterOfMass *vec.Vec2
	Bodies       []Disc
	Stats        Stats
}

// Frame traces the field for the current body positions and returns the
// draw list.
func (s *Scene) Frame() *Frame {
	f := &Frame{
		Index:  s.Frames,
		Phase:  s.Phase,
		Scheme: s.Scheme,
		Stats: Stats{
			StreamStops:  make(map[tracer.Stop]int),
			ContourStops: make(map[tracer.Stop]int),
		},
	}
	t := s.Toggles
	cm := gravity.CenterOfMass(s.Bodies)
	if s.Flow != nil {
		f.Flow = s.Flow.Texture
	}

	if s.Config.Grid.Arrows {
		s.Field.Calculate()
		f.Arrows = s.arrows()
	}

	discs := tracer.BodyDiscs(s.Bodies)
	for _, seed := range s.seeds {
		pl := tracer.Streamline(s.Field, seed, discs, s.stream)
		f.Stats.Streamlines++
		f.Stats.Iterations += pl.Iterations
		f.Stats.StreamStops[pl.Stop]++
		if !pl.Empty() {
			f.Streamlines = append(f.Streamlines, pl)
		}
	}

	for _, seed := range s.contourSeeds(cm) {
		f.addContour(tracer.Equipotential(s.Field, seed, s.contour))
	}
	if t.Energy {
		if seed, ok := gravity.EnergySeed(s.Field, t.EnergyLevel); ok {
			f.addContour(tracer.Equipotential(s.Field, seed, s.contour))
		}
	}
	if t.Isolines {
		for _, b := range s.Bodies {
			seed := b.Origin.Add(vec.New(1.5*b.RingRadius(), 0))
			f.addContour(tracer.Isoline(s.Field, seed, tracer.IsolineStyle()))
		}
	}

	if t.Orbit {
		f.Circles = append(f.Circles, Circle{Radius: s.Ring.Radius, Kind: OrbitCircle})
	}
	for i, b := range s.Bodies {
		if t.Rings[i] {
			f.Circles = append(f.Circles, Circle{Center: b.Origin, Radius: b.RingRadius(), Kind: RingCircle})
		}
		for j, o := range s.Bodies {
			if t.Cross[i][j] {
				f.Circles = append(f.Circles, Circle{Center: b.Origin, Radius: vec.Distance(b.Origin, o.Origin), Kind: CrossCircle})
			}
			if t.Lines[i][j] {
				f.Segments = append(f.Segments, Segment{A: b.Origin, B: o.Origin})
			}
		}
	}

	for _, m := range s.Moons {
		f.Moons = append(f.Moons, Mover{
			Position: m.Position,
			Trail:    m.Trail.Points(),
			Cap:      m.Trail.Cap(),
			Colours:  s.Scheme.Trail[:1],
			Head:     moonHead,
		})
	}
	for _, p := range s.Particles {
		f.Particles = append(f.Particles, Mover{
			Position: p.Position,
			Trail:    p.Trail.Points(),
			Cap:      p.Trail.Cap(),
			Colours:  s.Scheme.Trail,
		})
	}

	if t.CenterOfMass {
		f.Circles = append(f.Circles, Circle{Radius: cm.Norm(), Kind: CenterOrbitCircle})
		c := cm
		f.CenterOfMass = &c
	}

	for _, b := range s.Bodies {
		f.Bodies = append(f.Bodies, Disc{Center: b.Origin, Radius: b.Radius()})
	}
	return f
}

// moonHead is a 6 pixel circle on the 640 pixel reference canvas.
const moonHead = 6.0 / 320

func (f *Frame) addContour(c *tracer.Contour) {
	f.Stats.Contours++
	f.Stats.Iterations += c.Iterations
	f.Stats.ContourStops[c.Stop]++
	if c.Closed {
		f.Stats.Closed++
	}
	if c.Points() != nil {
		f.Contours = append(f.Contours, c)
	}
}

// contourSeeds lists the equipotential seeds enabled by the toggles.
func (s *Scene) contourSeeds(cm vec.Vec2) []vec.Vec2 {
	var seeds []vec.Vec2
	t := s.Toggles
	dir := vec.Polar(1, s.Phase)
	r := s.Ring.Radius

	if t.Equipotential {
		origin := cm.Scale(0.5)
		for i := 0; i < contourSeeds; i++ {
			seeds = append(seeds, origin.Add(vec.New(float64(i)/contourSeeds, 0)))
		}
	}
	if t.EqPX {
		seeds = append(seeds, vec.Vec2{})
		for i := 1; i <= contourSeeds; i++ {
			v := dir.Scale(0.75 * r * float64(i) / contourSeeds)
			seeds = append(seeds, v, v.Scale(-1))
		}
	}
	if t.EqPY {
		for i := 0; i <= contourSeeds; i++ {
			seeds = append(seeds, dir.Scale(r*(1.5+float64(i)/contourSeeds)))
		}
	}
	return seeds
}

func (s *Scene) arrows() []Arrow {
	out := make([]Arrow, 0, arrowGrid*arrowGrid)
	for ix := 0; ix < arrowGrid; ix++ {
		for iy := 0; iy < arrowGrid; iy++ {
			x := (float64(ix)+0.5)/arrowGrid*2 - 1
			y := (float64(iy)+0.5)/arrowGrid*2 - 1
			out = append(out, Arrow{At: vec.New(x, y), V: s.Field.Sample(x, y)})
		}
	}
	return out
}

// ArrowLength maps a field magnitude to a drawn arrow length, capped at 16
// pixels of the reference canvas.
func ArrowLength(v vec.Vec2) float64 {
	return math.Min(v.Norm(), 16) / 320
}
