package scene

import (
	"math"

	"github.com/san-kum/threebody/internal/config"
	"github.com/san-kum/threebody/internal/field"
	"github.com/san-kum/threebody/internal/rng"
	"github.com/san-kum/threebody/internal/vec"
)

const (
	flowCells = 6 // coarse grid size of the grid-backed kinds
	flowStep  = 1.0
	flowStart = 0.6 // vignette starts fading at this radius
)

// Flow kinds.
const (
	HashedFlow = "hashed"
	RandomFlow = "random"
	UnitFlow   = "unit"
)

var flowKinds = []string{HashedFlow, RandomFlow, UnitFlow}

// Flow is a static background texture in [0, 1): tracer particles advected
// through a seeded random flow, their visit counts shaded exponentially and
// faded towards the edge.
type Flow struct {
	Kind    string
	Texture *field.Grid[float64]
}

// gridFlow reads a coarse vector grid in texture coordinates, holding points
// that leave it at the edge.
type gridFlow struct {
	g *field.Grid[vec.Vec2]
	k float64
}

func (f gridFlow) At(ix, iy int) vec.Vec2 {
	return f.Get(float64(ix), float64(iy))
}

func (f gridFlow) Get(x, y float64) vec.Vec2 {
	return f.g.Get(f.g.Clamp(x*f.k, y*f.k))
}

func newFlow(cfg config.FlowConfig, src rng.Source) *Flow {
	res := cfg.Resolution
	kind := rng.Sample(src.Next(), flowKinds)

	var flow field.Field[vec.Vec2]
	switch kind {
	case HashedFlow:
		sf := field.NewScaledFlow(cfg.Scale/float64(res), cfg.Scale/float64(res))
		sf.X0 = src.Next() * 1000
		sf.Y0 = src.Next() * 1000
		flow = sf
	case RandomFlow:
		g := field.NewRandomVectorGrid(flowCells, flowCells, src)
		flow = gridFlow{g: g, k: float64(flowCells-1) / float64(res)}
	default:
		g := field.NewUnitVectorGrid(flowCells, flowCells, src)
		flow = gridFlow{g: g, k: float64(flowCells-1) / float64(res)}
	}

	tex := field.NewGrid[float64](res, res)
	for i := 0; i < cfg.Tracers; i++ {
		x0, y0 := src.Next()*float64(res), src.Next()*float64(res)
		field.IncrementFlowTexture(x0, y0, flowStep, cfg.Steps, flow, tex)
	}
	field.ScaleExpHeightmap(cfg.Alpha, tex)

	half := float64(res) / 2
	field.FillHeightmap(tex, func(x, y int) float64 {
		r := math.Hypot(float64(x)+0.5-half, float64(y)+0.5-half) / half
		return tex.At(x, y) * (1 - rng.NClamp(r, flowStart, 1))
	})
	return &Flow{Kind: kind, Texture: tex}
}

// composeFlow draws from a stream of its own so the background never moves
// the main draw sequence.
func (s *Scene) composeFlow() {
	src := rng.New(s.Config.Seed + "/flow")
	s.Toggles.Flow = src.Next() < s.Config.Flow.Probability
	if s.Toggles.Flow {
		s.Flow = newFlow(s.Config.Flow, src)
	}
}
