package metrics

import (
	"github.com/san-kum/threebody/internal/scene"
	"github.com/san-kum/threebody/internal/tracer"
)

// Metric accumulates a statistic over rendered frames.
type Metric interface {
	Name() string
	Observe(f *scene.Frame)
	Value() float64
	Reset()
}

// ClosureRate is the fraction of traced equipotentials that closed.
type ClosureRate struct {
	name     string
	closed   int
	contours int
}

func NewClosureRate() *ClosureRate {
	return &ClosureRate{name: "closure_rate"}
}

func (c *ClosureRate) Name() string { return c.name }

func (c *ClosureRate) Observe(f *scene.Frame) {
	c.closed += f.Stats.Closed
	c.contours += f.Stats.Contours
}

func (c *ClosureRate) Value() float64 {
	if c.contours == 0 {
		return 0
	}
	return float64(c.closed) / float64(c.contours)
}

func (c *ClosureRate) Reset() {
	c.closed = 0
	c.contours = 0
}

// Occlusion is the fraction of streamlines that ended on a body.
type Occlusion struct {
	name     string
	collided int
	traced   int
}

func NewOcclusion() *Occlusion {
	return &Occlusion{name: "occlusion"}
}

func (o *Occlusion) Name() string {
	return o.name
}

func (o *Occlusion) Observe(f *scene.Frame) {
	o.collided += f.Stats.StreamStops[tracer.Collided]
	o.traced += f.Stats.Streamlines
}

func (o *Occlusion) Value() float64 {
	if o.traced == 0 {
		return 0
	}
	return float64(o.collided) / float64(o.traced)
}

func (o *Occlusion) Reset() {
	o.collided = 0
	o.traced = 0
}

// Effort is the mean number of integration steps per frame.
type Effort struct {
	name   string
	steps  int
	frames int
}

func NewEffort() *Effort {
	return &Effort{name: "steps_per_frame"}
}

func (e *Effort) Name() string { return e.name }

func (e *Effort) Observe(f *scene.Frame) {
	e.steps += f.Stats.Iterations
	e.frames++
}

func (e *Effort) Value() float64 {
	if e.frames == 0 {
		return 0
	}
	return float64(e.steps) / float64(e.frames)
}

func (e *Effort) Reset() {
	e.steps = 0
	e.frames = 0
}

// Defaults returns the standard frame metrics.
func Defaults() []Metric {
	return []Metric{NewClosureRate(), NewOcclusion(), NewEffort()}
}
