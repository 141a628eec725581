package tracer

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/threebody/internal/gravity"
	"github.com/san-kum/threebody/internal/integrators"
	"github.com/san-kum/threebody/internal/vec"
)

var _ = Describe("Equipotential", func() {
	var (
		f     *gravity.Field
		style ContourStyle
		seed  vec.Vec2
	)

	BeforeEach(func() {
		f = gravity.NewField([]*gravity.Body{gravity.NewBody(1, vec.Vec2{})}, 16, 16)
		style = DefaultContourStyle()
		seed = vec.New(0.3, 0)
	})

	It("steps each half by Euler along the turned unit field", func() {
		c := Equipotential(f, seed, style)
		g := f.Get(seed.X, seed.Y).Normalize().Perp()
		step := integrators.NewEuler()
		Expect(c.Left[1]).To(Equal(step.Step(seed, g.Scale(-1), style.Delta)))
		Expect(c.Right[1]).To(Equal(step.Step(seed, g, style.Delta)))

		iso := Isoline(f, seed, IsolineStyle())
		raw := f.Get(seed.X, seed.Y).Perp()
		Expect(iso.Right[1]).To(Equal(step.Step(seed, raw, IsolineStyle().Delta)))
	})

	It("closes a circle around a single body", func() {
		c := Equipotential(f, seed, style)
		Expect(c.Closed).To(BeTrue())
		Expect(c.Stop).To(Equal(Closed))
		Expect(c.Iterations).To(BeNumerically(">", style.MinIterations))
		Expect(c.Iterations).To(BeNumerically("~", 315, 25))
		Expect(c.Gap()).To(BeNumerically("<", style.CloseTolerance))

		for _, p := range c.Points() {
			Expect(p.Norm()).To(BeNumerically("~", 0.3, 0.01))
		}
		pts := c.Points()
		Expect(pts[0]).To(Equal(pts[len(pts)-1]))
	})

	It("traces mirror-image halves", func() {
		c := Equipotential(f, seed, style)
		Expect(c.Left).To(HaveLen(len(c.Right)))
		for i := range c.Left {
			Expect(c.Left[i].X).To(Equal(c.Right[i].X))
			Expect(c.Left[i].Y).To(Equal(-c.Right[i].Y))
		}
		Expect(c.Left[1].Y).To(BeNumerically(">", 0))
	})

	It("brings the halves back together after the guard", func() {
		c := Equipotential(f, seed, style)
		gap := func(i int) float64 { return vec.Distance(c.Left[i], c.Right[i]) }

		widest := 0
		for i := range c.Left {
			if gap(i) > gap(widest) {
				widest = i
			}
		}
		Expect(widest).To(BeNumerically(">", style.MinIterations))
		for i := widest + 1; i < len(c.Left); i++ {
			Expect(gap(i)).To(BeNumerically("<", gap(i-1)))
		}
	})

	It("does not close before the minimum iteration count", func() {
		style.CloseTolerance = 1
		c := Equipotential(f, seed, style)
		Expect(c.Closed).To(BeTrue())
		Expect(c.Iterations).To(Equal(style.MinIterations + 2))
	})

	It("runs out of budget when it cannot close", func() {
		style.Steps = 50
		c := Equipotential(f, seed, style)
		Expect(c.Closed).To(BeFalse())
		Expect(c.Stop).To(Equal(Exhausted))
		Expect(c.Left).To(HaveLen(51))
		Expect(c.Points()).To(HaveLen(101))
	})

	It("draws nothing with no step budget", func() {
		style.Steps = 0
		c := Equipotential(f, seed, style)
		Expect(c.Points()).To(BeNil())
		Expect(c.Dashes()).To(BeEmpty())
	})

	It("escapes next to a body", func() {
		c := Equipotential(f, vec.New(0.005, 0), style)
		Expect(c.Stop).To(Equal(Escaped))
		Expect(c.Points()).To(BeNil())
	})

	It("stalls where forces cancel", func() {
		f = gravity.NewField([]*gravity.Body{
			gravity.NewBody(1, vec.New(-0.2, 0)),
			gravity.NewBody(1, vec.New(0.2, 0)),
		}, 16, 16)
		c := Equipotential(f, vec.Vec2{}, style)
		Expect(c.Stop).To(Equal(Stalled))
	})

	It("follows a level set of the potential", func() {
		f = gravity.NewField([]*gravity.Body{
			gravity.NewBody(2, vec.New(-0.2, 0.1)),
			gravity.NewBody(1, vec.New(0.25, -0.1)),
		}, 16, 16)
		style.Steps = 200
		c := Equipotential(f, vec.New(0, 0.6), style)
		phi := f.Potential(vec.New(0, 0.6))
		for _, p := range c.Points() {
			Expect(f.Potential(p)).To(BeNumerically("~", phi, math.Abs(phi)*0.02))
		}
	})
})

var _ = Describe("Isoline", func() {
	It("crawls along the level curve at field speed", func() {
		f := gravity.NewField([]*gravity.Body{gravity.NewBody(1, vec.Vec2{})}, 16, 16)
		c := Isoline(f, vec.New(0.3, 0), IsolineStyle())

		Expect(c.Closed).To(BeFalse())
		Expect(c.Stop).To(Equal(Exhausted))
		Expect(c.Left).To(HaveLen(257))
		Expect(c.Right).To(HaveLen(257))
		for _, p := range c.Points() {
			Expect(p.Norm()).To(BeNumerically("~", 0.3, 1e-3))
		}
		step := vec.Distance(c.Right[0], c.Right[1])
		Expect(step).To(BeNumerically("~", 1e-4/0.09, 1e-9))
		Expect(c.Dashes()).To(HaveLen(2))
	})
})
