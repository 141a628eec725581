package orbit

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/threebody/internal/gravity"
	"github.com/san-kum/threebody/internal/vec"
)

var _ = Describe("Ring", func() {
	var ring *Ring

	BeforeEach(func() {
		ring = NewRing(DefaultRadius, DefaultPeriod)
	})

	It("completes one turn per period", func() {
		Expect(ring.Phase(0)).To(Equal(0.0))
		Expect(ring.Phase(DefaultPeriod)).To(BeNumerically("~", 2*math.Pi, 1e-12))
		Expect(ring.Phase(DefaultPeriod / 4)).To(BeNumerically("~", math.Pi/2, 1e-12))
	})

	It("spaces bodies evenly on the circle", func() {
		bodies := []*gravity.Body{
			gravity.NewBody(1, vec.Vec2{}),
			gravity.NewBody(2, vec.Vec2{}),
			gravity.NewBody(3, vec.Vec2{}),
		}
		ring.Place(bodies, 0.3)

		for i, b := range bodies {
			Expect(b.Origin.Norm()).To(BeNumerically("~", DefaultRadius, 1e-12))
			next := bodies[(i+1)%len(bodies)]
			Expect(vec.Distance(b.Origin, next.Origin)).To(BeNumerically("~", DefaultRadius*math.Sqrt(3), 1e-12))
		}
		Expect(bodies[0].Origin.Heading()).To(BeNumerically("~", 0.3, 1e-12))
	})

	It("keeps a zero period still", func() {
		Expect(NewRing(1, 0).Phase(100)).To(Equal(0.0))
	})
})

var _ = Describe("Moon", func() {
	var parent *gravity.Body

	BeforeEach(func() {
		parent = gravity.NewBody(4, vec.New(0.35, 0))
	})

	It("orbits at the parent's ring radius", func() {
		m := NewMoon(parent, math.Pi/2, 0)
		Expect(m.Radius).To(BeNumerically("~", 0.2, 1e-12))
		Expect(m.Position.X).To(BeNumerically("~", 0.35, 1e-12))
		Expect(m.Position.Y).To(BeNumerically("~", 0.2, 1e-12))
	})

	It("follows the parent and turns faster than the ring", func() {
		m := NewMoon(parent, 0, 0)
		parent.Origin = vec.New(-0.35, 0)
		m.Advance(math.Pi / 8)

		Expect(m.Phase).To(BeNumerically("~", math.Pi/2, 1e-12))
		Expect(m.Position.X).To(BeNumerically("~", -0.35, 1e-12))
		Expect(m.Position.Y).To(BeNumerically("~", 0.2, 1e-12))
	})

	It("records every second position", func() {
		m := NewMoon(parent, 0, 10)
		Expect(m.Trail.Len()).To(Equal(0))
		for i := 0; i < 5; i++ {
			m.Advance(float64(i))
		}
		Expect(m.Trail.Len()).To(Equal(3))
	})
})

var _ = Describe("Trail", func() {
	It("keeps the most recent entries first", func() {
		t := NewTrail(3, 1)
		for i := 1; i <= 5; i++ {
			Expect(t.Push(vec.New(float64(i), 0))).To(BeTrue())
		}
		Expect(t.Len()).To(Equal(3))
		Expect(t.Points()).To(Equal([]vec.Vec2{{X: 5}, {X: 4}, {X: 3}}))
	})

	It("decimates pushes", func() {
		t := NewTrail(10, 3)
		recorded := 0
		for i := 0; i < 9; i++ {
			if t.Push(vec.New(float64(i), 0)) {
				recorded++
			}
		}
		Expect(recorded).To(Equal(3))
		Expect(t.At(0).X).To(Equal(8.0))
	})

	It("records nothing without capacity", func() {
		t := NewTrail(0, 1)
		Expect(t.Push(vec.New(1, 1))).To(BeFalse())
		Expect(t.Len()).To(Equal(0))
		Expect(t.Points()).To(BeEmpty())
	})

	It("clears", func() {
		t := NewTrail(4, 1)
		t.Push(vec.New(1, 1))
		t.Clear()
		Expect(t.Len()).To(Equal(0))
	})

	DescribeTable("tapers near the cap",
		func(i int, want float64) {
			Expect(NewTrail(600, 2).Fade(i, TrailFade)).To(BeNumerically("~", want, 1e-12))
		},
		Entry("body of the trail", 10, 1.0),
		Entry("start of the taper", 592, 1.0),
		Entry("inside the taper", 596, 0.5),
		Entry("at the cap", 600, 0.0),
	)
})
