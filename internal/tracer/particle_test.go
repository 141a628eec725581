package tracer

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/threebody/internal/gravity"
	"github.com/san-kum/threebody/internal/vec"
)

var _ = Describe("Particle", func() {
	It("drifts freely in an empty field and bounces off the wall", func() {
		f := gravity.NewField(nil, 4, 4)
		p := NewParticle(vec.New(0.99, 0))
		p.Velocity = vec.New(20, 0)

		p.Update(f, 0.001, 0.001)
		Expect(p.Velocity.X).To(Equal(-20.0))
		Expect(p.Position.X).To(BeNumerically("~", 0.98, 1e-12))
		Expect(p.Trail.Len()).To(Equal(2))
	})

	It("reflects once per wall contact and never ends outside the square", func() {
		f := gravity.NewField(nil, 4, 4)
		p := NewParticle(vec.New(0.5, -0.5))
		p.Velocity = vec.New(600, -600)

		p.Update(f, 0, 0.001)
		Expect(p.Position).To(Equal(vec.New(1, -1)))
		Expect(p.Velocity).To(Equal(vec.New(-600, 600)))

		p.Update(f, 0, 0.001)
		Expect(p.Position.X).To(BeNumerically("~", 0.4, 1e-12))
		Expect(p.Position.Y).To(BeNumerically("~", -0.4, 1e-12))
		Expect(p.Velocity).To(Equal(vec.New(-600, 600)))

		for i := 0; i < 50; i++ {
			p.Update(f, 0.0035, 0.001)
			Expect(math.Abs(p.Position.X)).To(BeNumerically("<=", 1))
			Expect(math.Abs(p.Position.Y)).To(BeNumerically("<=", 1))
			Expect(math.Abs(p.Velocity.X)).To(Equal(600.0))
		}
	})

	It("caps the acceleration near a body", func() {
		f := gravity.NewField([]*gravity.Body{gravity.NewBody(1, vec.Vec2{})}, 4, 4)
		p := NewParticle(vec.New(0.01, 0))

		p.Update(f, 0, 0.001)
		Expect(p.Velocity.Norm()).To(BeNumerically("~", ParticleMaxAccel*0.001, 1e-9))
		Expect(p.Velocity.X).To(BeNumerically("<", 0))
	})

	It("fills its trail when warmed", func() {
		f := gravity.NewField([]*gravity.Body{gravity.NewBody(1, vec.New(0.3, 0.3))}, 4, 4)
		p := NewParticle(vec.New(-0.5, 0.2))
		p.Warm(f, 1, 0.01)
		Expect(p.Trail.Len()).To(Equal(ParticleHistory))
		Expect(p.Position.IsValid()).To(BeTrue())
	})
})
