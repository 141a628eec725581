package tracer

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/threebody/internal/gravity"
	"github.com/san-kum/threebody/internal/integrators"
	"github.com/san-kum/threebody/internal/vec"
)

var _ = Describe("Streamline", func() {
	var (
		body  *gravity.Body
		f     *gravity.Field
		discs []Disc
		style StreamStyle
	)

	BeforeEach(func() {
		body = gravity.NewBody(1, vec.Vec2{})
		f = gravity.NewField([]*gravity.Body{body}, 16, 16)
		discs = BodyDiscs(f.Bodies)
		style = DefaultStreamStyle()
	})

	It("stops at once when seeded on a body surface", func() {
		pl := Streamline(f, vec.New(body.Radius(), 0), discs, style)
		Expect(pl.Iterations).To(BeNumerically("<=", 1))
		Expect(pl.Empty()).To(BeTrue())
		Expect(pl.Stop).To(Equal(Collided))
	})

	It("draws nothing with no step budget", func() {
		style.Steps = 0
		pl := Streamline(f, vec.New(0.9, 0.9), discs, style)
		Expect(pl.Points).To(BeEmpty())
		Expect(pl.Iterations).To(Equal(0))
		Expect(pl.Segments()).To(Equal(0))
	})

	It("falls into the body and stops outside its disc", func() {
		pl := Streamline(f, vec.New(-1, 0.2), discs, style)
		Expect(pl.Stop).To(Equal(Collided))
		Expect(pl.Empty()).To(BeFalse())
		Expect(pl.Points[0]).To(Equal(vec.New(-1, 0.2)))

		end := pl.Points[len(pl.Points)-1]
		Expect(vec.Distance(end, body.Origin)).To(BeNumerically(">=", body.Radius()))
		Expect(vec.Distance(end, body.Origin)).To(BeNumerically("<", body.Radius()+style.MaxSpeed*style.Delta))
		for _, p := range pl.Points {
			Expect(discs[0].Contains(p)).To(BeFalse())
		}
	})

	It("advances by Euler steps of the clamped field", func() {
		seed := vec.New(-1, 0.9)
		pl := Streamline(f, seed, discs, style)
		Expect(pl.Segments()).To(BeNumerically(">", 2))

		step := integrators.NewEuler()
		p := seed
		for i := 1; i < 3; i++ {
			g := f.Get(p.X, p.Y).Limit(style.MinSpeed, style.MaxSpeed)
			p = step.Step(p, g, style.Delta)
			Expect(pl.Points[i]).To(Equal(p))
		}
	})

	It("keeps every full step inside the speed clamp", func() {
		pl := Streamline(f, vec.New(-1, 0.9), discs, style)
		Expect(pl.Segments()).To(BeNumerically(">", 2))
		for i := 1; i < len(pl.Points)-1; i++ {
			step := vec.Distance(pl.Points[i-1], pl.Points[i])
			Expect(step).To(BeNumerically(">=", style.MinSpeed*style.Delta-1e-12))
			Expect(step).To(BeNumerically("<=", style.MaxSpeed*style.Delta+1e-12))
		}
	})

	It("escapes near a singularity when no disc guards it", func() {
		pl := Streamline(f, vec.New(0.01, 0), nil, style)
		Expect(pl.Stop).To(Equal(Escaped))
		Expect(pl.Iterations).To(Equal(1))
		Expect(pl.Empty()).To(BeTrue())
	})

	It("stalls where forces cancel", func() {
		f = gravity.NewField([]*gravity.Body{
			gravity.NewBody(1, vec.New(-0.2, 0)),
			gravity.NewBody(1, vec.New(0.2, 0)),
		}, 16, 16)
		pl := Streamline(f, vec.Vec2{}, BodyDiscs(f.Bodies), style)
		Expect(pl.Stop).To(Equal(Stalled))
		Expect(pl.Empty()).To(BeTrue())
	})

	It("runs out of budget in a weak field", func() {
		style.Steps = 10
		pl := Streamline(f, vec.New(-1, -1), discs, style)
		Expect(pl.Stop).To(Equal(Exhausted))
		Expect(pl.Points).To(HaveLen(11))
	})
})

var _ = Describe("Polyline dashes", func() {
	It("draws period minus gap segments of each period", func() {
		pts := make([]vec.Vec2, 12)
		for i := range pts {
			pts[i] = vec.New(float64(i), 0)
		}
		pl := &Polyline{Points: pts, Period: 6, Duty: 4}

		Expect(pl.Visible(3)).To(BeTrue())
		Expect(pl.Visible(4)).To(BeFalse())
		Expect(pl.Visible(6)).To(BeTrue())

		d := pl.Dashes()
		Expect(d).To(HaveLen(2))
		Expect(d[0]).To(Equal(pts[0:5]))
		Expect(d[1]).To(Equal(pts[6:11]))
		Expect(pl.Length()).To(BeNumerically("~", 11, 1e-12))
	})

	It("draws everything without a period", func() {
		pl := &Polyline{Points: []vec.Vec2{{}, {X: 1}, {X: 2}}}
		Expect(pl.Dashes()).To(HaveLen(1))
	})
})

var _ = Describe("Seeds", func() {
	It("spaces seeds on all four edges", func() {
		s := Seeds(16)
		Expect(s).To(HaveLen(64))
		Expect(s[0]).To(Equal(vec.New(-0.9375, -1)))
		Expect(s[16]).To(Equal(vec.New(-0.9375, 1)))
		Expect(s[32]).To(Equal(vec.New(-1, -0.9375)))
		Expect(s[63]).To(Equal(vec.New(1, 0.9375)))
	})
})
