package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/threebody/internal/palette"
	"github.com/san-kum/threebody/internal/render"
	"github.com/san-kum/threebody/internal/scene"
	"github.com/san-kum/threebody/internal/vec"
)

// Colour converts a palette colour for raylib.
func Colour(c colorful.Color, alpha float64) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.NewColor(r, g, b, uint8(alpha*255+0.5))
}

func (a *App) screen(p vec.Vec2) rl.Vector2 {
	s := float32(a.Size)
	return rl.NewVector2((float32(p.X)+1)/2*s, (float32(p.Y)+1)/2*s)
}

func (a *App) px(w float64) float32 {
	return float32(w * float64(a.Size) / render.ReferenceSize)
}

func (a *App) radius(r float64) float32 {
	return float32(r * float64(a.Size) / 2)
}

func (a *App) polyline(pts []vec.Vec2, width float32, col rl.Color) {
	for i := 1; i < len(pts); i++ {
		rl.DrawLineEx(a.screen(pts[i-1]), a.screen(pts[i]), width, col)
	}
}

func (a *App) ring(c vec.Vec2, r float64, width float32, col rl.Color) {
	pr := a.radius(r)
	if pr <= 0 {
		return
	}
	rl.DrawRing(a.screen(c), max(pr-width/2, 0), pr+width/2, 0, 360, int32(max(24, pr)), col)
}

// drawFrame draws the draw list back to front, mirroring the raster order.
func (a *App) drawFrame() {
	f := a.Frame
	s := f.Scheme
	fg, contour, body := Colour(s.Foreground, 1), Colour(s.Contour, 1), Colour(s.Body, 1)

	for _, ar := range f.Arrows {
		l := scene.ArrowLength(ar.V)
		if l == 0 {
			continue
		}
		tip := ar.At.Add(ar.V.Normalize().Scale(l))
		rl.DrawLineEx(a.screen(ar.At), a.screen(tip), a.px(render.ArrowWidth), Colour(s.Foreground, 0.5))
	}
	for _, pl := range f.Streamlines {
		for _, d := range pl.Dashes() {
			a.polyline(d, a.px(render.StreamWidth), fg)
		}
	}
	for _, c := range f.Contours {
		for _, d := range c.Dashes() {
			a.polyline(d, a.px(render.ContourWidth), contour)
		}
	}
	for _, c := range f.Circles {
		a.ring(c.Center, c.Radius, a.px(render.LineWidth), fg)
	}
	for _, seg := range f.Segments {
		rl.DrawLineEx(a.screen(seg.A), a.screen(seg.B), a.px(render.LineWidth), fg)
	}
	for _, m := range f.Moons {
		a.mover(m, a.px(render.TrailWidth), body)
	}
	for _, p := range f.Particles {
		a.mover(p, a.px(render.ParticleWidth), body)
	}
	if f.CenterOfMass != nil {
		c := a.screen(*f.CenterOfMass)
		rl.DrawCircleV(c, a.px(render.CenterDiameter/2), body)
		rl.DrawCircleLines(int32(c.X), int32(c.Y), a.px(render.CenterDiameter/2), fg)
	}
	for _, b := range f.Bodies {
		rl.DrawCircleV(a.screen(b.Center), a.radius(b.Radius), body)
		a.ring(b.Center, b.Radius, a.px(render.BodyWidth), fg)
	}
}

// mover draws a trail coloured along the mover's stops, then its head.
func (a *App) mover(m scene.Mover, width float32, body rl.Color) {
	n := len(m.Trail)
	for i := n - 1; i > 1; i-- {
		col := Colour(palette.Colourmap(m.Colours, float64(i)/float64(n)), 1)
		rl.DrawLineEx(a.screen(m.Trail[i-1]), a.screen(m.Trail[i]), width, col)
	}
	if m.Head > 0 {
		c := a.screen(m.Position)
		rl.DrawCircleV(c, a.radius(m.Head/2), body)
		rl.DrawCircleLines(int32(c.X), int32(c.Y), a.radius(m.Head/2), Colour(m.Colours[0], 1))
	}
}
