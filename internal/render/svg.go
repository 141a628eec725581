package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/threebody/internal/palette"
	"github.com/san-kum/threebody/internal/scene"
	"github.com/san-kum/threebody/internal/vec"
)

// SVG renders the vector parts of f as a standalone SVG document of the
// given pixel size.
func SVG(f *scene.Frame, size int) string {
	s := f.Scheme
	scale := float64(size) / ReferenceSize
	px := func(p vec.Vec2) (float64, float64) {
		return (p.X + 1) / 2 * float64(size), (p.Y + 1) / 2 * float64(size)
	}
	radius := func(r float64) float64 { return r * float64(size) / 2 }

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, size, size, size, size, s.Background.Hex()))

	path := func(pts []vec.Vec2) {
		for i, p := range pts {
			x, y := px(p)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
	}

	group := func(c colorful.Color, width float64) {
		sb.WriteString(fmt.Sprintf(`<g fill="none" stroke="%s" stroke-width="%.2f" stroke-linecap="round">
`, c.Hex(), width*scale))
	}

	group(s.Foreground, StreamWidth)
	for _, pl := range f.Streamlines {
		for _, d := range pl.Dashes() {
			sb.WriteString(`<path d="`)
			path(d)
			sb.WriteString("\"/>\n")
		}
	}
	sb.WriteString("</g>\n")

	group(s.Contour, ContourWidth)
	for _, c := range f.Contours {
		for _, d := range c.Dashes() {
			sb.WriteString(`<path d="`)
			path(d)
			sb.WriteString("\"/>\n")
		}
	}
	sb.WriteString("</g>\n")

	group(s.Foreground, LineWidth)
	for _, c := range f.Circles {
		x, y := px(c.Center)
		sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", x, y, radius(c.Radius)))
	}
	for _, seg := range f.Segments {
		sb.WriteString(`<path d="`)
		path([]vec.Vec2{seg.A, seg.B})
		sb.WriteString("\"/>\n")
	}
	sb.WriteString("</g>\n")

	for _, m := range append(append([]scene.Mover{}, f.Moons...), f.Particles...) {
		n := len(m.Trail)
		for i := n - 1; i > 1; i-- {
			w := TrailWidth * trailFade(i, m.Cap)
			if w <= 0 {
				continue
			}
			c := palette.Colourmap(m.Colours, float64(i)/float64(n))
			x1, y1 := px(m.Trail[i-1])
			x2, y2 := px(m.Trail[i])
			sb.WriteString(fmt.Sprintf("<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" stroke=\"%s\" stroke-width=\"%.2f\"/>\n",
				x1, y1, x2, y2, c.Hex(), w*scale))
		}
		if m.Head > 0 {
			x, y := px(m.Position)
			sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\" stroke=\"%s\" stroke-width=\"%.2f\"/>\n",
				x, y, radius(m.Head/2), s.Body.Hex(), m.Colours[0].Hex(), TrailWidth*scale))
		}
	}

	if f.CenterOfMass != nil {
		x, y := px(*f.CenterOfMass)
		sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\" stroke=\"%s\" stroke-width=\"%.2f\"/>\n",
			x, y, CenterDiameter/2*scale, s.Body.Hex(), s.Foreground.Hex(), LineWidth*scale))
	}

	for _, b := range f.Bodies {
		x, y := px(b.Center)
		sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\" stroke=\"%s\" stroke-width=\"%.2f\"/>\n",
			x, y, radius(b.Radius), s.Body.Hex(), s.Foreground.Hex(), math.Max(BodyWidth*scale, 0.5)))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func WriteSVG(w io.Writer, f *scene.Frame, size int) error {
	_, err := io.WriteString(w, SVG(f, size))
	return err
}
