package palette

import (
	"errors"
	"image/color"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/threebody/internal/rng"
)

var ErrUnknownScheme = errors.New("palette: unknown scheme")

// Scheme colours one artwork.
type Scheme struct {
	Name       string
	Background colorful.Color
	Foreground colorful.Color // field lines, rings, orbit
	Contour    colorful.Color // equipotentials
	Body       colorful.Color // body fill
	Trail      []colorful.Color
}

func hex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

var (
	Mono = Scheme{
		Name:       "mono",
		Background: hex("#000000"),
		Foreground: hex("#ffffff"),
		Contour:    hex("#ffffff"),
		Body:       hex("#000000"),
		Trail:      []colorful.Color{hex("#ffffff")},
	}

	Paper = Scheme{
		Name:       "paper",
		Background: hex("#f4f1ea"),
		Foreground: hex("#1a1a1a"),
		Contour:    hex("#1a1a1a"),
		Body:       hex("#f4f1ea"),
		Trail:      []colorful.Color{hex("#1a1a1a"), hex("#f4f1ea")},
	}

	Ember = Scheme{
		Name:       "ember",
		Background: hex("#000000"),
		Foreground: hex("#ffffff"),
		Contour:    hex("#f0003c"),
		Body:       hex("#000000"),
		Trail:      []colorful.Color{hex("#f0003c"), hex("#f0003c"), hex("#000000")},
	}

	Ocean = Scheme{
		Name:       "ocean",
		Background: hex("#001a33"),
		Foreground: hex("#e0f0ff"),
		Contour:    hex("#00a8cc"),
		Body:       hex("#001a33"),
		Trail:      []colorful.Color{hex("#ffd700"), hex("#001a33")},
	}

	Dusk = Scheme{
		Name:       "dusk",
		Background: hex("#2d1b2e"),
		Foreground: hex("#fff5f5"),
		Contour:    hex("#ff9ff3"),
		Body:       hex("#2d1b2e"),
		Trail:      []colorful.Color{hex("#feca57"), hex("#ff6b6b"), hex("#2d1b2e")},
	}

	Schemes = map[string]Scheme{
		Mono.Name:  Mono,
		Paper.Name: Paper,
		Ember.Name: Ember,
		Ocean.Name: Ocean,
		Dusk.Name:  Dusk,
	}
)

// Get returns a named scheme.
func Get(name string) (Scheme, error) {
	s, ok := Schemes[name]
	if !ok {
		return Scheme{}, ErrUnknownScheme
	}
	return s, nil
}

// Names lists the named schemes in sorted order.
func Names() []string {
	names := make([]string, 0, len(Schemes))
	for n := range Schemes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Next returns the named scheme after current in Names order. Unnamed
// schemes move to the first one.
func Next(current string) Scheme {
	names := Names()
	next := names[0]
	for i, n := range names {
		if n == current {
			next = names[(i+1)%len(names)]
			break
		}
	}
	return Schemes[next]
}

// Generate derives a scheme from three draws: a base hue, a light or dark
// ground, and a complementary offset for the contour colour.
func Generate(src rng.Source) Scheme {
	hue := src.Next() * 360
	dark := src.Next() < 0.7
	offset := rng.Uniform(src.Next(), 120, 240)

	s := Scheme{Name: "generated"}
	if dark {
		s.Background = colorful.Hcl(hue, 0.05, 0.06).Clamped()
		s.Foreground = colorful.HSLuv(hue, 0.15, 0.95).Clamped()
	} else {
		s.Background = colorful.Hcl(hue, 0.03, 0.96).Clamped()
		s.Foreground = colorful.HSLuv(hue, 0.4, 0.12).Clamped()
	}
	s.Contour = colorful.Hcl(math.Mod(hue+offset, 360), 0.7, 0.6).Clamped()
	s.Body = s.Background
	s.Trail = []colorful.Color{
		s.Contour,
		s.Contour.BlendLab(s.Foreground, 0.5).Clamped(),
		s.Background,
	}
	return s
}

// Colourmap blends linearly between evenly spaced stops. x is clamped to
// [0, 1].
func Colourmap(stops []colorful.Color, x float64) colorful.Color {
	n := len(stops)
	switch {
	case n == 0:
		return colorful.Color{}
	case n == 1:
		return stops[0]
	}
	bin := int(math.Floor(x * float64(n-1)))
	if bin >= n-1 {
		return stops[n-1]
	}
	if bin < 0 {
		return stops[0]
	}
	width := 1 / float64(n-1)
	t := (x - width*float64(bin)) / width
	return stops[bin].BlendRgb(stops[bin+1], t)
}

// RGBA converts c with the given opacity in [0, 1].
func RGBA(c colorful.Color, alpha float64) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: uint8(math.Round(rng.Clamp(alpha, 0, 1) * 255))}
}

// Premultiplied converts c to a premultiplied colour with the given opacity.
func Premultiplied(c colorful.Color, alpha float64) color.RGBA {
	a := rng.Clamp(alpha, 0, 1)
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{
		R: uint8(math.Round(float64(r) * a)),
		G: uint8(math.Round(float64(g) * a)),
		B: uint8(math.Round(float64(b) * a)),
		A: uint8(math.Round(a * 255)),
	}
}

// Ramp is a 256 colour GIF palette for s: blends from the background to the
// foreground, to the contour colour, and to the first trail stop.
func Ramp(s Scheme) color.Palette {
	pal := make(color.Palette, 0, 256)
	add := func(to colorful.Color, n int) {
		for i := 0; i < n; i++ {
			t := float64(i+1) / float64(n)
			pal = append(pal, RGBA(s.Background.BlendLab(to, t), 1))
		}
	}
	pal = append(pal, RGBA(s.Background, 1))
	add(s.Foreground, 127)
	add(s.Contour, 96)
	trail := s.Foreground
	if len(s.Trail) > 0 {
		trail = s.Trail[0]
	}
	add(trail, 32)
	return pal
}
