package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/san-kum/threebody/internal/field"
	"github.com/san-kum/threebody/internal/palette"
	"github.com/san-kum/threebody/internal/rng"
	"github.com/san-kum/threebody/internal/scene"
	"github.com/san-kum/threebody/internal/vec"
)

// Stroke widths in pixels of the 640 pixel reference canvas.
const (
	ReferenceSize  = 640.0
	StreamWidth    = 1.4
	ContourWidth   = 2.0
	LineWidth      = 2.0
	BodyWidth      = 3.0
	TrailWidth     = 1.5
	ParticleWidth  = 4.0
	ArrowWidth     = 1.0
	CenterDiameter = 10.0

	// FlowStrength is how far a saturated flow texel moves the background
	// towards the contour colour.
	FlowStrength = 0.35
)

// Raster draws frames onto a reusable RGBA canvas.
type Raster struct {
	Size    int
	Caption string

	img   *image.RGBA
	z     *vector.Rasterizer
	scale float64
	polys [][]vec.Vec2
}

func NewRaster(size int) *Raster {
	return &Raster{
		Size:  size,
		img:   image.NewRGBA(image.Rect(0, 0, size, size)),
		z:     vector.NewRasterizer(size, size),
		scale: float64(size) / ReferenceSize,
	}
}

func (r *Raster) Image() *image.RGBA {
	return r.img
}

// Pixel maps a normalised point onto the canvas.
func (r *Raster) Pixel(p vec.Vec2) vec.Vec2 {
	s := float64(r.Size)
	return vec.Vec2{X: (p.X + 1) / 2 * s, Y: (p.Y + 1) / 2 * s}
}

// px converts a reference width to canvas pixels.
func (r *Raster) px(w float64) float64 {
	return w * r.scale
}

// Render draws f back to front and returns the canvas. The canvas is reused
// by the next call.
func (r *Raster) Render(f *scene.Frame) *image.RGBA {
	s := f.Scheme
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(s.Background), image.Point{}, draw.Src)
	if f.Flow != nil {
		r.flow(f.Flow, s)
	}

	for _, a := range f.Arrows {
		r.arrow(a)
	}
	r.flush(palette.RGBA(s.Foreground, 0.5))

	for _, pl := range f.Streamlines {
		for _, d := range pl.Dashes() {
			r.stroke(d, r.px(StreamWidth), false)
		}
	}
	r.flush(s.Foreground)

	for _, c := range f.Contours {
		for _, d := range c.Dashes() {
			r.stroke(d, r.px(ContourWidth), false)
		}
	}
	r.flush(s.Contour)

	for _, c := range f.Circles {
		r.circle(c.Center, c.Radius, r.px(LineWidth))
	}
	for _, seg := range f.Segments {
		r.stroke([]vec.Vec2{seg.A, seg.B}, r.px(LineWidth), false)
	}
	r.flush(s.Foreground)

	for _, m := range f.Moons {
		r.mover(m, r.px(TrailWidth), s)
	}
	for _, p := range f.Particles {
		r.mover(p, r.px(ParticleWidth), s)
	}

	if f.CenterOfMass != nil {
		rad := r.px(CenterDiameter) / float64(r.Size)
		r.disc(*f.CenterOfMass, rad)
		r.flush(s.Body)
		r.circle(*f.CenterOfMass, rad, r.px(LineWidth))
		r.flush(s.Foreground)
	}

	for _, b := range f.Bodies {
		r.disc(b.Center, b.Radius)
		r.flush(s.Body)
		r.circle(b.Center, b.Radius, r.px(BodyWidth))
		r.flush(s.Foreground)
	}

	if r.Caption != "" {
		r.caption(r.Caption, s.Foreground)
	}
	return r.img
}

// flow shades the background from a texture in [0, 1], sampled bilinearly at
// each pixel centre.
func (r *Raster) flow(tex *field.Grid[float64], s palette.Scheme) {
	k := float64(tex.Width) / float64(r.Size)
	for py := 0; py < r.Size; py++ {
		for px := 0; px < r.Size; px++ {
			v := tex.Get(tex.Clamp((float64(px)+0.5)*k-0.5, (float64(py)+0.5)*k-0.5))
			if v <= 0 {
				continue
			}
			c := s.Background.BlendRgb(s.Contour, rng.Clamp(v, 0, 1)*FlowStrength)
			r.img.SetRGBA(px, py, palette.RGBA(c, 1))
		}
	}
}

// mover draws a fading trail, one colour per segment, then the head.
func (r *Raster) mover(m scene.Mover, width float64, s palette.Scheme) {
	n := len(m.Trail)
	for i := n - 1; i > 1; i-- {
		w := width
		if fade := trailFade(i, m.Cap); fade < 1 {
			w *= fade
		}
		if w <= 0 {
			continue
		}
		r.stroke([]vec.Vec2{m.Trail[i-1], m.Trail[i]}, w, false)
		r.flush(palette.Colourmap(m.Colours, float64(i)/float64(n)))
	}
	if m.Head > 0 {
		r.disc(m.Position, m.Head/2)
		r.flush(s.Body)
		r.circle(m.Position, m.Head/2, r.px(TrailWidth))
		r.flush(m.Colours[0])
	}
}

func trailFade(i, capacity int) float64 {
	const fade = 8
	if i <= capacity-fade {
		return 1
	}
	return math.Max(0, float64(capacity-i)/fade)
}

func (r *Raster) arrow(a scene.Arrow) {
	l := scene.ArrowLength(a.V)
	if l == 0 {
		return
	}
	dir := a.V.Normalize()
	tip := a.At.Add(dir.Scale(l))
	head := l / 3
	left := tip.Sub(dir.Scale(head)).Add(dir.Perp().Scale(head / 2))
	right := tip.Sub(dir.Scale(head)).Sub(dir.Perp().Scale(head / 2))
	r.stroke([]vec.Vec2{a.At, tip}, r.px(ArrowWidth), false)
	r.stroke([]vec.Vec2{left, tip, right}, r.px(ArrowWidth), false)
}

// stroke adds one quad per segment of pts, in pixel space. Every quad has
// the same orientation so overlaps accumulate instead of cancelling.
func (r *Raster) stroke(pts []vec.Vec2, width float64, closed bool) {
	h := width / 2
	n := len(pts)
	if closed {
		n++
	}
	for i := 1; i < n; i++ {
		a := r.Pixel(pts[i-1])
		b := r.Pixel(pts[i%len(pts)])
		d := b.Sub(a)
		if d.IsZero() {
			continue
		}
		off := d.Normalize().Perp().Scale(h)
		r.polys = append(r.polys, []vec.Vec2{a.Add(off), b.Add(off), b.Sub(off), a.Sub(off)})
	}
}

func (r *Raster) circle(c vec.Vec2, radius, width float64) {
	pr := radius * float64(r.Size) / 2
	if pr <= 0 {
		return
	}
	outer := vec.Circle(r.Pixel(c), pr+width/2, segments(pr))
	inner := vec.Circle(r.Pixel(c), math.Max(0, pr-width/2), segments(pr))
	reverse(inner)
	r.polys = append(r.polys, outer, inner)
}

func (r *Raster) disc(c vec.Vec2, radius float64) {
	pr := radius * float64(r.Size) / 2
	if pr <= 0 {
		return
	}
	r.polys = append(r.polys, vec.Circle(r.Pixel(c), pr, segments(pr)))
}

func segments(pixels float64) int {
	return max(24, int(pixels))
}

func reverse(p []vec.Vec2) {
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
}

// flush fills the pending polygons in pixel space with c and clears them.
// The rasterizer covers only their bounding box.
func (r *Raster) flush(c color.Color) {
	if len(r.polys) == 0 {
		return
	}
	defer func() { r.polys = r.polys[:0] }()

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, poly := range r.polys {
		for _, p := range poly {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	box := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1)
	box = box.Intersect(r.img.Bounds())
	if box.Empty() {
		return
	}

	r.z.Reset(box.Dx(), box.Dy())
	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	for _, poly := range r.polys {
		r.z.MoveTo(float32(poly[0].X-ox), float32(poly[0].Y-oy))
		for _, p := range poly[1:] {
			r.z.LineTo(float32(p.X-ox), float32(p.Y-oy))
		}
		r.z.ClosePath()
	}
	r.z.Draw(r.img, box, image.NewUniform(c), image.Point{})
}

func (r *Raster) caption(text string, c colorful.Color) {
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(palette.RGBA(c, 0.6)),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(8, r.Size-8),
	}
	d.DrawString(text)
}
