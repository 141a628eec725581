package field

import (
	"math"

	"github.com/san-kum/threebody/internal/vec"
)

// IncrementFlowTexture advects a particle from (x0, y0) through flow for n
// steps of dt, adding one to every texture cell the particle visits.
func IncrementFlowTexture(x0, y0, dt float64, n int, flow Field[vec.Vec2], texture *Grid[float64]) {
	r := vec.New(x0, y0)
	for i := 0; i < n; i++ {
		dr := flow.Get(r.X, r.Y).Scale(dt)
		if r.X > 0 && r.X < float64(texture.Width) && r.Y > 0 && r.Y < float64(texture.Height) {
			xi, yi := int(r.X), int(r.Y)
			texture.Set(xi, yi, texture.At(xi, yi)+1)
		}
		r = r.Add(dr)
	}
}

// ScaleExpHeightmap maps every cell v to 1 - exp(-alpha*v).
func ScaleExpHeightmap(alpha float64, texture *Grid[float64]) {
	texture.Fill(func(x, y int) float64 {
		return 1 - math.Exp(-alpha*texture.At(x, y))
	})
}

// FillHeightmap sets every cell from f.
func FillHeightmap(texture *Grid[float64], f func(x, y int) float64) {
	texture.Fill(f)
}
