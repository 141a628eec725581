// Package field defines sampled fields over the plane: a discrete grid of
// values that can be read exactly at integer cells or bilinearly interpolated
// between them.
//
// Both scalar (float64) and vector ([vec.Vec2]) fields satisfy the same
// two-method [Field] contract. Concrete kinds are [Grid], [RandomFlow] and
// [ScaledFlow]; the gravity package adds an analytic implementation.
package field

import (
	"math"

	"github.com/san-kum/threebody/internal/vec"
)

// Field is the capability shared by every field kind.
//
// At reads the exact value of grid cell (ix, iy); callers keep indices in
// range. Get evaluates the field at real coordinates.
type Field[T any] interface {
	At(ix, iy int) T
	Get(x, y float64) T
}

// Value is the set of types a field can hold.
type Value interface {
	float64 | vec.Vec2
}

// Lerp blends a and b linearly, s = 0 giving a.
func Lerp[T Value](a, b T, s float64) T {
	switch a := any(a).(type) {
	case float64:
		return any(a*(1-s) + any(b).(float64)*s).(T)
	case vec.Vec2:
		return any(a.Lerp(any(b).(vec.Vec2), s)).(T)
	}
	panic("unreachable")
}

// Bilinear interpolates f at (x, y) from the four surrounding cells:
// lerp(lerp(v00, v10, sx), lerp(v01, v11, sx), sy).
func Bilinear[T Value](f Field[T], x, y float64) T {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	sx := x - float64(x0)
	sy := y - float64(y0)

	x1, y1 := x0+1, y0+1

	v0 := Lerp(f.At(x0, y0), f.At(x1, y0), sx)
	v1 := Lerp(f.At(x0, y1), f.At(x1, y1), sx)
	return Lerp(v0, v1, sy)
}
