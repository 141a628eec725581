package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/threebody/internal/gravity"
	"github.com/san-kum/threebody/internal/vec"
)

const shades = " .:-=+*#%@"

// PotentialMap shades the potential over [-1, 1] square as text, one
// character per sample, deeper wells darker. Levels are spread on a log scale
// between the shallowest and deepest sample.
func PotentialMap(f *gravity.Field, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	vals := make([][]float64, height)
	lo, hi := math.Inf(1), math.Inf(-1)
	for row := 0; row < height; row++ {
		vals[row] = make([]float64, width)
		for col := 0; col < width; col++ {
			p := vec.New(
				(float64(col)+0.5)/float64(width)*2-1,
				(float64(row)+0.5)/float64(height)*2-1,
			)
			v := math.Log1p(-f.Potential(p))
			vals[row][col] = v
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	if hi == lo {
		hi = lo + 1
	}

	var b strings.Builder
	for _, row := range vals {
		for _, v := range row {
			i := int((v - lo) / (hi - lo) * float64(len(shades)-1))
			b.WriteByte(shades[min(max(i, 0), len(shades)-1)])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
