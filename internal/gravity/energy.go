package gravity

import (
	"math"

	"github.com/san-kum/threebody/internal/vec"
)

const (
	energyWalkStep   = 0.001
	energyWalkLength = 2.0
)

// EnergySeed walks away from the centre of mass along the two diagonals,
// integrating the work done by the field, and returns the first point at which
// the accumulated work crosses e. The point seeds an equipotential of roughly
// that energy. ok is false when neither diagonal reaches e.
func EnergySeed(f *Field, e float64) (p vec.Vec2, ok bool) {
	cm := CenterOfMass(f.Bodies)
	for _, dir := range []vec.Vec2{{X: 1, Y: 1}, {X: -1, Y: -1}} {
		work := 0.0
		last := cm
		n := int(math.Round(energyWalkLength / energyWalkStep))
		for i := 1; i <= n; i++ {
			v := cm.Add(dir.Scale(float64(i) * energyWalkStep))
			g := f.Get(v.X, v.Y)
			work += v.Sub(last).Dot(g)
			last = v
			if (e < 0 && work < e) || (e > 0 && work > e) {
				return v, true
			}
		}
	}
	return vec.Vec2{}, false
}
