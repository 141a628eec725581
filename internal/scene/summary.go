package scene

import "github.com/san-kum/threebody/internal/tracer"

type BodySummary struct {
	Mass   float64 `json:"mass" yaml:"mass"`
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Radius float64 `json:"radius" yaml:"radius"`
	Moons  int     `json:"moons" yaml:"moons"`
}

// Summary is the serialisable description of a composed scene.
type Summary struct {
	Seed        string             `json:"seed" yaml:"seed"`
	Drawn       int                `json:"drawn" yaml:"drawn"`
	Bodies      []BodySummary      `json:"bodies" yaml:"bodies"`
	TotalMass   float64            `json:"total_mass" yaml:"total_mass"`
	ReducedMass float64            `json:"reduced_mass" yaml:"reduced_mass"`
	Trails      int                `json:"trails" yaml:"trails"`
	Particles   int                `json:"particles" yaml:"particles"`
	Palette     string             `json:"palette" yaml:"palette"`
	Toggles     Toggles            `json:"toggles" yaml:"toggles"`
	Stream      tracer.StreamStyle `json:"stream" yaml:"stream"`
	Elapsed     float64            `json:"elapsed" yaml:"elapsed"`
	Frames      int                `json:"frames" yaml:"frames"`
	Draws       int                `json:"draws" yaml:"draws"`
}

func (s *Scene) Summary() Summary {
	sum := Summary{
		Seed:        s.Config.Seed,
		Drawn:       s.Drawn,
		TotalMass:   s.TotalMass(),
		ReducedMass: s.ReducedMass(),
		Particles:   len(s.Particles),
		Palette:     s.Scheme.Name,
		Toggles:     s.Toggles,
		Stream:      s.stream,
		Elapsed:     s.Elapsed,
		Frames:      s.Frames,
		Draws:       s.Draws,
	}
	for _, b := range s.Bodies {
		bs := BodySummary{Mass: b.Mass, X: b.Origin.X, Y: b.Origin.Y, Radius: b.Radius()}
		for _, m := range s.Moons {
			if m.Parent == b {
				bs.Moons++
			}
		}
		sum.Bodies = append(sum.Bodies, bs)
	}
	for _, m := range s.Moons {
		if m.Trail.Cap() > 0 {
			sum.Trails++
		}
	}
	return sum
}
