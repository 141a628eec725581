package scene

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
	"testing"

	"github.com/san-kum/threebody/internal/config"
	"github.com/san-kum/threebody/internal/palette"
	"github.com/san-kum/threebody/internal/vec"
)

func compose(t *testing.T, seed string, edit func(c *config.Config)) *Scene {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Seed = seed
	if edit != nil {
		edit(cfg)
	}
	s, err := Compose(cfg)
	if err != nil {
		t.Fatalf("Compose(%q): %v", seed, err)
	}
	return s
}

func masses(s *Scene) []float64 {
	out := make([]float64, len(s.Bodies))
	for i, b := range s.Bodies {
		out[i] = b.Mass
	}
	return out
}

func TestComposeDeterministic(t *testing.T) {
	for _, seed := range []string{"threebody", "42", "ooh", ""} {
		a := compose(t, seed, nil)
		b := compose(t, seed, nil)

		if !reflect.DeepEqual(masses(a), masses(b)) {
			t.Errorf("%q: masses differ %v vs %v", seed, masses(a), masses(b))
		}
		if !reflect.DeepEqual(a.Toggles, b.Toggles) {
			t.Errorf("%q: toggles differ", seed)
		}
		if a.Draws != b.Draws || len(a.Moons) != len(b.Moons) || a.Scheme.Name != b.Scheme.Name {
			t.Errorf("%q: composition differs", seed)
		}
		if a.Elapsed != b.Elapsed {
			t.Errorf("%q: start time differs", seed)
		}
	}
}

func TestComposeKnownSeeds(t *testing.T) {
	tests := []struct {
		seed      string
		drawn     int
		masses    []float64
		palette   string
		draws     int
		moons     int
		equip     bool
		eqpx      bool
		particles int
	}{
		{"threebody", 3, []float64{4.163305030856281, 4.647554658493027, 2.4399762652115893}, "generated", 41, 1, true, false, 3},
		{"42", 3, []float64{2.7268561524339017, 5.153895609546453, 2.1463554880348967}, "mono", 44, 2, false, false, 0},
		{"ooh", 2, []float64{4.467377659142948, 3.568718956992961}, "dusk", 35, 2, false, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.seed, func(t *testing.T) {
			s := compose(t, tt.seed, nil)

			if s.Drawn != tt.drawn || len(s.Bodies) != tt.drawn {
				t.Fatalf("bodies = %d (drawn %d), want %d", len(s.Bodies), s.Drawn, tt.drawn)
			}
			for i, m := range masses(s) {
				if math.Abs(m-tt.masses[i]) > 1e-12 {
					t.Errorf("mass[%d] = %v, want %v", i, m, tt.masses[i])
				}
			}
			if s.Scheme.Name != tt.palette {
				t.Errorf("palette = %s, want %s", s.Scheme.Name, tt.palette)
			}
			if s.Draws != tt.draws {
				t.Errorf("draws = %d, want %d", s.Draws, tt.draws)
			}
			if len(s.Moons) != tt.moons {
				t.Errorf("moons = %d, want %d", len(s.Moons), tt.moons)
			}
			if s.Toggles.Equipotential != tt.equip || s.Toggles.EqPX != tt.eqpx {
				t.Errorf("toggles = %+v", s.Toggles)
			}
			if len(s.Particles) != tt.particles {
				t.Errorf("particles = %d, want %d", len(s.Particles), tt.particles)
			}
		})
	}
}

func TestComposeToggleDetail(t *testing.T) {
	s := compose(t, "ooh", nil)

	if !reflect.DeepEqual(s.Toggles.Rings, []bool{true, false}) {
		t.Errorf("rings = %v", s.Toggles.Rings)
	}
	if !s.Toggles.Cross[0][1] || s.Toggles.Cross[1][0] {
		t.Errorf("cross = %v", s.Toggles.Cross)
	}
	if s.Toggles.Cross[0][0] || s.Toggles.Lines[0][0] {
		t.Error("a body never crosses or lines to itself")
	}

	a, b := s.Moons[0], s.Moons[1]
	if a.Parent != s.Bodies[1] || b.Parent != s.Bodies[1] {
		t.Error("both moons should circle the second body")
	}
	if d := math.Abs(b.PhaseOffset - a.PhaseOffset); math.Abs(d-math.Pi) > 1e-12 {
		t.Errorf("moon offsets %v apart, want pi", d)
	}
	if a.Trail.Len() != 0 {
		t.Error("trails start empty")
	}
}

func TestComposeBodyOverride(t *testing.T) {
	drawn := compose(t, "ooh", nil)
	forced := compose(t, "ooh", func(c *config.Config) { c.Bodies = 3 })

	if len(forced.Bodies) != 3 || forced.Drawn != 2 {
		t.Fatalf("bodies = %d drawn = %d", len(forced.Bodies), forced.Drawn)
	}
	for i := range drawn.Bodies {
		if forced.Bodies[i].Mass != drawn.Bodies[i].Mass {
			t.Errorf("mass[%d] changed under override", i)
		}
	}
	if len(forced.Toggles.Rings) != 3 {
		t.Errorf("toggles sized for %d bodies", len(forced.Toggles.Rings))
	}
}

func TestComposeErrors(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Size = 0
	if _, err := Compose(cfg); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	cfg = config.DefaultConfig()
	cfg.Palette = "plaid"
	if _, err := Compose(cfg); !errors.Is(err, palette.ErrUnknownScheme) {
		t.Errorf("expected ErrUnknownScheme, got %v", err)
	}
}

func TestComposeDashStyle(t *testing.T) {
	seen := make(map[[2]int]int)
	for i := 0; i < 40; i++ {
		s := compose(t, fmt.Sprintf("dash-%d", i), nil)
		st := s.StreamStyle()
		pair := [2]int{st.Period, st.Duty}
		if !slices.Contains(dashStyles, pair) {
			t.Fatalf("seed dash-%d drew unknown dash %v", i, pair)
		}
		seen[pair]++
	}
	if len(seen) < 2 {
		t.Errorf("dash style does not vary by seed: %v", seen)
	}

	drawn := compose(t, "42", nil)
	fixed := compose(t, "42", func(c *config.Config) {
		c.Streamline.Period = 3
		c.Streamline.Duty = 2
	})
	if st := fixed.StreamStyle(); st.Period != 3 || st.Duty != 2 {
		t.Errorf("configured dash style replaced: %d/%d", st.Period, st.Duty)
	}
	if drawn.Draws != fixed.Draws {
		t.Error("dash choice must not shift the draw sequence")
	}
}

func TestAdvance(t *testing.T) {
	s := compose(t, "ooh", nil)
	start := s.Elapsed

	for i := 0; i < 10; i++ {
		s.Advance(0.5)
	}

	if math.Abs(s.Elapsed-start-5) > 1e-9 {
		t.Errorf("elapsed advanced by %v", s.Elapsed-start)
	}
	if s.Frames != 10 {
		t.Errorf("frames = %d", s.Frames)
	}
	for _, b := range s.Bodies {
		if math.Abs(b.Origin.Norm()-s.Ring.Radius) > 1e-12 {
			t.Errorf("body left the ring: %v", b.Origin)
		}
	}
	for _, m := range s.Moons {
		if d := vec.Distance(m.Position, m.Parent.Origin); math.Abs(d-m.Radius) > 1e-12 {
			t.Errorf("moon at %v from parent, want %v", d, m.Radius)
		}
		if math.Abs(m.Phase-4*s.Phase) > 1e-12 {
			t.Errorf("moon phase %v, want %v", m.Phase, 4*s.Phase)
		}
	}
}

func TestSummary(t *testing.T) {
	s := compose(t, "ooh", nil)
	sum := s.Summary()

	if sum.Seed != "ooh" || sum.Palette != "dusk" || len(sum.Bodies) != 2 {
		t.Errorf("summary = %+v", sum)
	}
	if sum.Bodies[1].Moons != 2 || sum.Bodies[0].Moons != 0 {
		t.Errorf("moon counts = %d, %d", sum.Bodies[0].Moons, sum.Bodies[1].Moons)
	}
	if math.Abs(sum.TotalMass-(4.467377659142948+3.568718956992961)) > 1e-12 {
		t.Errorf("total mass = %v", sum.TotalMass)
	}
}

func TestComposeFlow(t *testing.T) {
	small := func(p float64) func(c *config.Config) {
		return func(c *config.Config) {
			c.Flow.Probability = p
			c.Flow.Resolution = 32
			c.Flow.Tracers = 60
		}
	}

	off := compose(t, "flow", small(0))
	if off.Flow != nil || off.Toggles.Flow {
		t.Fatal("flow composed with probability 0")
	}
	if off.Frame().Flow != nil {
		t.Error("frame carries a flow texture with the toggle off")
	}

	kinds := make(map[string]bool)
	for i := 0; i < 30; i++ {
		s := compose(t, fmt.Sprintf("flow-%d", i), small(1))
		if s.Flow == nil || !s.Toggles.Flow {
			t.Fatalf("flow-%d: no flow with probability 1", i)
		}
		kinds[s.Flow.Kind] = true

		tex := s.Flow.Texture
		if tex.Width != 32 || tex.Height != 32 {
			t.Fatalf("texture %dx%d", tex.Width, tex.Height)
		}
		lit := 0
		for x := 0; x < tex.Width; x++ {
			for y := 0; y < tex.Height; y++ {
				v := tex.At(x, y)
				if v < 0 || v >= 1 {
					t.Fatalf("flow-%d texel (%d, %d) = %v", i, x, y, v)
				}
				if v > 0 {
					lit++
				}
			}
		}
		if lit == 0 {
			t.Errorf("flow-%d texture is empty", i)
		}
		if tex.At(0, 0) != 0 {
			t.Errorf("flow-%d corner not faded: %v", i, tex.At(0, 0))
		}
		if s.Frame().Flow != tex {
			t.Errorf("flow-%d frame does not carry the texture", i)
		}
	}
	if len(kinds) != len(flowKinds) {
		t.Errorf("kinds drawn = %v", kinds)
	}

	a := compose(t, "flow-3", small(1))
	b := compose(t, "flow-3", small(1))
	if !reflect.DeepEqual(a.Flow, b.Flow) {
		t.Error("flow texture is not deterministic")
	}
	if a.Draws != compose(t, "flow-3", small(0)).Draws {
		t.Error("flow shifted the main draw sequence")
	}
}
