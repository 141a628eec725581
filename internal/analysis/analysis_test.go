package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/threebody/internal/gravity"
	"github.com/san-kum/threebody/internal/orbit"
	"github.com/san-kum/threebody/internal/tracer"
	"github.com/san-kum/threebody/internal/vec"
)

func single() *gravity.Field {
	return gravity.NewField([]*gravity.Body{gravity.NewBody(1, vec.Vec2{})}, 16, 16)
}

func ring(n int) *gravity.Field {
	bodies := make([]*gravity.Body, n)
	for i := range bodies {
		bodies[i] = gravity.NewBody(2, vec.Vec2{})
	}
	orbit.NewRing(0.35, 90).Place(bodies, 0.4)
	return gravity.NewField(bodies, 16, 16)
}

func TestProfile(t *testing.T) {
	p := NewProfile(single(), vec.New(0.2, 0), vec.New(1, 0), 5)

	if len(p.Magnitude) != 5 {
		t.Fatalf("samples = %d", len(p.Magnitude))
	}
	for i, d := range p.Distance {
		r := 0.2 + d
		if math.Abs(p.Magnitude[i]-1/(r*r)) > 1e-9 {
			t.Errorf("|g|(%v) = %v, want %v", r, p.Magnitude[i], 1/(r*r))
		}
		if math.Abs(p.Potential[i]+1/r) > 1e-9 {
			t.Errorf("phi(%v) = %v, want %v", r, p.Potential[i], -1/r)
		}
	}
	if math.Abs(p.Distance[4]-0.8) > 1e-12 {
		t.Errorf("last distance = %v", p.Distance[4])
	}

	plot := p.Plot(40, 6)
	if !strings.Contains(plot, "log10 |g|") || !strings.Contains(plot, "potential") {
		t.Error("plot captions missing")
	}
}

func TestLogMagnitudeFloor(t *testing.T) {
	p := &Profile{Magnitude: []float64{0, 1, 100, math.Inf(1)}}
	got := p.LogMagnitude(-3)
	want := []float64{-3, 0, 2, -3}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("LogMagnitude[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestOrbitSpectrum(t *testing.T) {
	tests := []struct {
		name  string
		field *gravity.Field
		want  int
	}{
		{"single body at centre", single(), 0},
		{"binary", ring(2), 2},
		{"three bodies", ring(3), 3},
		{"five bodies", ring(5), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := OrbitSpectrum(tt.field, 0.6, 64)
			if len(spec) != 32 {
				t.Fatalf("spectrum length = %d", len(spec))
			}
			if got := DominantHarmonic(spec); got != tt.want {
				t.Errorf("dominant harmonic = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestClosureSweep(t *testing.T) {
	points := ClosureSweep(single(), vec.New(0.2, 0), vec.New(0.8, 0), 4, tracer.DefaultContourStyle())
	if len(points) != 4 {
		t.Fatalf("points = %d", len(points))
	}
	for _, p := range points {
		if !p.Closed {
			t.Errorf("seed %v did not close (%s after %d)", p.Seed, p.Stop, p.Iterations)
		}
	}
	if points[3].Iterations <= points[0].Iterations {
		t.Error("larger circles should take more steps")
	}

	out := SweepToASCII(points, 20)
	if strings.Count(out, "\n") != 4 || !strings.Contains(out, "closed") {
		t.Errorf("unexpected table:\n%s", out)
	}
	if SweepToASCII(nil, 20) != "" {
		t.Error("empty sweep should render nothing")
	}
}

func TestDivergence(t *testing.T) {
	f := single()
	discs := tracer.BodyDiscs(f.Bodies)

	// radial lines into a point mass bunch together
	if d := Divergence(f, vec.New(-0.9, 0), 1e-6, discs, tracer.DefaultStreamStyle()); d >= 0 {
		t.Errorf("divergence into a point mass = %v, want negative", d)
	}

	style := tracer.DefaultStreamStyle()
	style.Steps = 0
	if d := Divergence(f, vec.New(-0.9, 0), 1e-6, discs, style); d != 0 {
		t.Errorf("divergence without steps = %v", d)
	}
}

func TestPotentialMap(t *testing.T) {
	out := PotentialMap(single(), 20, 10)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("rows = %d", len(lines))
	}
	for _, l := range lines {
		if len(l) != 20 {
			t.Fatalf("row width = %d", len(l))
		}
	}

	centre := lines[4][9:11] + lines[5][9:11]
	if !strings.Contains(centre, "@") {
		t.Errorf("centre shades = %q, want the deepest shade", centre)
	}
	if lines[0][0] != ' ' || lines[9][19] != ' ' {
		t.Errorf("corner shades = %q %q, want blank", lines[0][0], lines[9][19])
	}
	if PotentialMap(single(), 0, 5) != "" {
		t.Error("zero width should render nothing")
	}
}
