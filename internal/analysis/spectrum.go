package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/threebody/internal/gravity"
	"github.com/san-kum/threebody/internal/vec"
)

// OrbitSpectrum samples the potential at n points on the circle of the given
// radius about the origin and returns the amplitude of harmonics 0..n/2-1,
// normalised by n.
func OrbitSpectrum(f *gravity.Field, radius float64, n int) []float64 {
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = f.Potential(vec.Polar(radius, 2*math.Pi*float64(i)/float64(n)))
	}
	spectrum := fft.FFTReal(samples)

	out := make([]float64, n/2)
	for i := range out {
		out[i] = cmplx.Abs(spectrum[i]) / float64(n)
	}
	return out
}

// DominantHarmonic is the strongest harmonic above the mean, or 0 when the
// spectrum is flat.
func DominantHarmonic(spectrum []float64) int {
	best, amp := 0, 1e-12
	for k := 1; k < len(spectrum); k++ {
		if spectrum[k] > amp {
			best, amp = k, spectrum[k]
		}
	}
	return best
}
