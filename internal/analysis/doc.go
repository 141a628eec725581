// Package analysis inspects a gravity field and the curves traced through
// it:
//
//   - [NewProfile]: field magnitude and potential sampled along a segment
//   - [OrbitSpectrum]: harmonic content of the potential around a circle
//   - [ClosureSweep]: which equipotential seeds along a ray close
//   - [Divergence]: how fast neighbouring streamlines separate
//   - [PotentialMap]: shaded text map of the potential
//
// A strong third harmonic in the orbit spectrum is the signature of three
// bodies evenly spaced on the ring:
//
//	spec := analysis.OrbitSpectrum(field, 0.6, 64)
//	if analysis.DominantHarmonic(spec) == 3 {
//	    // three-fold symmetric scene
//	}
package analysis
