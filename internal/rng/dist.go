package rng

import "math"

// Clamp x into [a, b].
func Clamp(x, a, b float64) float64 {
	return math.Min(math.Max(x, a), b)
}

// Normalise maps x in [a, b] onto [0, 1].
func Normalise(x, a, b float64) float64 {
	return (x - a) / (b - a)
}

// NClamp is Normalise followed by clamping to [0, 1].
func NClamp(x, a, b float64) float64 {
	return Clamp(Normalise(x, a, b), 0, 1)
}

// Interp1D blends a and b with x clamped to [0, 1].
func Interp1D(a, b, x float64) float64 {
	x = Clamp(x, 0, 1)
	return a*(1-x) + b*x
}

// TableLookup interpolates an evenly spaced table indexed by x in [0, 1].
func TableLookup(x float64, table []float64) float64 {
	n := len(table)
	if n == 1 {
		return table[0]
	}
	bin := int(math.Floor(x * float64(n-1)))
	width := 1 / float64(n-1)
	switch {
	case bin >= n-1:
		return table[n-1]
	case bin < 0:
		return table[0]
	}
	return Interp1D(table[bin], table[bin+1], (x-width*float64(bin))/width)
}

// inverse error function, tabulated up to three sigma
var inverf = []float64{0, 0.0889, 0.1791, 0.2725, 0.3708, 0.4769, 0.5951, 0.7329, 0.9062, 1.163, 3}

// Normal maps a uniform x in [0, 1] onto a normal distribution with mean mu
// and deviation sigma, truncated at roughly 4.2 sigma.
func Normal(x, mu, sigma float64) float64 {
	if x > 0.5 {
		s := Clamp(2*x-1, 0, 1)
		return mu + TableLookup(s, inverf)*sigma*math.Sqrt2
	}
	s := Clamp(1-2*x, 0, 1)
	return mu - TableLookup(s, inverf)*sigma*math.Sqrt2
}

// Uniform maps x in [0, 1] onto [a, b].
func Uniform(x, a, b float64) float64 {
	return a + x*(b-a)
}

// Sample picks an element of set with selection value x.
func Sample[T any](x float64, set []T) T {
	i := int(math.Floor(Clamp(x, 0, 1) * float64(len(set))))
	if i >= len(set) {
		i = len(set) - 1
	}
	return set[i]
}

// Shuffle permutes s in place (Fisher-Yates) drawing from src.
func Shuffle[T any](src Source, s []T) {
	for i := len(s); i > 0; {
		j := int(math.Floor(src.Next() * float64(i)))
		i--
		s[i], s[j] = s[j], s[i]
	}
}

// Stagger quantises x in [0, 1] into steps of 1/lut.
func Stagger(x float64, lut int) float64 {
	return math.Floor(x*float64(lut)) / float64(lut)
}
