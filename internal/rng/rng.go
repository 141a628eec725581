// Package rng is the seeded pseudo-random source behind scene generation.
//
// A seed string is hashed with [Xmur3] into four 32-bit words which seed an
// [SFC32] generator. Both stages are deterministic, so the same seed always
// yields the same sequence and therefore the same artwork.
package rng

import (
	"strconv"
	"unicode/utf16"
)

// Xmur3 returns a hash stream over s. Each call of the returned function
// yields the next 32-bit word derived from s.
func Xmur3(s string) func() uint32 {
	units := utf16.Encode([]rune(s))
	h := uint32(1779033703) ^ uint32(len(units))
	for _, u := range units {
		h = (h ^ uint32(u)) * 3432918353
		h = h<<13 | h>>19
	}
	return func() uint32 {
		h = (h ^ h>>16) * 2246822507
		h = (h ^ h>>13) * 3266489909
		h ^= h >> 16
		return h
	}
}

// SFC32 is the small fast counting generator with 128 bits of state.
type SFC32 struct {
	a, b, c, d uint32
}

func NewSFC32(a, b, c, d uint32) *SFC32 {
	return &SFC32{a: a, b: b, c: c, d: d}
}

// Uint32 advances the generator.
func (g *SFC32) Uint32() uint32 {
	t := g.a + g.b
	g.a = g.b ^ g.b>>9
	g.b = g.c + g.c<<3
	g.c = g.c<<21 | g.c>>11
	g.d++
	t += g.d
	g.c += t
	return t
}

// Next returns a uniform value in [0, 1).
func (g *SFC32) Next() float64 {
	return float64(g.Uint32()) / 4294967296
}

// Source is the uniform [0, 1) stream consumed by scene composition.
type Source interface {
	Next() float64
}

// New seeds an SFC32 generator from the hash of seed.
func New(seed string) *SFC32 {
	h := Xmur3(seed)
	return NewSFC32(h(), h(), h(), h())
}

// NewInt seeds from the decimal form of an integer seed.
func NewInt(seed int64) *SFC32 {
	return New(strconv.FormatInt(seed, 10))
}

// Counter counts draws made from the wrapped source. Scene composition uses
// it to report how much entropy a scene consumed.
type Counter struct {
	Source
	Draws int
}

func (c *Counter) Next() float64 {
	c.Draws++
	return c.Source.Next()
}
