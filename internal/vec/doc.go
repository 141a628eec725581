// Package vec provides the 2-D vector value type used throughout the field
// and tracer code.
//
// [Vec2] is a plain value: every operation returns a new vector and nothing is
// mutated in place. The arithmetic is delegated to gonum's r2 package.
//
// Normalising the zero vector is the one degenerate case. [Vec2.Normalize]
// returns the zero vector for it instead of propagating NaN, so callers that
// need to distinguish the case should test [Vec2.IsZero] first.
package vec
