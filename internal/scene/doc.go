// Package scene composes one artwork from a seed and produces its per-frame
// draw list.
//
// Composition consumes the seeded source in a fixed order, so a seed always
// yields the same bodies, moons, toggles and palette. Frames are produced by
// a single owner: a Scene is not safe for concurrent use.
package scene
