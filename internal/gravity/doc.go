// Package gravity computes the inverse-square field of a set of point masses.
//
// A [Field] offers two views of the same sum. [Field.Get] evaluates it exactly
// at any point from the current body positions; every tracer uses this view.
// [Field.Calculate] refreshes a coarse discrete grid which only backs the
// fast background rendering ([Field.At], [Field.Sample]).
//
// Coordinates are normalised: the canvas spans [-1, 1] on both axes and the
// grid covers [-Overshoot, Overshoot] to keep edge cells away from the frame.
package gravity
