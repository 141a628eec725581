// Package tracer walks curves through a vector field with fixed-step Euler
// integration: streamlines that follow the field and stop at bodies, and
// equipotentials that run perpendicular to it and close on themselves.
//
// Traces never fail. A trace that meets a singularity, a body, or a zero
// field simply stops, and the returned curve records why.
package tracer
