// Package vmath provides the small set of 2D vector operations used by the
// particle force model, layered over gonum's r2 vectors.
package vmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec builds an r2 vector
func Vec(x, y float64) r2.Vec { return r2.Vec{X: x, Y: y} }

// Dist returns Euclidean distance between a and b
func Dist(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// Length returns |v|
func Length(v r2.Vec) float64 {
	return r2.Norm(v)
}

// ClampLength rescales v to exactly max when longer, preserving direction
// Zero vectors are returned unchanged
func ClampLength(v r2.Vec, limit float64) r2.Vec {
	l := r2.Norm(v)
	if l == 0 || l <= limit {
		return v
	}
	return r2.Scale(limit/l, v)
}

// Finite reports whether both components are finite numbers
func Finite(v r2.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
