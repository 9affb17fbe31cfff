// Package field implements the interactive particle field: particle state, the
// randomized factory, the per-frame force model and the particle collection.
package field

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/particles/palette"
	"github.com/lixenwraith/particles/vmath"
)

// Source is a uniform random source over [0, 1)
// Satisfied by *rand.Rand from math/rand, math/rand/v2 and golang.org/x/exp/rand
type Source interface {
	Float64() float64
}

// Particle is one animated point, owned by its Field
type Particle struct {
	Pos  r2.Vec // surface-local position (px)
	Vel  r2.Vec // px/frame
	Rest r2.Vec // home position, drifted back to while the pointer is away

	Size  float64 // render radius, [1, 4)
	Color palette.Paint

	Age    float64 // always >= 0
	MaxAge float64 // [100, 200)
}

// Speed returns |Vel|
func (p *Particle) Speed() float64 {
	return vmath.Length(p.Vel)
}

// Bounds is the drawing surface extent in surface-local pixels
type Bounds struct {
	Width, Height float64
}

// Empty reports a zero-area surface
func (b Bounds) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Contains reports whether v lies within the bounds widened by slack on every side
func (b Bounds) Contains(v r2.Vec, slack float64) bool {
	return v.X >= -slack && v.X <= b.Width+slack && v.Y >= -slack && v.Y <= b.Height+slack
}

// RandomPoint draws a uniform point in [0,w) x [0,h), x first
func (b Bounds) RandomPoint(rng Source) r2.Vec {
	x := rng.Float64() * b.Width
	y := rng.Float64() * b.Height
	return r2.Vec{X: x, Y: y}
}
