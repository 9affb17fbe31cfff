package field

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/particles/config"
	"github.com/lixenwraith/particles/parameter"
	"github.com/lixenwraith/particles/pointer"
	"github.com/lixenwraith/particles/vmath"
)

// Forces is the tuning of the force model
type Forces struct {
	InteractionRadius float64 // pointer repulsion reach (px)
	MaxSpeed          float64 // velocity clamp (px/frame)
	AgeStep           float64 // age added per frame
	RepulsionGain     float64 // pointer offset to velocity delta
	HomingGain        float64 // rest offset to velocity delta
}

// ForcesFromConfig combines configured limits with the fixed gains
func ForcesFromConfig(cfg *config.Config) Forces {
	return Forces{
		InteractionRadius: cfg.InteractionRadius,
		MaxSpeed:          cfg.MaxSpeed,
		AgeStep:           parameter.AgeStep,
		RepulsionGain:     parameter.RepulsionGain,
		HomingGain:        parameter.HomingGain,
	}
}

// Advance moves p by one frame, mutating it in place
// Steps run in a fixed order: integrate, age, bounce, repel, clamp, home, then clamp once more
// Returns true when the particle's lifecycle reset this frame
func Advance(p *Particle, ptr pointer.State, b Bounds, f Forces, rng Source) (reset bool) {
	p.Pos = r2.Add(p.Pos, p.Vel)

	p.Age += f.AgeStep
	if p.Age > p.MaxAge {
		p.Age = 0
		p.Pos = b.RandomPoint(rng)
		p.Rest = p.Pos
		reset = true
	}

	// Bounce inverts velocity only; the next integration brings the particle back in
	if p.Pos.X < 0 || p.Pos.X > b.Width {
		p.Vel.X = -p.Vel.X
	}
	if p.Pos.Y < 0 || p.Pos.Y > b.Height {
		p.Vel.Y = -p.Vel.Y
	}

	if ptr.Active {
		repel(p, ptr.Pos(), f)
	}

	p.Vel = vmath.ClampLength(p.Vel, f.MaxSpeed)

	if !ptr.Active {
		p.Vel = r2.Add(p.Vel, r2.Scale(f.HomingGain, r2.Sub(p.Rest, p.Pos)))
		// Second clamp after homing, so the speed limit holds at the end of every advance
		p.Vel = vmath.ClampLength(p.Vel, f.MaxSpeed)
	}

	return reset
}

// repel pushes velocity away from the pointer, linearly stronger toward the pointer
func repel(p *Particle, at r2.Vec, f Forces) {
	radius := f.InteractionRadius
	if radius <= 0 {
		return
	}

	offset := r2.Sub(at, p.Pos)
	dist := r2.Norm(offset)
	if dist >= radius {
		return
	}

	if dist == 0 || !vmath.Finite(offset) {
		// No direction to push along: full force toward +X, sized as a 1px offset
		p.Vel.X += f.RepulsionGain
		return
	}

	force := (radius - dist) / radius
	p.Vel = r2.Sub(p.Vel, r2.Scale(force*f.RepulsionGain, offset))
}
