package field

import (
	"github.com/lixenwraith/particles/config"
	"github.com/lixenwraith/particles/palette"
	"github.com/lixenwraith/particles/parameter"
	"gonum.org/v1/gonum/spatial/r2"
)

// NewParticle creates a randomized particle within bounds
// Draw order: position, size, color, velocity, age, max age
func NewParticle(b Bounds, colors []palette.Paint, rng Source) (Particle, error) {
	if len(colors) == 0 {
		return Particle{}, &config.ConfigError{Field: "particle_colors", Reason: "palette is empty"}
	}

	pos := b.RandomPoint(rng)
	size := parameter.ParticleSizeMin + rng.Float64()*parameter.ParticleSizeSpan

	idx := int(rng.Float64() * float64(len(colors)))
	if idx >= len(colors) {
		idx = len(colors) - 1
	}

	vx := (rng.Float64() - 0.5) * parameter.ParticleInitialSpeed
	vy := (rng.Float64() - 0.5) * parameter.ParticleInitialSpeed

	age := rng.Float64() * parameter.ParticleAgeSpan
	maxAge := parameter.ParticleMaxAgeMin + rng.Float64()*parameter.ParticleMaxAgeSpan

	return Particle{
		Pos:    pos,
		Vel:    r2.Vec{X: vx, Y: vy},
		Rest:   pos,
		Size:   size,
		Color:  colors[idx],
		Age:    age,
		MaxAge: maxAge,
	}, nil
}
