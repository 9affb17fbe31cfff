package field

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/particles/config"
	"github.com/lixenwraith/particles/palette"
	"github.com/lixenwraith/particles/parameter"
	"github.com/lixenwraith/particles/pointer"
	"github.com/lixenwraith/particles/vmath"
)

// Field is the particle collection of one surface together with the bounds it was built for
// Not safe for concurrent use; the render loop owns it
type Field struct {
	count   int
	colors  []palette.Paint
	forces  Forces
	connect float64
	rng     Source

	bounds    Bounds
	particles []Particle
}

// New validates cfg and returns an empty field; call Reset with the surface size to populate it
func New(cfg *config.Config, rng Source) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	colors, err := cfg.Palette()
	if err != nil {
		return nil, err
	}

	return &Field{
		count:   cfg.ParticleCount,
		colors:  colors,
		forces:  ForcesFromConfig(cfg),
		connect: cfg.ConnectDistance,
		rng:     rng,
	}, nil
}

// Reset rebuilds the whole collection for a new surface size
// Bounds and particles are replaced together; no particle carries over
func (f *Field) Reset(width, height float64) error {
	b := Bounds{Width: width, Height: height}

	particles := make([]Particle, 0, f.count)
	for i := 0; i < f.count; i++ {
		p, err := NewParticle(b, f.colors, f.rng)
		if err != nil {
			return err
		}
		particles = append(particles, p)
	}

	f.bounds = b
	f.particles = particles
	return nil
}

// Bounds returns the extent the current collection was built for
func (f *Field) Bounds() Bounds { return f.bounds }

// Forces returns the force model tuning
func (f *Field) Forces() Forces { return f.forces }

// ConnectDistance returns the link threshold
func (f *Field) ConnectDistance() float64 { return f.connect }

// Len returns the number of live particles
func (f *Field) Len() int { return len(f.particles) }

// Particles exposes the live collection; callers must not retain it across Reset
func (f *Field) Particles() []Particle { return f.particles }

// Step advances every particle against one pointer snapshot, calling visit after each advance
// Returns the number of lifecycle resets
func (f *Field) Step(ptr pointer.State, visit func(p *Particle)) int {
	resets := 0
	for i := range f.particles {
		p := &f.particles[i]
		if Advance(p, ptr, f.bounds, f.forces, f.rng) {
			resets++
		}
		if visit != nil {
			visit(p)
		}
	}
	return resets
}

// Links calls visit once per unordered pair closer than the connect distance
// alpha fades linearly from LinkOpacity at distance 0 to 0 at the threshold
// Pairwise O(n^2) scan, sized for the default 40-80 particles
func (f *Field) Links(visit func(a, b r2.Vec, alpha float64)) int {
	c := f.connect
	if c <= 0 {
		return 0
	}

	links := 0
	n := len(f.particles)
	for i := 0; i < n; i++ {
		a := f.particles[i].Pos
		for j := i + 1; j < n; j++ {
			b := f.particles[j].Pos
			d := vmath.Dist(a, b)
			if d >= c {
				continue
			}
			links++
			if visit != nil {
				visit(a, b, (c-d)/c*parameter.LinkOpacity)
			}
		}
	}
	return links
}
