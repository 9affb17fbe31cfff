package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// ChirpGenerator sweeps a sine linearly between two frequencies with a short attack and exponential tail
type ChirpGenerator struct {
	sr        beep.SampleRate
	from, to  float64
	amplitude float64
	pos       int
	samples   int
	attack    int
	phase     float64
}

// NewChirpGenerator creates a finite chirp of the given duration
func NewChirpGenerator(sr beep.SampleRate, from, to float64, d time.Duration, amplitude float64) *ChirpGenerator {
	return &ChirpGenerator{
		sr:        sr,
		from:      from,
		to:        to,
		amplitude: amplitude,
		samples:   sr.N(d),
		attack:    max(sr.N(cueAttackMs*time.Millisecond), 1),
	}
}

func (g *ChirpGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.samples {
			return i, i > 0
		}
		progress := float64(g.pos) / float64(g.samples)
		freq := g.from + (g.to-g.from)*progress

		// Phase accumulation keeps the sweep click-free
		g.phase += freq / float64(g.sr)
		g.phase -= math.Floor(g.phase)

		envelope := math.Min(float64(g.pos)/float64(g.attack), 1.0) * math.Exp(-progress*3)
		sample := g.amplitude * envelope * math.Sin(2*math.Pi*g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChirpGenerator) Err() error {
	return nil
}
