// Package stats records per-frame timings of render loops and formats an exit summary.
package stats

import (
	"sort"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/lixenwraith/particles/render"
)

// Recorder keeps totals and a ring of recent frame durations
// Safe for concurrent use; one recorder may observe several loops
type Recorder struct {
	mu sync.Mutex

	ring  []float64 // milliseconds
	next  int
	count int

	frames  uint64
	skipped uint64
	resets  uint64
	links   uint64
}

// NewRecorder keeps the last capacity durations, capacity below 1 is treated as 1
func NewRecorder(capacity int) *Recorder {
	return &Recorder{ring: make([]float64, max(capacity, 1))}
}

// Observe is a render.Observer
func (r *Recorder) Observe(s render.FrameStats) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.frames++
	if s.Skipped {
		r.skipped++
		return
	}
	r.resets += uint64(s.Resets)
	r.links += uint64(s.Links)

	r.ring[r.next] = float64(s.Duration) / float64(time.Millisecond)
	r.next = (r.next + 1) % len(r.ring)
	if r.count < len(r.ring) {
		r.count++
	}
}

// Summary is a snapshot of recorded frames
type Summary struct {
	Frames   uint64
	Skipped  uint64
	Resets   uint64
	AvgLinks float64

	// Over the retained window, in milliseconds
	MeanMs float64
	P95Ms  float64
	MaxMs  float64
}

// Summary computes totals and window statistics
func (r *Recorder) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Summary{Frames: r.frames, Skipped: r.skipped, Resets: r.resets}
	if drawn := r.frames - r.skipped; drawn > 0 {
		s.AvgLinks = float64(r.links) / float64(drawn)
	}
	if r.count == 0 {
		return s
	}

	sorted := append([]float64(nil), r.window()...)
	sort.Float64s(sorted)
	s.MeanMs = stat.Mean(sorted, nil)
	s.P95Ms = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	s.MaxMs = sorted[len(sorted)-1]
	return s
}

// Window returns retained durations oldest first, in milliseconds
func (r *Recorder) Window() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]float64(nil), r.window()...)
}

func (r *Recorder) window() []float64 {
	if r.count < len(r.ring) {
		return r.ring[:r.count]
	}
	out := make([]float64, 0, len(r.ring))
	out = append(out, r.ring[r.next:]...)
	return append(out, r.ring[:r.next]...)
}
