package stats

import (
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/particles/render"
)

func frame(ms int) render.FrameStats {
	return render.FrameStats{Duration: time.Duration(ms) * time.Millisecond, Links: 4, Resets: 1}
}

func TestRecorderEmpty(t *testing.T) {
	r := NewRecorder(8)
	s := r.Summary()
	if s != (Summary{}) {
		t.Errorf("empty summary = %+v", s)
	}
	if len(r.Window()) != 0 {
		t.Error("empty window expected")
	}
}

func TestRecorderTotals(t *testing.T) {
	r := NewRecorder(8)
	r.Observe(frame(2))
	r.Observe(frame(4))
	r.Observe(render.FrameStats{Skipped: true, Duration: time.Second})

	s := r.Summary()
	if s.Frames != 3 || s.Skipped != 1 || s.Resets != 2 {
		t.Errorf("totals = %+v", s)
	}
	if s.AvgLinks != 4 {
		t.Errorf("AvgLinks = %v, want 4", s.AvgLinks)
	}
	if math.Abs(s.MeanMs-3) > 1e-9 || s.MaxMs != 4 {
		t.Errorf("Mean/Max = %v/%v, skipped frames must not count", s.MeanMs, s.MaxMs)
	}
}

func TestRecorderRingWraps(t *testing.T) {
	r := NewRecorder(3)
	for ms := 1; ms <= 5; ms++ {
		r.Observe(frame(ms))
	}

	w := r.Window()
	want := []float64{3, 4, 5}
	if len(w) != len(want) {
		t.Fatalf("window = %v, want %v", w, want)
	}
	for i := range want {
		if w[i] != want[i] {
			t.Fatalf("window = %v, want %v", w, want)
		}
	}
	if s := r.Summary(); s.Frames != 5 || s.MaxMs != 5 {
		t.Errorf("summary = %+v", s)
	}
}

func TestRecorderP95(t *testing.T) {
	r := NewRecorder(100)
	for ms := 1; ms <= 100; ms++ {
		r.Observe(frame(ms))
	}
	if p := r.Summary().P95Ms; p < 94 || p > 96 {
		t.Errorf("P95 = %v, want ~95", p)
	}
}

func TestRecorderConcurrent(t *testing.T) {
	r := NewRecorder(16)
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 250; i++ {
				r.Observe(frame(1))
				_ = r.Summary()
			}
		}()
	}
	wg.Wait()

	if s := r.Summary(); s.Frames != 1000 {
		t.Errorf("Frames = %d, want 1000", s.Frames)
	}
}

func TestRecorderReport(t *testing.T) {
	r := NewRecorder(32)
	for ms := 1; ms <= 10; ms++ {
		r.Observe(frame(ms))
	}

	out := r.Report()
	for _, want := range []string{"frames", "p95", "frame time (ms)"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}
