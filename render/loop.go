package render

import (
	"log"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/particles/field"
	"github.com/lixenwraith/particles/palette"
	"github.com/lixenwraith/particles/parameter"
	"github.com/lixenwraith/particles/pointer"
)

// State is the loop lifecycle state
type State int

const (
	Idle    State = iota // no frame pending
	Running              // exactly one frame pending
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// FrameStats describes one completed tick
type FrameStats struct {
	Frame     uint64
	At        time.Time
	Duration  time.Duration
	Pointer   pointer.State
	Particles int
	Links     int
	Resets    int
	Skipped   bool // surface unavailable or frame faulted
}

// Observer receives stats after every tick, on the loop's goroutine
type Observer func(FrameStats)

// Loop owns one field and paints it once per scheduled frame
// Not safe for concurrent use: every method and every frame callback must run on the scheduler's goroutine
type Loop struct {
	field   *field.Field
	surface Surface
	sched   Scheduler
	signal  *pointer.Signal

	background palette.Paint
	link       palette.Paint

	state   State
	pending FrameID
	gen     uint64 // bumped on Stop, invalidates callbacks already handed out
	frame   uint64
	closed  bool
	failing bool // last Begin failed, suppresses repeat logging

	observers []Observer
}

// NewLoop wires a field to its surface; the loop starts Idle
func NewLoop(f *field.Field, surface Surface, sched Scheduler, sig *pointer.Signal, background palette.Paint) *Loop {
	return &Loop{
		field:      f,
		surface:    surface,
		sched:      sched,
		signal:     sig,
		background: background,
		link:       palette.White,
	}
}

// Observe registers fn for frame stats
func (l *Loop) Observe(fn Observer) {
	l.observers = append(l.observers, fn)
}

// State returns the current lifecycle state
func (l *Loop) State() State { return l.state }

// Field returns the driven field
func (l *Loop) Field() *field.Field { return l.field }

// Frames returns the number of ticks run so far
func (l *Loop) Frames() uint64 { return l.frame }

// Start moves Idle to Running and requests the first frame
func (l *Loop) Start() {
	if l.closed || l.state == Running {
		return
	}
	l.state = Running
	l.schedule()
}

// Stop moves Running to Idle and cancels the pending frame
func (l *Loop) Stop() {
	if l.state != Running {
		return
	}
	l.state = Idle
	l.gen++
	l.sched.CancelFrame(l.pending)
	l.pending = 0
}

// Close stops the loop for good; later Start and Resize calls are ignored
func (l *Loop) Close() {
	l.Stop()
	l.closed = true
}

// Resize stops the loop, resizes the surface, rebuilds the particle collection
// against the new bounds and starts again
func (l *Loop) Resize(width, height float64) error {
	if l.closed {
		return nil
	}
	l.Stop()

	width, height = max(width, 0), max(height, 0)
	l.surface.SetSize(width, height)
	if err := l.field.Reset(width, height); err != nil {
		return err
	}

	l.Start()
	return nil
}

func (l *Loop) schedule() {
	gen := l.gen
	l.pending = l.sched.RequestFrame(func(now time.Time) {
		l.tick(gen, now)
	})
}

// tick runs one frame and requests the next unless the loop was stopped meanwhile
func (l *Loop) tick(gen uint64, now time.Time) {
	if l.state != Running || gen != l.gen {
		return
	}
	l.pending = 0
	l.frame++

	stats := l.draw(now)

	if l.state == Running && gen == l.gen {
		l.schedule()
	}

	for _, fn := range l.observers {
		fn(stats)
	}
}

// draw paints one frame, recovering any fault so the animation keeps going
func (l *Loop) draw(now time.Time) (stats FrameStats) {
	start := time.Now()
	stats = FrameStats{Frame: l.frame, At: now}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[render] frame %d recovered: %v", l.frame, r)
			stats.Skipped = true
		}
		stats.Duration = time.Since(start)
	}()

	if err := l.surface.Begin(); err != nil {
		if !l.failing {
			log.Printf("[render] surface unavailable, skipping frames: %v", err)
			l.failing = true
		}
		stats.Skipped = true
		return stats
	}
	if l.failing {
		log.Printf("[render] surface recovered at frame %d", l.frame)
		l.failing = false
	}

	ptr := l.signal.Snapshot()
	stats.Pointer = ptr

	l.surface.Clear(l.background)

	stats.Resets = l.field.Step(ptr, func(p *field.Particle) {
		l.surface.FillCircle(p.Pos.X, p.Pos.Y, p.Size, p.Color)
	})
	stats.Particles = l.field.Len()

	stats.Links = l.field.Links(func(a, b r2.Vec, alpha float64) {
		l.surface.StrokeLine(a.X, a.Y, b.X, b.Y, parameter.LinkWidth, l.link.WithAlpha(alpha))
	})

	if err := l.surface.End(); err != nil {
		log.Printf("[render] frame %d present failed: %v", l.frame, err)
		stats.Skipped = true
	}
	return stats
}
