package pointer

import "sync/atomic"

// Box is the on-screen bounding box of a drawing surface in viewport coordinates
type Box struct {
	Left, Top     float64
	Width, Height float64
}

// BoxFunc reports the surface's current bounding box
// Called on every event, never cached, so scroll and resize are always honored
type BoxFunc func() Box

// Tracker adapts viewport pointer/touch events to a Signal
type Tracker struct {
	signal   *Signal
	box      BoxFunc
	detached atomic.Bool
}

// NewTracker binds a tracker to signal; a nil box means the surface sits at the viewport origin
func NewTracker(signal *Signal, box BoxFunc) *Tracker {
	if box == nil {
		box = func() Box { return Box{} }
	}
	return &Tracker{signal: signal, box: box}
}

// Move handles pointer motion at viewport coordinates
func (t *Tracker) Move(clientX, clientY float64) {
	if t.detached.Load() {
		return
	}
	x, y := t.local(clientX, clientY)
	t.signal.MoveTo(x, y)
}

// Enter handles the pointer entering the surface
func (t *Tracker) Enter() {
	if t.detached.Load() {
		return
	}
	t.signal.SetActive(true)
}

// Leave handles the pointer leaving the surface
func (t *Tracker) Leave() {
	if t.detached.Load() {
		return
	}
	t.signal.SetActive(false)
}

// TouchMove handles a touch drag; the return value tells the host to
// suppress its default scroll behavior for this event
func (t *Tracker) TouchMove(clientX, clientY float64) bool {
	if t.detached.Load() {
		return false
	}
	t.Move(clientX, clientY)
	return true
}

// TouchEnd handles the end of a touch
func (t *Tracker) TouchEnd() {
	t.Leave()
}

// Detach stops the tracker from forwarding any further events and deactivates the signal
func (t *Tracker) Detach() {
	if t.detached.Swap(true) {
		return
	}
	t.signal.SetActive(false)
}

// Detached reports whether Detach was called
func (t *Tracker) Detached() bool {
	return t.detached.Load()
}

func (t *Tracker) local(clientX, clientY float64) (float64, float64) {
	b := t.box()
	return clientX - b.Left, clientY - b.Top
}
