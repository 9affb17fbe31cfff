package desktop

import (
	"testing"
	"time"
)

func TestFrameSchedulerOrderAndOneShot(t *testing.T) {
	s := newFrameScheduler()

	var order []int
	s.RequestFrame(func(time.Time) { order = append(order, 1) })
	id := s.RequestFrame(func(time.Time) { order = append(order, 2) })
	s.RequestFrame(func(time.Time) {
		order = append(order, 3)
		// Requested mid-paint: waits for the next paint
		s.RequestFrame(func(time.Time) { order = append(order, 4) })
	})
	s.CancelFrame(id)

	if n := s.fire(time.Now()); n != 2 {
		t.Fatalf("fired %d, want 2", n)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 3 {
		t.Fatalf("order = %v, want [1 3]", order)
	}

	s.fire(time.Now())
	if len(order) != 3 || order[2] != 4 {
		t.Fatalf("order = %v, want [1 3 4]", order)
	}
	if s.fire(time.Now()) != 0 {
		t.Error("callbacks must fire once")
	}
}

func TestFrameSchedulerCancelUnknown(t *testing.T) {
	s := newFrameScheduler()
	s.CancelFrame(42)
	if s.fire(time.Now()) != 0 {
		t.Error("nothing should fire")
	}
}
