package render

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/lixenwraith/particles/parameter"
)

// TickerScheduler fires frame callbacks on a fixed interval from a single goroutine
// Posted tasks run on the same goroutine, so host events can touch the loop without locks
type TickerScheduler struct {
	interval time.Duration

	mu      sync.Mutex
	nextID  FrameID
	pending map[FrameID]func(time.Time)

	tasks chan func()
	done  chan struct{}
}

// NewTickerScheduler creates a scheduler; frames fire only while Run is active
func NewTickerScheduler(interval time.Duration) *TickerScheduler {
	if interval <= 0 {
		interval = parameter.FrameUpdateInterval
	}
	return &TickerScheduler{
		interval: interval,
		pending:  make(map[FrameID]func(time.Time)),
		tasks:    make(chan func(), parameter.EventQueueSize),
		done:     make(chan struct{}),
	}
}

// RequestFrame queues cb for the next tick
func (s *TickerScheduler) RequestFrame(cb func(now time.Time)) FrameID {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	s.pending[s.nextID] = cb
	return s.nextID
}

// CancelFrame drops a queued callback
func (s *TickerScheduler) CancelFrame(id FrameID) {
	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()
}

// Pending returns the number of queued frame callbacks
func (s *TickerScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Post queues fn to run on the scheduler goroutine
// Returns false once Run has exited; must not be called from the scheduler goroutine when the queue may be full
func (s *TickerScheduler) Post(fn func()) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.tasks <- fn:
		return true
	case <-s.done:
		return false
	}
}

// Run drives frames and tasks until ctx is cancelled; call once
func (s *TickerScheduler) Run(ctx context.Context) error {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-s.tasks:
			fn()
		case now := <-ticker.C:
			s.fire(now)
		}
	}
}

// fire runs callbacks queued before this tick in request order
// Callbacks requested while firing wait for the next tick
func (s *TickerScheduler) fire(now time.Time) {
	s.mu.Lock()
	if len(s.pending) == 0 {
		s.mu.Unlock()
		return
	}
	ids := make([]FrameID, 0, len(s.pending))
	for id := range s.pending {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	s.mu.Unlock()

	for _, id := range ids {
		s.mu.Lock()
		cb, ok := s.pending[id]
		delete(s.pending, id)
		s.mu.Unlock()
		// Cancelled by an earlier callback in this batch
		if !ok {
			continue
		}
		cb(now)
	}
}
