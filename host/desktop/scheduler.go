package desktop

import (
	"sort"
	"time"

	"github.com/lixenwraith/particles/render"
)

// frameScheduler fires frame callbacks from the window's draw pass
// Only touched from the ebiten game goroutine
type frameScheduler struct {
	next    render.FrameID
	pending map[render.FrameID]func(time.Time)
}

func newFrameScheduler() *frameScheduler {
	return &frameScheduler{pending: make(map[render.FrameID]func(time.Time))}
}

func (s *frameScheduler) RequestFrame(cb func(time.Time)) render.FrameID {
	s.next++
	s.pending[s.next] = cb
	return s.next
}

func (s *frameScheduler) CancelFrame(id render.FrameID) {
	delete(s.pending, id)
}

// fire runs callbacks requested before this paint in request order and returns how many ran
func (s *frameScheduler) fire(now time.Time) int {
	if len(s.pending) == 0 {
		return 0
	}
	batch := s.pending
	s.pending = make(map[render.FrameID]func(time.Time))

	ids := make([]render.FrameID, 0, len(batch))
	for id := range batch {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		batch[id](now)
	}
	return len(ids)
}
