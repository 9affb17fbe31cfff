package web

import (
	"context"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/particles/config"
	"github.com/lixenwraith/particles/field"
	"github.com/lixenwraith/particles/pointer"
	"github.com/lixenwraith/particles/render"
)

// maxSurfaceSide bounds client-reported canvas sizes
const maxSurfaceSide = 8192

// session is one browser tab: its own field, pointer and frame loop
type session struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	sched   *render.TickerScheduler
	signal  *pointer.Signal
	tracker *pointer.Tracker
	loop    *render.Loop

	// Latest canvas box, touched only by the read goroutine
	box pointer.Box
}

func newSession(conn *websocket.Conn, cfg *config.Config, rng field.Source, observers []render.Observer) (*session, error) {
	fld, err := field.New(cfg, rng)
	if err != nil {
		return nil, err
	}
	bg, err := cfg.Background()
	if err != nil {
		return nil, err
	}

	s := &session{
		conn:   conn,
		sched:  render.NewTickerScheduler(cfg.FrameInterval),
		signal: pointer.NewSignal(),
	}
	s.tracker = pointer.NewTracker(s.signal, func() pointer.Box { return s.box })

	surface := &opsSurface{conn: conn, writeMu: &s.writeMu, signal: s.signal}
	s.loop = render.NewLoop(fld, surface, s.sched, s.signal, bg)
	for _, fn := range observers {
		s.loop.Observe(fn)
	}
	return s, nil
}

// run serves the session until the client disconnects or ctx ends
func (s *session) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		_ = s.sched.Run(ctx)
	}()

	// Unblock the reader on shutdown
	go func() {
		select {
		case <-ctx.Done():
			s.conn.Close()
		case <-runDone:
		}
	}()

	s.readLoop()

	// Teardown: stop input first, then cancel the pending frame on the loop goroutine
	s.tracker.Detach()
	closed := make(chan struct{})
	if s.sched.Post(func() {
		s.loop.Close()
		close(closed)
	}) {
		<-closed
	}
	cancel()
	<-runDone
}

func (s *session) readLoop() {
	for {
		var msg ClientMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[web] read: %v", err)
			}
			return
		}
		s.handle(msg)
	}
}

func (s *session) handle(msg ClientMessage) {
	if msg.Rect != nil {
		s.box = pointer.Box{Left: msg.Rect.Left, Top: msg.Rect.Top, Width: msg.Rect.Width, Height: msg.Rect.Height}
	}

	switch msg.Type {
	case msgResize:
		w := min(max(msg.Width, 0), maxSurfaceSide)
		h := min(max(msg.Height, 0), maxSurfaceSide)
		s.sched.Post(func() {
			if err := s.loop.Resize(w, h); err != nil {
				log.Printf("[web] resize %vx%v: %v", w, h, err)
			}
		})
	case msgMove:
		s.tracker.Move(msg.X, msg.Y)
	case msgEnter:
		s.tracker.Enter()
	case msgLeave:
		s.tracker.Leave()
	case msgTouchMove:
		s.tracker.TouchMove(msg.X, msg.Y)
	case msgTouchEnd:
		s.tracker.TouchEnd()
	default:
		log.Printf("[web] unknown message type %q", msg.Type)
	}
}
