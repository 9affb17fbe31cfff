package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/exp/rand"

	"github.com/lixenwraith/particles/config"
	"github.com/lixenwraith/particles/field"
	"github.com/lixenwraith/particles/render"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	cfg := config.Default()
	cfg.ParticleCount = 12
	cfg.FrameInterval = time.Millisecond

	var seed uint64
	srv, err := NewServer(Options{
		Config: cfg,
		NewRand: func() field.Source {
			seed++
			return rand.New(rand.NewSource(seed))
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

// readFrame reads frames until ok accepts one
func readFrame(t *testing.T, conn *websocket.Conn, ok func(FrameMessage) bool) FrameMessage {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	_ = conn.SetReadDeadline(deadline)
	for {
		var msg FrameMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read frame: %v", err)
		}
		if msg.Type == "frame" && ok(msg) {
			return msg
		}
	}
}

func TestServerServesPage(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	for _, want := range []string{"<canvas", "/ws", "preventDefault"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestServerRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.ParticleColors = []string{}
	_, err := NewServer(Options{Config: cfg, NewRand: func() field.Source { return rand.New(rand.NewSource(1)) }})
	if err == nil {
		t.Fatal("expected config error")
	}
}

func TestSessionStreamsFrames(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)
	defer conn.Close()

	if err := conn.WriteJSON(ClientMessage{Type: msgResize, Width: 320, Height: 240}); err != nil {
		t.Fatal(err)
	}

	msg := readFrame(t, conn, func(FrameMessage) bool { return true })

	if msg.Width != 320 || msg.Height != 240 {
		t.Errorf("frame size = %vx%v", msg.Width, msg.Height)
	}
	if len(msg.Ops) == 0 || msg.Ops[0].Op != "clear" {
		t.Fatalf("first op must clear, got %+v", msg.Ops)
	}
	if msg.Ops[0].Color != "rgba(10, 10, 45, 0.9)" {
		t.Errorf("background = %q", msg.Ops[0].Color)
	}
	circles := 0
	for _, op := range msg.Ops {
		if op.Op == "circle" {
			circles++
		}
		if op.Op == "line" && op.W != 0.5 {
			t.Errorf("line width = %v, want 0.5", op.W)
		}
	}
	if circles != 12 {
		t.Errorf("circles = %d, want 12", circles)
	}
}

func TestSessionPointerTranslation(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)
	defer conn.Close()

	if err := conn.WriteJSON(ClientMessage{Type: msgResize, Width: 200, Height: 200}); err != nil {
		t.Fatal(err)
	}
	readFrame(t, conn, func(FrameMessage) bool { return true })

	move := ClientMessage{Type: msgMove, X: 150, Y: 90, Rect: &Rect{Left: 100, Top: 40, Width: 200, Height: 200}}
	if err := conn.WriteJSON(move); err != nil {
		t.Fatal(err)
	}
	msg := readFrame(t, conn, func(m FrameMessage) bool { return m.Pointer.Active })
	if msg.Pointer.X != 50 || msg.Pointer.Y != 50 {
		t.Errorf("pointer = (%v,%v), want (50,50)", msg.Pointer.X, msg.Pointer.Y)
	}

	// Box re-sampled per event: the canvas scrolled up by 30px
	touch := ClientMessage{Type: msgTouchMove, X: 150, Y: 90, Rect: &Rect{Left: 100, Top: 10, Width: 200, Height: 200}}
	if err := conn.WriteJSON(touch); err != nil {
		t.Fatal(err)
	}
	readFrame(t, conn, func(m FrameMessage) bool { return m.Pointer.Y == 80 })

	if err := conn.WriteJSON(ClientMessage{Type: msgTouchEnd}); err != nil {
		t.Fatal(err)
	}
	readFrame(t, conn, func(m FrameMessage) bool { return !m.Pointer.Active })
}

func TestSessionTeardownOnDisconnect(t *testing.T) {
	srv, ts := newTestServer(t)
	conn := dial(t, ts)

	if err := conn.WriteJSON(ClientMessage{Type: msgResize, Width: 100, Height: 100}); err != nil {
		t.Fatal(err)
	}
	readFrame(t, conn, func(FrameMessage) bool { return true })
	if srv.Sessions() != 1 {
		t.Fatalf("Sessions = %d, want 1", srv.Sessions())
	}

	conn.Close()

	deadline := time.Now().Add(3 * time.Second)
	for srv.Sessions() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("session not torn down after disconnect")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSessionObserversPerConnection(t *testing.T) {
	cfg := config.Default()
	cfg.ParticleCount = 4
	cfg.FrameInterval = time.Millisecond

	var built, shared atomic.Int64
	var frames [2]atomic.Int64
	srv, err := NewServer(Options{
		Config:    cfg,
		NewRand:   func() field.Source { return rand.New(rand.NewSource(1)) },
		Observers: []render.Observer{func(render.FrameStats) { shared.Add(1) }},
		SessionObservers: func() []render.Observer {
			i := built.Add(1) - 1
			return []render.Observer{func(render.FrameStats) { frames[i].Add(1) }}
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	for i := 0; i < 2; i++ {
		conn := dial(t, ts)
		defer conn.Close()
		if err := conn.WriteJSON(ClientMessage{Type: msgResize, Width: 50, Height: 50}); err != nil {
			t.Fatal(err)
		}
		readFrame(t, conn, func(FrameMessage) bool { return true })
	}

	if built.Load() != 2 {
		t.Fatalf("SessionObservers built %d times, want 2", built.Load())
	}

	deadline := time.Now().Add(3 * time.Second)
	for frames[0].Load() == 0 || frames[1].Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("per-session observers not called: %d/%d", frames[0].Load(), frames[1].Load())
		}
		time.Sleep(5 * time.Millisecond)
	}
	// Shared observers run first within a frame
	f0 := frames[0].Load()
	if got := shared.Load(); got < f0 {
		t.Errorf("shared observer saw %d frames, fewer than one session's %d", got, f0)
	}
}
