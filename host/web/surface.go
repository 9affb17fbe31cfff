package web

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/lixenwraith/particles/palette"
	"github.com/lixenwraith/particles/parameter"
	"github.com/lixenwraith/particles/pointer"
)

// errClosed marks a surface whose connection is gone
var errClosed = errors.New("web: connection closed")

// opsSurface records drawing calls as ops and sends one frame message per End
type opsSurface struct {
	conn    *websocket.Conn
	writeMu *sync.Mutex
	signal  *pointer.Signal

	width, height float64
	frame         uint64
	ops           []Op
	closed        bool
}

func (s *opsSurface) Begin() error {
	if s.closed {
		return errClosed
	}
	s.ops = s.ops[:0]
	return nil
}

func (s *opsSurface) Size() (float64, float64) { return s.width, s.height }

func (s *opsSurface) SetSize(w, h float64) { s.width, s.height = w, h }

func (s *opsSurface) Clear(bg palette.Paint) {
	s.ops = append(s.ops, Op{Op: "clear", Color: bg.CSS()})
}

func (s *opsSurface) FillCircle(x, y, r float64, p palette.Paint) {
	s.ops = append(s.ops, Op{Op: "circle", X: x, Y: y, R: r, Color: p.CSS()})
}

func (s *opsSurface) StrokeLine(x0, y0, x1, y1, width float64, p palette.Paint) {
	s.ops = append(s.ops, Op{Op: "line", X: x0, Y: y0, X1: x1, Y1: y1, W: width, Color: p.CSS()})
}

// End writes the frame; a failed write closes the surface for good
func (s *opsSurface) End() error {
	s.frame++
	msg := FrameMessage{
		Type:    "frame",
		Frame:   s.frame,
		Width:   s.width,
		Height:  s.height,
		Pointer: s.signal.Snapshot(),
		Ops:     s.ops,
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_ = s.conn.SetWriteDeadline(time.Now().Add(parameter.WebWriteTimeout))
	if err := s.conn.WriteJSON(msg); err != nil {
		s.closed = true
		return errors.Wrap(err, "web: write frame")
	}
	return nil
}
