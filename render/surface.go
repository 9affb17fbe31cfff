// Package render drives the particle field frame by frame against an abstract
// drawing surface and a host-provided frame scheduler.
package render

import (
	"time"

	"github.com/lixenwraith/particles/palette"
)

// Surface is a 2D drawing target in logical pixels
// Begin/End bracket one frame; a Begin error means the surface is unavailable and the frame is skipped
type Surface interface {
	Begin() error
	Size() (width, height float64)
	SetSize(width, height float64)
	Clear(bg palette.Paint)
	FillCircle(x, y, radius float64, p palette.Paint)
	StrokeLine(x0, y0, x1, y1, width float64, p palette.Paint)
	End() error
}

// FrameID identifies a pending frame request, zero is never issued
type FrameID uint64

// Scheduler runs a callback before the next paint
// Every requested callback fires at most once; CancelFrame on a fired or unknown id is a no-op
type Scheduler interface {
	RequestFrame(cb func(now time.Time)) FrameID
	CancelFrame(id FrameID)
}
