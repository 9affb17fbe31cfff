package web

import "github.com/lixenwraith/particles/pointer"

// Client -> server message types
const (
	msgResize    = "resize"
	msgMove      = "move"
	msgEnter     = "enter"
	msgLeave     = "leave"
	msgTouchMove = "touchmove"
	msgTouchEnd  = "touchend"
)

// Rect is the canvas bounding box in viewport pixels, sampled by the page at event time
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ClientMessage is one input event from the page
type ClientMessage struct {
	Type   string  `json:"type"`
	X      float64 `json:"x,omitempty"` // viewport coordinates
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"` // resize only
	Height float64 `json:"height,omitempty"`
	Rect   *Rect   `json:"rect,omitempty"`
}

// Op is one canvas drawing command
type Op struct {
	Op    string  `json:"op"` // clear, circle, line
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	R     float64 `json:"r,omitempty"`
	X1    float64 `json:"x1,omitempty"`
	Y1    float64 `json:"y1,omitempty"`
	W     float64 `json:"w,omitempty"`
	Color string  `json:"color"`
}

// FrameMessage carries one frame of drawing commands to the page
type FrameMessage struct {
	Type    string        `json:"type"` // always "frame"
	Frame   uint64        `json:"frame"`
	Width   float64       `json:"width"`
	Height  float64       `json:"height"`
	Pointer pointer.State `json:"pointer"`
	Ops     []Op          `json:"ops"`
}
