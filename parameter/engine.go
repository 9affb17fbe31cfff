package parameter

import "time"

// Frame loop & hosts
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS) for hosts without a native frame signal
	FrameUpdateInterval = 16 * time.Millisecond

	// CellPixels is the logical pixel span of one raster pixel in the terminal host
	// A terminal cell holds two raster pixels stacked vertically (half blocks)
	CellPixels = 8

	// StatsCapacity is the number of recent frame durations kept for the exit summary
	StatsCapacity = 600

	// EventQueueSize bounds the host input channel
	EventQueueSize = 256

	// WebAddr is the default listen address of the browser host
	WebAddr = "localhost:8080"

	// WebWriteTimeout bounds a single frame write to a browser client
	WebWriteTimeout = 2 * time.Second

	// DesktopWidth and DesktopHeight size the initial desktop window
	DesktopWidth  = 1024
	DesktopHeight = 640
)
