// Package tui hosts the particle field in a terminal: tcell owns the screen,
// the raster canvas is shown with half blocks and mouse motion drives the pointer.
package tui

import (
	"context"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/lixenwraith/particles/config"
	"github.com/lixenwraith/particles/field"
	"github.com/lixenwraith/particles/pointer"
	"github.com/lixenwraith/particles/raster"
	"github.com/lixenwraith/particles/render"
)

// ErrNoTTY is returned when stdin/stdout are not terminals and no screen was supplied
var ErrNoTTY = errors.New("tui: not a terminal")

// Options configures a terminal host
type Options struct {
	Config    *config.Config
	Rand      field.Source
	Observers []render.Observer
	Screen    tcell.Screen // nil opens the controlling terminal
}

// Host runs one field on one screen
type Host struct {
	cfg    *config.Config
	screen tcell.Screen

	canvas  *raster.Canvas
	sched   *render.TickerScheduler
	signal  *pointer.Signal
	tracker *pointer.Tracker
	loop    *render.Loop

	cancel context.CancelFunc
}

// New validates the configuration and prepares the screen without initializing it
func New(opts Options) (*Host, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}

	screen := opts.Screen
	if screen == nil {
		if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, ErrNoTTY
		}
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, errors.Wrap(err, "tui: open screen")
		}
		screen = s
	}

	fld, err := field.New(opts.Config, opts.Rand)
	if err != nil {
		return nil, err
	}
	bg, err := opts.Config.Background()
	if err != nil {
		return nil, err
	}

	h := &Host{
		cfg:    opts.Config,
		screen: screen,
		canvas: raster.New(float64(opts.Config.CellPixels)),
		sched:  render.NewTickerScheduler(opts.Config.FrameInterval),
		signal: pointer.NewSignal(),
	}
	// Terminal coordinates are converted to logical pixels before reaching the tracker
	h.tracker = pointer.NewTracker(h.signal, nil)
	h.loop = render.NewLoop(fld, &screenSurface{Canvas: h.canvas, screen: screen}, h.sched, h.signal, bg)
	for _, fn := range opts.Observers {
		h.loop.Observe(fn)
	}
	return h, nil
}

// Signal exposes the pointer state driven by this host
func (h *Host) Signal() *pointer.Signal { return h.signal }

// Loop exposes the render loop
func (h *Host) Loop() *render.Loop { return h.loop }

// Run owns the screen until ctx is cancelled or the user quits
func (h *Host) Run(ctx context.Context) error {
	if err := h.screen.Init(); err != nil {
		return errors.Wrap(err, "tui: init screen")
	}
	defer h.screen.Fini()

	h.screen.EnableMouse(tcell.MouseMotionEvents)
	h.screen.EnableFocus()
	h.screen.HideCursor()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	h.cancel = cancel

	quit := make(chan struct{})
	defer close(quit)
	go h.pollEvents(quit)

	h.sched.Post(func() {
		cols, rows := h.screen.Size()
		h.resize(cols, rows)
	})

	err := h.sched.Run(ctx)
	h.loop.Close()
	h.tracker.Detach()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// pollEvents forwards screen events onto the scheduler goroutine
func (h *Host) pollEvents(quit <-chan struct{}) {
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case <-quit:
			return
		default:
		}
		if !h.sched.Post(func() { h.handle(ev) }) {
			return
		}
	}
}

func (h *Host) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		h.resize(cols, rows)
		h.screen.Sync()

	case *tcell.EventMouse:
		col, row := ev.Position()
		if cols, rows := h.screen.Size(); col < 0 || row < 0 || col >= cols || row >= rows {
			h.tracker.Leave()
			return
		}
		x, y := h.cellCenter(col, row)
		h.tracker.Move(x, y)

	case *tcell.EventFocus:
		if ev.Focused {
			h.tracker.Enter()
		} else {
			h.tracker.Leave()
		}

	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			h.cancel()
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
			h.cancel()
		}
	}
}

// resize maps a cell grid to logical pixels: each cell is one dot wide and two dots tall
func (h *Host) resize(cols, rows int) {
	scale := h.canvas.Scale()
	if err := h.loop.Resize(float64(cols)*scale, float64(rows)*2*scale); err != nil {
		log.Printf("[tui] resize %dx%d: %v", cols, rows, err)
	}
}

// cellCenter returns the logical pixel at the middle of a cell
func (h *Host) cellCenter(col, row int) (float64, float64) {
	scale := h.canvas.Scale()
	return (float64(col) + 0.5) * scale, (float64(row) + 0.5) * 2 * scale
}
