//go:build desktop

package desktop

import (
	"context"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lixenwraith/particles/field"
	"github.com/lixenwraith/particles/palette"
	"github.com/lixenwraith/particles/parameter"
	"github.com/lixenwraith/particles/pointer"
	"github.com/lixenwraith/particles/render"
)

// Run opens the window and blocks until it is closed, Escape is pressed or ctx ends
func Run(ctx context.Context, opts Options) error {
	if err := opts.Config.Validate(); err != nil {
		return err
	}
	fld, err := field.New(opts.Config, opts.Rand)
	if err != nil {
		return err
	}
	bg, err := opts.Config.Background()
	if err != nil {
		return err
	}

	w, h := opts.Width, opts.Height
	if w <= 0 || h <= 0 {
		w, h = parameter.DesktopWidth, parameter.DesktopHeight
	}
	title := opts.Title
	if title == "" {
		title = "particles"
	}

	g := &game{
		ctx:     ctx,
		sched:   newFrameScheduler(),
		signal:  pointer.NewSignal(),
		surface: &imageSurface{},
	}
	g.tracker = pointer.NewTracker(g.signal, nil)
	g.loop = render.NewLoop(fld, g.surface, g.sched, g.signal, bg)
	for _, fn := range opts.Observers {
		g.loop.Observe(fn)
	}

	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// Translucent background fill leaves trails of earlier frames
	ebiten.SetScreenClearedEveryFrame(false)

	err = ebiten.RunGame(g)
	g.loop.Close()
	g.tracker.Detach()
	return err
}

type game struct {
	ctx     context.Context
	sched   *frameScheduler
	signal  *pointer.Signal
	tracker *pointer.Tracker
	loop    *render.Loop
	surface *imageSurface

	width, height int
	inside        bool
}

func (g *game) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if touches := ebiten.AppendTouchIDs(nil); len(touches) > 0 {
		x, y := ebiten.TouchPosition(touches[0])
		g.tracker.TouchMove(float64(x), float64(y))
		g.inside = true
		return nil
	}

	x, y := ebiten.CursorPosition()
	inside := ebiten.IsFocused() && x >= 0 && y >= 0 && x < g.width && y < g.height
	switch {
	case inside:
		g.tracker.Move(float64(x), float64(y))
	case g.inside:
		g.tracker.Leave()
	}
	g.inside = inside
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.surface.target = screen
	g.sched.fire(time.Now())
	g.surface.target = nil
}

// Layout keeps one logical pixel per device-independent pixel and resizes the field on change
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		if err := g.loop.Resize(float64(outsideWidth), float64(outsideHeight)); err != nil {
			log.Printf("[desktop] resize %dx%d: %v", outsideWidth, outsideHeight, err)
		}
	}
	return outsideWidth, outsideHeight
}

// imageSurface draws onto the screen image handed to Draw
type imageSurface struct {
	target        *ebiten.Image
	width, height float64
}

func (s *imageSurface) Begin() error {
	if s.target == nil {
		return errNoTarget
	}
	return nil
}

func (s *imageSurface) End() error { return nil }

func (s *imageSurface) Size() (float64, float64) { return s.width, s.height }

func (s *imageSurface) SetSize(w, h float64) { s.width, s.height = w, h }

func (s *imageSurface) Clear(bg palette.Paint) {
	vector.DrawFilledRect(s.target, 0, 0, float32(s.width), float32(s.height), toNRGBA(bg), false)
}

func (s *imageSurface) FillCircle(x, y, r float64, p palette.Paint) {
	vector.DrawFilledCircle(s.target, float32(x), float32(y), float32(r), toNRGBA(p), true)
}

func (s *imageSurface) StrokeLine(x0, y0, x1, y1, width float64, p palette.Paint) {
	vector.StrokeLine(s.target, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), toNRGBA(p), true)
}

func toNRGBA(p palette.Paint) color.NRGBA {
	r, g, b := p.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(p.Alpha*255 + 0.5)}
}
