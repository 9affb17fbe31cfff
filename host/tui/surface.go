package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/particles/raster"
)

// screenSurface draws into the canvas and presents it on End
type screenSurface struct {
	*raster.Canvas
	screen tcell.Screen
}

func (s *screenSurface) End() error {
	if err := s.Canvas.End(); err != nil {
		return err
	}
	s.Canvas.HalfBlocks(func(col, row int, top, bottom colorful.Color) {
		style := tcell.StyleDefault.Foreground(toTcell(top)).Background(toTcell(bottom))
		s.screen.SetContent(col, row, raster.UpperHalf, nil, style)
	})
	s.screen.Show()
	return nil
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
