// Package desktop hosts the particle field in a native window on ebiten.
// The window host is compiled only with the "desktop" build tag so the default
// build carries no graphics driver requirements.
package desktop

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/particles/config"
	"github.com/lixenwraith/particles/field"
	"github.com/lixenwraith/particles/render"
)

// ErrUnsupported is returned by Run in builds without the desktop tag
var ErrUnsupported = errors.New("desktop: built without the desktop tag")

// Options configures the window host
type Options struct {
	Config    *config.Config
	Rand      field.Source
	Observers []render.Observer
	Width     int // initial window size, zero uses the defaults
	Height    int
	Title     string
}
