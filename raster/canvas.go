// Package raster is a software drawing surface: logical pixels are mapped onto
// a coarse dot grid with alpha compositing, sized for terminal output where one
// character cell shows two dots stacked vertically.
package raster

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"github.com/lixenwraith/particles/palette"
)

// ErrNoArea is returned by Begin while the canvas has no dots to draw on
var ErrNoArea = errors.New("raster: zero-area canvas")

// Canvas implements render.Surface over a dot grid
// One dot spans scale logical pixels on each axis
type Canvas struct {
	scale float64

	logicalW, logicalH float64
	width, height      int // dots

	dots []colorful.Color
}

// New creates an empty canvas; scale below 1 is treated as 1
func New(scale float64) *Canvas {
	if scale < 1 {
		scale = 1
	}
	return &Canvas{scale: scale}
}

// Scale returns logical pixels per dot
func (c *Canvas) Scale() float64 { return c.scale }

// Dots returns the grid dimensions
func (c *Canvas) Dots() (width, height int) { return c.width, c.height }

// Begin fails while the canvas has zero area
func (c *Canvas) Begin() error {
	if c.width == 0 || c.height == 0 {
		return ErrNoArea
	}
	return nil
}

// End is a no-op; callers read dots after End
func (c *Canvas) End() error { return nil }

// Size returns the logical size
func (c *Canvas) Size() (float64, float64) { return c.logicalW, c.logicalH }

// SetSize adjusts logical size and the dot grid, reallocating only if capacity is insufficient
// Contents are reset to black
func (c *Canvas) SetSize(width, height float64) {
	c.logicalW, c.logicalH = max(width, 0), max(height, 0)
	c.width = int(math.Ceil(c.logicalW / c.scale))
	c.height = int(math.Ceil(c.logicalH / c.scale))

	size := c.width * c.height
	if cap(c.dots) < size {
		c.dots = make([]colorful.Color, size)
	} else {
		c.dots = c.dots[:size]
		clear(c.dots)
	}
}

// Clear composites bg over every dot; a translucent background leaves fading trails of earlier frames
func (c *Canvas) Clear(bg palette.Paint) {
	if len(c.dots) == 0 {
		return
	}
	if bg.Alpha >= 1 {
		// Opaque fill via exponential copy
		c.dots[0] = bg.Color
		for filled := 1; filled < len(c.dots); filled *= 2 {
			copy(c.dots[filled:], c.dots[:filled])
		}
		return
	}
	for i := range c.dots {
		c.dots[i] = bg.Over(c.dots[i])
	}
}

// FillCircle blends every dot whose center lies within the circle
// Circles smaller than a dot still cover the dot holding their center
func (c *Canvas) FillCircle(x, y, radius float64, p palette.Paint) {
	cx, cy := x/c.scale, y/c.scale
	r := max(radius/c.scale, 0.5)

	minX := int(math.Floor(cx - r))
	maxX := int(math.Ceil(cx + r))
	minY := int(math.Floor(cy - r))
	maxY := int(math.Ceil(cy + r))

	hit := false
	for dy := minY; dy <= maxY; dy++ {
		for dx := minX; dx <= maxX; dx++ {
			ox := float64(dx) + 0.5 - cx
			oy := float64(dy) + 0.5 - cy
			if ox*ox+oy*oy <= r*r {
				c.blend(dx, dy, p)
				hit = true
			}
		}
	}
	if !hit {
		c.blend(int(math.Floor(cx)), int(math.Floor(cy)), p)
	}
}

// StrokeLine draws a one-dot-wide line between logical endpoints
// Widths up to one dot render one dot wide; wider strokes repeat the line across the perpendicular axis
func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, p palette.Paint) {
	ax, ay := int(math.Floor(x0/c.scale)), int(math.Floor(y0/c.scale))
	bx, by := int(math.Floor(x1/c.scale)), int(math.Floor(y1/c.scale))

	thick := max(int(math.Round(width/c.scale)), 1)
	steep := abs(by-ay) > abs(bx-ax)
	for k := 0; k < thick; k++ {
		off := k - thick/2
		if steep {
			c.line(ax+off, ay, bx+off, by, p)
		} else {
			c.line(ax, ay+off, bx, by+off, p)
		}
	}
}

// line walks dots from (x0,y0) to (x1,y1) inclusive with Bresenham stepping
func (c *Canvas) line(x0, y0, x1, y1 int, p palette.Paint) {
	dx, dy := x1-x0, y1-y0
	absDx, absDy := abs(dx), abs(dy)

	stepX, stepY := 1, 1
	if dx < 0 {
		stepX = -1
	}
	if dy < 0 {
		stepY = -1
	}

	steps := max(absDx, absDy)
	err := absDx - absDy
	x, y := x0, y0
	for step := 0; step <= steps; step++ {
		c.blend(x, y, p)
		if step == steps {
			break
		}
		e2 := 2 * err
		if e2 > -absDy {
			err -= absDy
			x += stepX
		}
		if e2 < absDx {
			err += absDx
			y += stepY
		}
	}
}

// At returns the dot color, black when out of range
func (c *Canvas) At(x, y int) colorful.Color {
	if !c.inBounds(x, y) {
		return colorful.Color{}
	}
	return c.dots[y*c.width+x]
}

func (c *Canvas) blend(x, y int, p palette.Paint) {
	if !c.inBounds(x, y) {
		return
	}
	idx := y*c.width + x
	c.dots[idx] = p.Over(c.dots[idx])
}

func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
