// Package palette parses CSS-style color strings into paints (color + alpha)
// shared by the particle field, the software raster and the browser host.
package palette

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Paint is a color with straight (non-premultiplied) alpha
type Paint struct {
	Color colorful.Color
	Alpha float64
}

// White is the opaque white paint used for links
var White = Paint{Color: colorful.Color{R: 1, G: 1, B: 1}, Alpha: 1}

// WithAlpha returns p with alpha replaced, clamped to [0, 1]
func (p Paint) WithAlpha(a float64) Paint {
	p.Alpha = clamp01(a)
	return p
}

// Over composites p over dst
func (p Paint) Over(dst colorful.Color) colorful.Color {
	if p.Alpha >= 1 {
		return p.Color
	}
	if p.Alpha <= 0 {
		return dst
	}
	return dst.BlendRgb(p.Color, p.Alpha).Clamped()
}

// RGB255 returns 8-bit channels of the color, ignoring alpha
func (p Paint) RGB255() (r, g, b uint8) {
	return p.Color.Clamped().RGB255()
}

// CSS formats p the way a browser canvas expects it
func (p Paint) CSS() string {
	if p.Alpha >= 1 {
		return p.Color.Clamped().Hex()
	}
	r, g, b := p.RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(p.Alpha, 'f', -1, 64))
}

// Parse accepts #rgb, #rrggbb, rgb(r, g, b) and rgba(r, g, b, a)
func Parse(s string) (Paint, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case strings.HasPrefix(s, "#"):
		hex := s
		if len(s) == 4 {
			hex = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
		}
		c, err := colorful.Hex(hex)
		if err != nil {
			return Paint{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		return Paint{Color: c, Alpha: 1}, nil

	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseFunc(s, "rgba(", 4)

	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseFunc(s, "rgb(", 3)
	}
	return Paint{}, fmt.Errorf("unrecognized color %q", s)
}

// ParseAll parses every entry, failing on the first invalid one
func ParseAll(colors []string) ([]Paint, error) {
	out := make([]Paint, 0, len(colors))
	for i, s := range colors {
		p, err := Parse(s)
		if err != nil {
			return nil, fmt.Errorf("color %d: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func parseFunc(s, prefix string, want int) (Paint, error) {
	args := strings.Split(s[len(prefix):len(s)-1], ",")
	if len(args) != want {
		return Paint{}, fmt.Errorf("color %q: expected %d components, got %d", s, want, len(args))
	}

	var ch [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(args[i]), 64)
		if err != nil || v < 0 || v > 255 {
			return Paint{}, fmt.Errorf("color %q: channel %d out of range", s, i)
		}
		ch[i] = v / 255
	}

	alpha := 1.0
	if want == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(args[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return Paint{}, fmt.Errorf("color %q: alpha out of range", s)
		}
		alpha = a
	}

	return Paint{Color: colorful.Color{R: ch[0], G: ch[1], B: ch[2]}, Alpha: alpha}, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
