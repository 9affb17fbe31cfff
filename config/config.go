// Package config holds the particle field options, their defaults, validation
// and loading from TOML/YAML files and PARTICLES_* environment variables.
package config

import (
	"fmt"
	"math"
	"time"

	"github.com/lixenwraith/particles/palette"
	"github.com/lixenwraith/particles/parameter"
)

// Config is the full option set of a particle field and its host
type Config struct {
	ParticleCount     int      `toml:"particle_count" yaml:"particle_count"`
	ParticleColors    []string `toml:"particle_colors" yaml:"particle_colors"`
	BackgroundColor   string   `toml:"background_color" yaml:"background_color"`
	InteractionRadius float64  `toml:"interaction_radius" yaml:"interaction_radius"`
	MaxSpeed          float64  `toml:"max_speed" yaml:"max_speed"`
	ConnectDistance   float64  `toml:"connect_distance" yaml:"connect_distance"`

	// Host knobs
	FrameInterval time.Duration `toml:"frame_interval" yaml:"frame_interval"`
	CellPixels    int           `toml:"cell_pixels" yaml:"cell_pixels"`
	Audio         bool          `toml:"audio" yaml:"audio"`
}

// ConfigError reports an invalid option, always detected before the first frame
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Default returns the stock configuration
func Default() *Config {
	colors := make([]string, len(parameter.ParticleColors))
	copy(colors, parameter.ParticleColors)

	return &Config{
		ParticleCount:     parameter.ParticleCount,
		ParticleColors:    colors,
		BackgroundColor:   parameter.BackgroundColor,
		InteractionRadius: parameter.InteractionRadius,
		MaxSpeed:          parameter.MaxSpeed,
		ConnectDistance:   parameter.ConnectDistance,
		FrameInterval:     parameter.FrameUpdateInterval,
		CellPixels:        parameter.CellPixels,
	}
}

// Validate rejects configurations that would only fail mid-frame
func (c *Config) Validate() error {
	switch {
	case c.ParticleCount <= 0:
		return &ConfigError{Field: "particle_count", Reason: fmt.Sprintf("must be positive, got %d", c.ParticleCount)}
	case len(c.ParticleColors) == 0:
		return &ConfigError{Field: "particle_colors", Reason: "palette is empty"}
	case !finite(c.InteractionRadius):
		return &ConfigError{Field: "interaction_radius", Reason: fmt.Sprintf("must be finite, got %v", c.InteractionRadius)}
	case !finite(c.MaxSpeed):
		return &ConfigError{Field: "max_speed", Reason: fmt.Sprintf("must be finite, got %v", c.MaxSpeed)}
	case !finite(c.ConnectDistance):
		return &ConfigError{Field: "connect_distance", Reason: fmt.Sprintf("must be finite, got %v", c.ConnectDistance)}
	case c.InteractionRadius < 0:
		return &ConfigError{Field: "interaction_radius", Reason: fmt.Sprintf("must not be negative, got %v", c.InteractionRadius)}
	case c.MaxSpeed <= 0:
		return &ConfigError{Field: "max_speed", Reason: fmt.Sprintf("must be positive, got %v", c.MaxSpeed)}
	case c.ConnectDistance < 0:
		return &ConfigError{Field: "connect_distance", Reason: fmt.Sprintf("must not be negative, got %v", c.ConnectDistance)}
	case c.FrameInterval <= 0:
		return &ConfigError{Field: "frame_interval", Reason: fmt.Sprintf("must be positive, got %v", c.FrameInterval)}
	case c.CellPixels <= 0:
		return &ConfigError{Field: "cell_pixels", Reason: fmt.Sprintf("must be positive, got %d", c.CellPixels)}
	}

	if _, err := palette.ParseAll(c.ParticleColors); err != nil {
		return &ConfigError{Field: "particle_colors", Reason: err.Error()}
	}
	if _, err := palette.Parse(c.BackgroundColor); err != nil {
		return &ConfigError{Field: "background_color", Reason: err.Error()}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Palette returns the parsed particle colors
func (c *Config) Palette() ([]palette.Paint, error) {
	if len(c.ParticleColors) == 0 {
		return nil, &ConfigError{Field: "particle_colors", Reason: "palette is empty"}
	}
	ps, err := palette.ParseAll(c.ParticleColors)
	if err != nil {
		return nil, &ConfigError{Field: "particle_colors", Reason: err.Error()}
	}
	return ps, nil
}

// Background returns the parsed per-frame fill
func (c *Config) Background() (palette.Paint, error) {
	p, err := palette.Parse(c.BackgroundColor)
	if err != nil {
		return palette.Paint{}, &ConfigError{Field: "background_color", Reason: err.Error()}
	}
	return p, nil
}
