package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	if cfg.ParticleCount != 80 {
		t.Errorf("ParticleCount = %d, want 80", cfg.ParticleCount)
	}
	if len(cfg.ParticleColors) != 5 {
		t.Errorf("expected 5 default colors, got %d", len(cfg.ParticleColors))
	}
	if cfg.InteractionRadius != 120 || cfg.MaxSpeed != 1.5 || cfg.ConnectDistance != 150 {
		t.Errorf("unexpected force defaults: %+v", cfg)
	}

	bg, err := cfg.Background()
	if err != nil {
		t.Fatalf("Background: %v", err)
	}
	if bg.Alpha != 0.9 {
		t.Errorf("background alpha = %v, want 0.9", bg.Alpha)
	}
}

func TestDefaultPaletteNotShared(t *testing.T) {
	a := Default()
	a.ParticleColors[0] = "#000000"
	if Default().ParticleColors[0] == "#000000" {
		t.Error("Default must not share the palette slice")
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name  string
		field string
		mod   func(*Config)
	}{
		{"zero count", "particle_count", func(c *Config) { c.ParticleCount = 0 }},
		{"negative count", "particle_count", func(c *Config) { c.ParticleCount = -3 }},
		{"empty palette", "particle_colors", func(c *Config) { c.ParticleColors = nil }},
		{"bad color", "particle_colors", func(c *Config) { c.ParticleColors = []string{"#fff", "chartreuse"} }},
		{"bad background", "background_color", func(c *Config) { c.BackgroundColor = "rgba(1,2)" }},
		{"negative radius", "interaction_radius", func(c *Config) { c.InteractionRadius = -1 }},
		{"zero max speed", "max_speed", func(c *Config) { c.MaxSpeed = 0 }},
		{"negative connect", "connect_distance", func(c *Config) { c.ConnectDistance = -10 }},
		{"NaN radius", "interaction_radius", func(c *Config) { c.InteractionRadius = math.NaN() }},
		{"infinite radius", "interaction_radius", func(c *Config) { c.InteractionRadius = math.Inf(1) }},
		{"NaN max speed", "max_speed", func(c *Config) { c.MaxSpeed = math.NaN() }},
		{"infinite max speed", "max_speed", func(c *Config) { c.MaxSpeed = math.Inf(1) }},
		{"NaN connect", "connect_distance", func(c *Config) { c.ConnectDistance = math.NaN() }},
		{"infinite connect", "connect_distance", func(c *Config) { c.ConnectDistance = math.Inf(-1) }},
		{"zero interval", "frame_interval", func(c *Config) { c.FrameInterval = 0 }},
		{"zero cell pixels", "cell_pixels", func(c *Config) { c.CellPixels = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mod(cfg)

			err := cfg.Validate()
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("expected *ConfigError, got %v", err)
			}
			if ce.Field != tt.field {
				t.Errorf("Field = %q, want %q", ce.Field, tt.field)
			}
		})
	}
}

func TestPaletteEmpty(t *testing.T) {
	cfg := Default()
	cfg.ParticleColors = []string{}

	var ce *ConfigError
	if _, err := cfg.Palette(); !errors.As(err, &ce) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestLoadFileTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.toml")
	data := `
particle_count = 40
particle_colors = ["#ff0000", "rgb(0, 255, 0)"]
max_speed = 2.5
frame_interval = "33ms"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.ParticleCount != 40 {
		t.Errorf("ParticleCount = %d, want 40", cfg.ParticleCount)
	}
	if len(cfg.ParticleColors) != 2 {
		t.Errorf("expected 2 colors, got %v", cfg.ParticleColors)
	}
	if cfg.MaxSpeed != 2.5 {
		t.Errorf("MaxSpeed = %v, want 2.5", cfg.MaxSpeed)
	}
	if cfg.FrameInterval != 33*time.Millisecond {
		t.Errorf("FrameInterval = %v, want 33ms", cfg.FrameInterval)
	}
	// Untouched keys keep defaults
	if cfg.ConnectDistance != 150 {
		t.Errorf("ConnectDistance = %v, want default 150", cfg.ConnectDistance)
	}
}

func TestLoadFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.yaml")
	data := "particle_count: 12\nconnect_distance: 90\nbackground_color: \"#000\"\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.ParticleCount != 12 || cfg.ConnectDistance != 90 || cfg.BackgroundColor != "#000" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadFileInvalidValue(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		field string
	}{
		{"empty palette", "particle_colors = []\n", "particle_colors"},
		{"nan max speed", "max_speed = nan\n", "max_speed"},
		{"inf radius", "interaction_radius = inf\n", "interaction_radius"},
		{"negative inf connect", "connect_distance = -inf\n", "connect_distance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.toml")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}

			_, err := LoadFile(path)
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("expected wrapped ConfigError, got %v", err)
			}
			if ce.Field != tt.field {
				t.Errorf("Field = %q, want %q", ce.Field, tt.field)
			}
		})
	}
}

func TestLoadEnvNonFinite(t *testing.T) {
	t.Setenv(EnvMaxSpeed, "NaN")

	_, err := Load("")
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if ce.Field != "max_speed" {
		t.Errorf("Field = %q, want max_speed", ce.Field)
	}
}

func TestLoadFileUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.ini")
	if err := os.WriteFile(path, []byte("x=1"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected error for .ini")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvCount, "25")
	t.Setenv(EnvColors, `["#111111", "rgba(1, 2, 3, 0.5)"]`)
	t.Setenv(EnvMaxSpeed, "3")
	t.Setenv(EnvConnectDistance, "not-a-number")
	t.Setenv(EnvAudio, "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ParticleCount != 25 {
		t.Errorf("ParticleCount = %d, want 25", cfg.ParticleCount)
	}
	if len(cfg.ParticleColors) != 2 || cfg.ParticleColors[1] != "rgba(1, 2, 3, 0.5)" {
		t.Errorf("ParticleColors = %v", cfg.ParticleColors)
	}
	if cfg.MaxSpeed != 3 {
		t.Errorf("MaxSpeed = %v, want 3", cfg.MaxSpeed)
	}
	if cfg.ConnectDistance != 150 {
		t.Errorf("unparsable env must be ignored, got %v", cfg.ConnectDistance)
	}
	if !cfg.Audio {
		t.Error("Audio should be enabled from env")
	}
}

func TestLoadEnvInvalid(t *testing.T) {
	t.Setenv(EnvCount, "-1")

	_, err := Load("")
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}
