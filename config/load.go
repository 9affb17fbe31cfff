package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Environment overrides, applied over file values
const (
	EnvCount             = "PARTICLES_COUNT"
	EnvColors            = "PARTICLES_COLORS" // JSON array of color strings
	EnvBackground        = "PARTICLES_BACKGROUND"
	EnvInteractionRadius = "PARTICLES_INTERACTION_RADIUS"
	EnvMaxSpeed          = "PARTICLES_MAX_SPEED"
	EnvConnectDistance   = "PARTICLES_CONNECT_DISTANCE"
	EnvAudio             = "PARTICLES_AUDIO"
)

// Load builds the effective configuration: defaults, then the optional file, then environment
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
	}
	ApplyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, errors.WithMessage(err, "config")
	}
	return cfg, nil
}

// LoadFile decodes a TOML or YAML file over the defaults, chosen by extension
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := decodeFile(path, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.WithMessagef(err, "config %s", path)
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read config %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return errors.Wrapf(err, "decode toml %s", path)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return errors.Wrapf(err, "decode yaml %s", path)
		}
	default:
		return errors.Errorf("config %s: unsupported extension %q", path, ext)
	}
	return nil
}

// ApplyEnv overrides cfg from PARTICLES_* variables, ignoring unparsable values
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvCount); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ParticleCount = n
		}
	}

	if v := os.Getenv(EnvColors); v != "" {
		var colors []string
		if err := json.Unmarshal([]byte(v), &colors); err == nil {
			cfg.ParticleColors = colors
		}
	}

	if v := os.Getenv(EnvBackground); v != "" {
		cfg.BackgroundColor = v
	}

	envFloat(EnvInteractionRadius, &cfg.InteractionRadius)
	envFloat(EnvMaxSpeed, &cfg.MaxSpeed)
	envFloat(EnvConnectDistance, &cfg.ConnectDistance)

	if v := os.Getenv(EnvAudio); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Audio = b
		}
	}
}

func envFloat(key string, dst *float64) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}
