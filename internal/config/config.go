// Package config loads slideshow configuration from defaults, an optional YAML
// file and environment variables (a .env file in the working directory is
// honoured).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables recognised by Load.
const (
	EnvConfigPath   = "FOLIO_CONFIG_PATH"
	EnvProjectsPath = "FOLIO_PROJECTS_PATH"
	EnvLogLevel     = "FOLIO_LOG_LEVEL"
	EnvLogPath      = "FOLIO_LOG_PATH"
	EnvScale        = "FOLIO_SCALE"
	EnvStart        = "FOLIO_START"
)

// ErrInvalid indicates a configuration value outside its allowed range.
var ErrInvalid = errors.New("invalid configuration")

// Config defines slideshow configuration.
type Config struct {
	Projects ProjectsConfig `yaml:"projects"`
	Layout   LayoutConfig   `yaml:"layout"`
	Timing   TimingConfig   `yaml:"timing"`
	Log      LogConfig      `yaml:"log"`
	Start    int            `yaml:"start"`
}

type ProjectsConfig struct {
	Path string `yaml:"path"`
}

// LayoutConfig sizes the slides in terminal cells relative to the viewport.
type LayoutConfig struct {
	Scale       float64 `yaml:"scale"`        // Neighbour scale factor
	Margin      float64 `yaml:"margin"`       // Edge gap in cells
	SlideWidth  float64 `yaml:"slide_width"`  // Fraction of viewport width
	SlideHeight float64 `yaml:"slide_height"` // Fraction of viewport height
}

type TimingConfig struct {
	Duration  time.Duration `yaml:"duration"`   // Length of one slide motion
	Frame     time.Duration `yaml:"frame"`      // Animation frame interval
	FadeDelay time.Duration `yaml:"fade_delay"` // Background fade start delay
	Lead      time.Duration `yaml:"lead"`
	Trail     time.Duration `yaml:"trail"`
	Arrive    time.Duration `yaml:"arrive"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: LayoutConfig{
			Scale:       0.484375,
			Margin:      1,
			SlideWidth:  0.34,
			SlideHeight: 0.6,
		},
		Timing: TimingConfig{
			Duration:  1662 * time.Millisecond,
			Frame:     33 * time.Millisecond,
			FadeDelay: 250 * time.Millisecond,
			Lead:      70 * time.Millisecond,
			Trail:     300 * time.Millisecond,
			Arrive:    210 * time.Millisecond,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
// path overrides FOLIO_CONFIG_PATH when non-empty.
func Load(path string) (Config, error) {
	// A missing .env is not an error
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if p := os.Getenv(EnvProjectsPath); p != "" {
		cfg.Projects.Path = p
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.Log.Level = level
	}
	if p := os.Getenv(EnvLogPath); p != "" {
		cfg.Log.Path = p
	}
	if s := os.Getenv(EnvScale); s != "" {
		scale, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvScale, err)
		}
		cfg.Layout.Scale = scale
	}
	if s := os.Getenv(EnvStart); s != "" {
		start, err := strconv.Atoi(s)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvStart, err)
		}
		cfg.Start = start
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.Layout.Scale <= 0 || c.Layout.Scale > 1:
		return fmt.Errorf("%w: layout.scale %v not in (0,1]", ErrInvalid, c.Layout.Scale)
	case c.Layout.Margin < 0:
		return fmt.Errorf("%w: layout.margin %v is negative", ErrInvalid, c.Layout.Margin)
	case c.Layout.SlideWidth <= 0 || c.Layout.SlideWidth > 1:
		return fmt.Errorf("%w: layout.slide_width %v not in (0,1]", ErrInvalid, c.Layout.SlideWidth)
	case c.Layout.SlideHeight <= 0 || c.Layout.SlideHeight > 1:
		return fmt.Errorf("%w: layout.slide_height %v not in (0,1]", ErrInvalid, c.Layout.SlideHeight)
	case c.Timing.Duration <= 0:
		return fmt.Errorf("%w: timing.duration must be positive", ErrInvalid)
	case c.Timing.Frame <= 0:
		return fmt.Errorf("%w: timing.frame must be positive", ErrInvalid)
	case c.Timing.FadeDelay < 0 || c.Timing.Lead < 0 || c.Timing.Trail < 0 || c.Timing.Arrive < 0:
		return fmt.Errorf("%w: timing delays must not be negative", ErrInvalid)
	case c.Start < 0:
		return fmt.Errorf("%w: start %d is negative", ErrInvalid, c.Start)
	}
	return nil
}

// ParseLogLevel maps a level name to a slog level, defaulting to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
