// Package config handles game configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/spaaace/internal/asteroid"
	"github.com/Faultbox/spaaace/internal/engine/camera"
	"github.com/Faultbox/spaaace/internal/flight"
	"github.com/Faultbox/spaaace/internal/logger"
)

// ErrInvalid wraps every validation failure returned by Validate.
var ErrInvalid = errors.New("config: invalid")

// Config holds all game settings.
type Config struct {
	Window   WindowConfig              `yaml:"window"`
	Asteroid asteroid.GenerationConfig `yaml:"asteroid"`
	Field    asteroid.FieldConfig      `yaml:"field"`
	Ship     flight.Settings           `yaml:"ship"`
	Camera   camera.RigSettings        `yaml:"camera"`
	Audio    AudioConfig               `yaml:"audio"`
	Logging  LoggingConfig             `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	ShowStats  bool   `yaml:"show_stats"`
}

// AudioConfig holds sound settings.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // master, 0 to 1
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "SPAAACE",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Asteroid: asteroid.DefaultConfig(),
		Field:    asteroid.DefaultFieldConfig(),
		Ship:     flight.DefaultSettings(),
		Camera:   camera.DefaultRigSettings(),
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.6,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks every section and reports all problems together.
func (c *Config) Validate() error {
	var err error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("window: size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if e := c.Asteroid.Validate(); e != nil {
		err = multierr.Append(err, fmt.Errorf("asteroid: %w", e))
	}
	if c.Field.Count < 0 || c.Field.Workers < 0 || c.Field.Spread < 0 {
		err = multierr.Append(err, fmt.Errorf("field: count %d, workers %d and spread %v must not be negative",
			c.Field.Count, c.Field.Workers, c.Field.Spread))
	}
	if e := c.Ship.Validate(); e != nil {
		err = multierr.Append(err, fmt.Errorf("ship: %w", e))
	}
	if c.Camera.TrackMaxSeconds < 0 || c.Camera.NoseRotationLerpSpeed < 0 {
		err = multierr.Append(err, errors.New("camera: track_max_seconds and nose_rotation_lerp_speed must not be negative"))
	}
	if !(c.Audio.Volume >= 0 && c.Audio.Volume <= 1) {
		err = multierr.Append(err, fmt.Errorf("audio: volume %v must be in [0, 1]", c.Audio.Volume))
	}
	if _, e := logger.ParseLevel(c.Logging.Level); e != nil {
		err = multierr.Append(err, fmt.Errorf("logging: %w", e))
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}
