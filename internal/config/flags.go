package config

import "flag"

var (
	flagConfig       = flag.String("config", "", "Path to config file")
	flagDebug        = flag.Bool("debug", false, "Enable debug logging")
	flagSeed         = flag.Int("seed", -1, "Asteroid field seed (-1 keeps the configured seed)")
	flagSubdivisions = flag.Int("subdivisions", -1, "Asteroid icosphere subdivision level")
	flagAsteroids    = flag.Int("asteroids", -1, "Number of asteroids in the field")
	flagWindowed     = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen   = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth        = flag.Int("width", 0, "Window width")
	flagHeight       = flag.Int("height", 0, "Window height")
	flagMute         = flag.Bool("mute", false, "Disable sound")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Window.ShowStats = true
	}
	if *flagSeed >= 0 {
		cfg.Field.Seed = *flagSeed
	}
	if *flagSubdivisions >= 0 {
		cfg.Asteroid.Subdivisions = *flagSubdivisions
	}
	if *flagAsteroids >= 0 {
		cfg.Field.Count = *flagAsteroids
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagMute {
		cfg.Audio.Enabled = false
	}
}
