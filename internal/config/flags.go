package config

import "flag"

// Flags registered on the default FlagSet. Zero values mean "not given".
var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagLogLevel   = flag.String("log-level", "", "Log level: debug, info, warn, error")
	flagLogFile    = flag.String("log-file", "", "Also log to this rotated file")
	flagScene      = flag.String("scene", "", "Scene file to load")
	flagFPS        = flag.Float64("fps", 0, "Preprocessing frame rate")
	flagTickRate   = flag.Float64("tick-rate", 0, "Headless ticks per second")
	flagExport     = flag.String("export", "", "Directory for glTF timeline export")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagShots      = flag.String("screenshots", "", "Screenshot output directory")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags overrides cfg with every flag that was given a non-zero value.
// -debug wins over -log-level.
func applyFlags(cfg *Config) {
	setString(&cfg.Logging.Level, *flagLogLevel)
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	setString(&cfg.Logging.LogFile, *flagLogFile)
	setString(&cfg.Scene, *flagScene)
	setString(&cfg.Export.Dir, *flagExport)
	setString(&cfg.Viewer.ScreenshotDir, *flagShots)

	if *flagFPS > 0 {
		cfg.Playback.FPS = *flagFPS
	}
	if *flagTickRate > 0 {
		cfg.Playback.TickRate = *flagTickRate
	}

	switch {
	case *flagFullscreen:
		cfg.Viewer.Fullscreen = true
	case *flagWindowed:
		cfg.Viewer.Fullscreen = false
	}
	if *flagWidth > 0 {
		cfg.Viewer.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Viewer.Height = *flagHeight
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
