// Package config handles runner and viewer configuration loading and management.
package config

// Config holds all settings.
type Config struct {
	Playback PlaybackConfig `yaml:"playback"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Export   ExportConfig   `yaml:"export"`
	Scene    string         `yaml:"scene"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// PlaybackConfig holds timeline and tick settings.
type PlaybackConfig struct {
	FPS             float64 `yaml:"fps"`              // Default preprocessing rate for scenes that omit one
	AngularVelocity float64 `yaml:"angular_velocity"` // Frame share of a full turn relative to one distance unit
	TickRate        float64 `yaml:"tick_rate"`        // Headless ticks per second
	MaxDT           float64 `yaml:"max_dt"`           // Clamp for a single tick, seconds
}

// ViewerConfig holds display settings.
type ViewerConfig struct {
	Title            string `yaml:"title"`
	Width            int    `yaml:"width"`
	Height           int    `yaml:"height"`
	Fullscreen       bool   `yaml:"fullscreen"`
	VSync            bool   `yaml:"vsync"`
	ScreenshotDir    string `yaml:"screenshot_dir"`
	ScreenshotFormat string `yaml:"screenshot_format"` // png or bmp
}

// ExportConfig holds glTF bake settings.
type ExportConfig struct {
	Dir    string `yaml:"dir"`    // Output directory; empty disables export
	Stride int    `yaml:"stride"` // Keep every Nth frame
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Playback: PlaybackConfig{
			FPS:             30,
			AngularVelocity: 1,
			TickRate:        60,
			MaxDT:           0.1,
		},
		Viewer: ViewerConfig{
			Title:      "turtlemotion",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,

			ScreenshotDir:    "screenshots",
			ScreenshotFormat: "png",
		},
		Export: ExportConfig{
			Dir:    "",
			Stride: 1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
