package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	path := ConfigPath()
	if path == "" {
		path = findConfigFile()
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	applyFlags(cfg)
	cfg.normalize()
	return cfg, nil
}

// LoadFile returns the defaults overlaid with the YAML file at path. An empty
// path yields the defaults. Flags are not applied.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if err := loadFromFile(cfg, path); err != nil {
		return nil, errors.Wrapf(err, "load config %s", path)
	}
	return cfg, nil
}

// normalize replaces out-of-range values with defaults.
func (c *Config) normalize() {
	def := Default()
	if c.Playback.FPS <= 0 {
		c.Playback.FPS = def.Playback.FPS
	}
	if c.Playback.AngularVelocity < 0 {
		c.Playback.AngularVelocity = def.Playback.AngularVelocity
	}
	if c.Playback.TickRate <= 0 {
		c.Playback.TickRate = def.Playback.TickRate
	}
	if c.Playback.MaxDT <= 0 {
		c.Playback.MaxDT = def.Playback.MaxDT
	}
	if c.Export.Stride < 1 {
		c.Export.Stride = 1
	}
}

// findConfigFile returns the first existing config.yaml in the working
// directory or ConfigDir, or "".
func findConfigFile() string {
	for _, path := range []string{"config.yaml", filepath.Join(ConfigDir(), "config.yaml")} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "TurtleMotion")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "TurtleMotion")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "turtlemotion")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "turtlemotion")
	}
}

// loadFromFile overlays the keys present in path onto cfg.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return errors.Wrap(yaml.Unmarshal(data, cfg), "parse yaml")
}
