// Package config implements JSON-backed application configuration: window
// and backend selection, emulation region, and debug/trace flags.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all application configuration.
type Config struct {
	Window    WindowConfig    `json:"window"`
	Emulation EmulationConfig `json:"emulation"`
	Debug     DebugConfig     `json:"debug"`

	configPath string
}

// WindowConfig controls the display backend's window.
type WindowConfig struct {
	Scale      int    `json:"scale"` // NES resolution multiplier
	Fullscreen bool   `json:"fullscreen"`
	Backend    string `json:"backend"` // "ebiten", "terminal", "headless"
}

// EmulationConfig controls region and frame pacing.
type EmulationConfig struct {
	Region    string  `json:"region"` // "NTSC" is the only region implemented
	FrameRate float64 `json:"frame_rate"`
}

// DebugConfig controls tracing and diagnostic output.
type DebugConfig struct {
	Trace         bool   `json:"trace"`
	TracePath     string `json:"trace_path"` // empty means stdout
	EnableLogging bool   `json:"enable_logging"`
	LogLevel      string `json:"log_level"` // "DEBUG", "INFO", "WARN", "ERROR"
}

// New returns a configuration with default values.
func New() *Config {
	return &Config{
		Window: WindowConfig{
			Scale:      2,
			Fullscreen: false,
			Backend:    "ebiten",
		},
		Emulation: EmulationConfig{
			Region:    "NTSC",
			FrameRate: 60.0,
		},
		Debug: DebugConfig{
			Trace:         false,
			EnableLogging: false,
			LogLevel:      "INFO",
		},
	}
}

// LoadFromFile loads configuration from a JSON file, writing out the
// default configuration first if path does not yet exist.
func LoadFromFile(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := New()
		if err := cfg.SaveToFile(path); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	cfg.validate()
	cfg.configPath = path
	return cfg, nil
}

// SaveToFile writes the configuration to path as indented JSON.
func (c *Config) SaveToFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("config: creating directory %s: %w", dir, err)
		}
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshaling: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	c.configPath = path
	return nil
}

func (c *Config) validate() {
	if c.Window.Scale <= 0 {
		c.Window.Scale = 1
	}
	switch c.Window.Backend {
	case "ebiten", "terminal", "headless":
	default:
		c.Window.Backend = "ebiten"
	}
	if c.Emulation.FrameRate <= 0 {
		c.Emulation.FrameRate = 60.0
	}
	if c.Emulation.Region == "" {
		c.Emulation.Region = "NTSC"
	}
}

// WindowResolution returns the window's pixel dimensions given the NES's
// native 256x240 resolution and the configured scale.
func (c *Config) WindowResolution() (int, int) {
	return 256 * c.Window.Scale, 240 * c.Window.Scale
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return "./config/nespit.json"
}
