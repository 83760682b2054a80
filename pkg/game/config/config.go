// Package config loads the window and world settings from a YAML file.
//
// The configuration is built once at startup, before any world exists, and
// is passed explicitly to everything that needs it.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full set of startup settings
type Config struct {
	Window    Window `yaml:"window"`
	World     World  `yaml:"world"`
	Speed     int    `yaml:"speed"`
	Locale    Locale `yaml:"locale"`
	WorldsDir string `yaml:"worlds_dir"`

	// Keys rebinds actions by name ("screenshot: f11"). A rebound action
	// answers only to the new code.
	Keys map[string]string `yaml:"keys,omitempty"`
}

// Window controls the drawing area
type Window struct {
	Size      int  `yaml:"size"`
	Inset     int  `yaml:"inset"`
	FrameRate int  `yaml:"frame_rate"`
	Resizable bool `yaml:"resizable"`
}

// World is the board size
type World struct {
	Streets int `yaml:"streets"`
	Avenues int `yaml:"avenues"`
}

// Locale selects the translation catalogue
type Locale struct {
	Dir      string `yaml:"dir"`
	Language string `yaml:"language"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Window: Window{
			Size:      800,
			Inset:     30,
			FrameRate: 60,
			Resizable: true,
		},
		World: World{
			Streets: 10,
			Avenues: 10,
		},
		Speed: 40,
		Locale: Locale{
			Dir:      "locales",
			Language: "en_GB",
		},
		WorldsDir: "worlds",
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the settings can lay out a board
func (c Config) Validate() error {
	if c.World.Streets < 1 || c.World.Avenues < 1 {
		return fmt.Errorf("world must have at least one street and avenue, got %dx%d", c.World.Streets, c.World.Avenues)
	}
	if c.Window.Size <= 0 {
		return fmt.Errorf("window size must be positive, got %d", c.Window.Size)
	}
	if c.Window.Inset < 0 || 2*c.Window.Inset >= c.Window.Size {
		return fmt.Errorf("window inset %d does not fit a %dpx window", c.Window.Inset, c.Window.Size)
	}
	if c.Window.FrameRate <= 0 {
		return fmt.Errorf("frame rate must be positive, got %d", c.Window.FrameRate)
	}
	if c.Speed < 0 || c.Speed > 100 {
		return fmt.Errorf("speed must be between 0 and 100, got %d", c.Speed)
	}
	return nil
}

// Marshal renders the settings as YAML
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
