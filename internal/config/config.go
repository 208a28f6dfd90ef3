// Package config loads the lab's runtime configuration from YAML.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Window struct {
		Title      string `yaml:"title"`
		Width      int    `yaml:"width"`
		Height     int    `yaml:"height"`
		Fullscreen bool   `yaml:"fullscreen"`
	} `yaml:"window"`
	Assets struct {
		Dir string `yaml:"dir"`
	} `yaml:"assets"`
	Audio struct {
		NarrationVolume float64 `yaml:"narration_volume"`
		Muted           bool    `yaml:"muted"`
	} `yaml:"audio"`
	Lab struct {
		DebounceMS  int     `yaml:"debounce_ms"`
		ModelSize   float64 `yaml:"model_size"`
		TableHeight float64 `yaml:"table_height"`
	} `yaml:"lab"`
}

// Default returns the configuration used when no file is present.
// The numeric values match the reference deployment: a 500ms component
// change cooldown, models normalized to a 2-unit span, sitting on a table
// plane at y=0.
func Default() Config {
	cfg := Config{}
	cfg.Window.Title = "Virtual Hardware Lab"
	cfg.Window.Width = 1280
	cfg.Window.Height = 720
	cfg.Assets.Dir = "assets"
	cfg.Audio.NarrationVolume = 0.5
	cfg.Lab.DebounceMS = 500
	cfg.Lab.ModelSize = 2.0
	cfg.Lab.TableHeight = 0.0
	return cfg
}

// Load reads YAML config from path. A missing file yields Default with no
// error; a present-but-invalid file is an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Debounce returns the component-change cooldown as a duration.
func (c Config) Debounce() time.Duration {
	if c.Lab.DebounceMS <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(c.Lab.DebounceMS) * time.Millisecond
}
