package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config represents the main configuration
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Scene     SceneConfig     `yaml:"scene"`
	Camera    CameraConfig    `yaml:"camera"`
	Raytracer RaytracerConfig `yaml:"raytracer"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// WindowConfig contains window-related configuration
type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	VSync     bool   `yaml:"vsync"`
	FrameRate int    `yaml:"framerate"` // 0 disables the cap
}

// SceneConfig points at the scene document to render
type SceneConfig struct {
	Path string `yaml:"path"`
}

// CameraConfig contains the starting camera and how input moves it
type CameraConfig struct {
	Position         []float64 `yaml:"position"`
	Pitch            float64   `yaml:"pitch"` // degrees
	Yaw              float64   `yaml:"yaw"`   // degrees
	MovementSpeed    float64   `yaml:"movement_speed"`
	MouseSensitivity float64   `yaml:"mouse_sensitivity"`
}

// RaytracerConfig contains raytracer configuration
type RaytracerConfig struct {
	Workers         int   `yaml:"workers"`          // 0 means one per available CPU
	Background      []int `yaml:"background"`       // RGB, 0-255
	InclusiveBounds bool  `yaml:"inclusive_bounds"` // trace [-w/2, w/2] on both ends
}

// LoggingConfig controls the logger
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // also log to this file when set
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     1600,
			Height:    900,
			Title:     "raycaster",
			VSync:     false,
			FrameRate: 0,
		},
		Scene: SceneConfig{
			Path: "scene.json",
		},
		Camera: CameraConfig{
			Position:         []float64{0, 1, 0},
			Pitch:            0,
			Yaw:              -90, // looking down -z
			MovementSpeed:    0.8,
			MouseSensitivity: 0.1,
		},
		Raytracer: RaytracerConfig{
			Workers:         0,
			Background:      []int{7, 11, 52},
			InclusiveBounds: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// ErrNotFound is returned by LoadConfig when the file does not exist
var ErrNotFound = errors.New("config file not found")

// LoadConfig loads the configuration from a file.
// Missing fields keep their defaults. When the file does not exist the
// defaults are returned together with an error wrapping ErrNotFound.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, fmt.Errorf("%w, using defaults: %s", ErrNotFound, filePath)
		}
		return config, fmt.Errorf("error reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return config, fmt.Errorf("error parsing config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return config, err
	}

	return config, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration can drive a renderer
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.FrameRate < 0 {
		return fmt.Errorf("invalid framerate %d", c.Window.FrameRate)
	}
	if c.Scene.Path == "" {
		return fmt.Errorf("scene.path is required")
	}
	if len(c.Camera.Position) != 3 {
		return fmt.Errorf("camera.position needs 3 components, got %d", len(c.Camera.Position))
	}
	if c.Camera.MovementSpeed < 0 {
		return fmt.Errorf("camera.movement_speed must not be negative")
	}
	if c.Raytracer.Workers < 0 {
		return fmt.Errorf("raytracer.workers must not be negative")
	}
	if len(c.Raytracer.Background) != 3 {
		return fmt.Errorf("raytracer.background needs 3 channels, got %d", len(c.Raytracer.Background))
	}
	for i, ch := range c.Raytracer.Background {
		if ch < 0 || ch > 255 {
			return fmt.Errorf("raytracer.background[%d] out of range: %d", i, ch)
		}
	}
	return nil
}
