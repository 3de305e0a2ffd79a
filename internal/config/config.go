package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWindowWidth  = 800
	DefaultWindowHeight = 600
	DefaultWindowTitle  = "pendula"
	DefaultFPS          = 60
	DefaultGravityY     = -250.0
	DefaultTraceLength  = 4000
	DefaultMass         = 10
)

type Config struct {
	Window       WindowConfig `yaml:"window"`
	GravityY     float64      `yaml:"gravity_y"`
	TraceLength  int          `yaml:"trace_length"`
	DefaultMass  int          `yaml:"default_mass"`
	StartRunning bool         `yaml:"start_running"`
	Balls        []BallConfig `yaml:"balls"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	FPS    int    `yaml:"fps"`
}

type BallConfig struct {
	Mass float64 `yaml:"mass"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
			Title:  DefaultWindowTitle,
			FPS:    DefaultFPS,
		},
		GravityY:    DefaultGravityY,
		TraceLength: DefaultTraceLength,
		DefaultMass: DefaultMass,
		Balls: []BallConfig{
			{Mass: 10, X: 500, Y: 300},
			{Mass: 15, X: 600, Y: 300},
			{Mass: 20, X: 650, Y: 300},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// AnchorX and AnchorY place the immovable pin at the window center.
func (c *Config) AnchorX() float64 { return float64(c.Window.Width) / 2 }
func (c *Config) AnchorY() float64 { return float64(c.Window.Height) / 2 }
