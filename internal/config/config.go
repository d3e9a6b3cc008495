package config

import (
	"fmt"
	"math"
	"os"

	"github.com/san-kum/motionlab/internal/demos"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTimestep  = 0.016
	DefaultFPS       = 60
	DefaultMaxTicks  = 10000
	DefaultListen    = ":8080"
	DefaultWheelMode = string(demos.WheelIncremental)
)

type Config struct {
	Demo        string            `yaml:"demo"`
	Timestep    float64           `yaml:"timestep"`
	FPS         int               `yaml:"fps"`
	MaxTicks    int               `yaml:"max_ticks"`
	WheelMode   string            `yaml:"wheel_mode"`
	Listen      string            `yaml:"listen"`
	Pendulum    PendulumConfig    `yaml:"pendulum"`
	Uniform     UniformConfig     `yaml:"uniform"`
	Accelerated AcceleratedConfig `yaml:"accelerated"`
}

type PendulumConfig struct {
	Amplitude float64 `yaml:"amplitude"`
	Length    float64 `yaml:"length"`
	Mass      float64 `yaml:"mass"`
	Damping   bool    `yaml:"damping"`
}

type UniformConfig struct {
	Velocity    float64 `yaml:"velocity"`
	WheelRadius float64 `yaml:"wheel_radius"`
}

type AcceleratedConfig struct {
	InitialVelocity float64 `yaml:"initial_velocity"`
	Acceleration    float64 `yaml:"acceleration"`
	WheelRadius     float64 `yaml:"wheel_radius"`
}

func DefaultConfig() *Config {
	return &Config{
		Demo:      "pendulum",
		Timestep:  DefaultTimestep,
		FPS:       DefaultFPS,
		MaxTicks:  DefaultMaxTicks,
		WheelMode: DefaultWheelMode,
		Listen:    DefaultListen,
		Pendulum: PendulumConfig{
			Amplitude: 30,
			Length:    2,
			Mass:      1,
			Damping:   true,
		},
		Uniform: UniformConfig{
			Velocity:    5,
			WheelRadius: 0.2,
		},
		Accelerated: AcceleratedConfig{
			InitialVelocity: 2,
			Acceleration:    1,
			WheelRadius:     0.2,
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
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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

// Validate checks the clock and loop settings. Per-demo parameters are validated
// by the demos themselves when applied.
func (c *Config) Validate() error {
	if c.Timestep <= 0 || math.IsNaN(c.Timestep) || math.IsInf(c.Timestep, 0) {
		return fmt.Errorf("timestep must be positive, got %v", c.Timestep)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.MaxTicks <= 0 {
		return fmt.Errorf("max_ticks must be positive, got %d", c.MaxTicks)
	}
	if _, err := demos.ParseWheelMode(c.WheelMode); err != nil {
		return fmt.Errorf("wheel_mode: %w", err)
	}
	return nil
}

// Params returns the configured parameters of a demo, keyed the way the demo's
// SetParam expects.
func (c *Config) Params(demo string) map[string]float64 {
	switch demo {
	case "pendulum":
		damping := 0.0
		if c.Pendulum.Damping {
			damping = 1
		}
		return map[string]float64{
			"amplitude": c.Pendulum.Amplitude,
			"length":    c.Pendulum.Length,
			"mass":      c.Pendulum.Mass,
			"damping":   damping,
		}
	case "uniform":
		return map[string]float64{
			"velocity":     c.Uniform.Velocity,
			"wheel_radius": c.Uniform.WheelRadius,
		}
	case "accelerated":
		return map[string]float64{
			"initial_velocity": c.Accelerated.InitialVelocity,
			"acceleration":     c.Accelerated.Acceleration,
			"wheel_radius":     c.Accelerated.WheelRadius,
		}
	default:
		return nil
	}
}
