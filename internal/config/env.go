package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	EnvTimestep  = "MOTIONLAB_TIMESTEP"
	EnvFPS       = "MOTIONLAB_FPS"
	EnvMaxTicks  = "MOTIONLAB_MAX_TICKS"
	EnvWheelMode = "MOTIONLAB_WHEEL_MODE"
	EnvListen    = "MOTIONLAB_LISTEN"
)

// LoadDotEnv loads the given .env files into the process environment. Missing
// files are not an error; variables already set win over file values.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides loop settings from MOTIONLAB_* variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvTimestep); v != "" {
		dt, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimestep, err)
		}
		c.Timestep = dt
	}
	if v := os.Getenv(EnvFPS); v != "" {
		fps, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvFPS, err)
		}
		c.FPS = fps
	}
	if v := os.Getenv(EnvMaxTicks); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxTicks, err)
		}
		c.MaxTicks = n
	}
	if v := os.Getenv(EnvWheelMode); v != "" {
		c.WheelMode = v
	}
	if v := os.Getenv(EnvListen); v != "" {
		c.Listen = v
	}
	return c.Validate()
}
