package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/motionlab/internal/demos"
	"github.com/san-kum/motionlab/internal/sim"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Demo != "pendulum" {
		t.Errorf("expected demo pendulum, got %s", cfg.Demo)
	}
	if cfg.Timestep != 0.016 {
		t.Errorf("expected timestep 0.016, got %f", cfg.Timestep)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero timestep", func(c *Config) { c.Timestep = 0 }},
		{"negative timestep", func(c *Config) { c.Timestep = -0.01 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"zero ticks", func(c *Config) { c.MaxTicks = 0 }},
		{"bad wheel mode", func(c *Config) { c.WheelMode = "spline" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "motionlab.yaml")
	cfg := DefaultConfig()
	cfg.Uniform.Velocity = 12
	cfg.Pendulum.Damping = false

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Uniform.Velocity != 12 {
		t.Errorf("expected velocity 12, got %f", loaded.Uniform.Velocity)
	}
	if loaded.Pendulum.Damping {
		t.Error("expected damping off")
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("accelerated:\n  acceleration: 4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Accelerated.Acceleration != 4 {
		t.Errorf("expected acceleration 4, got %f", cfg.Accelerated.Acceleration)
	}
	if cfg.Accelerated.WheelRadius != 0.2 {
		t.Errorf("expected default wheel radius kept, got %f", cfg.Accelerated.WheelRadius)
	}
	if cfg.Timestep != DefaultTimestep {
		t.Errorf("expected default timestep, got %f", cfg.Timestep)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("timestep: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected validation error")
	}
}

func TestParams(t *testing.T) {
	tests := []struct {
		demo     string
		expected int
	}{
		{"pendulum", 4},
		{"uniform", 2},
		{"accelerated", 3},
		{"cartpole", 0},
	}

	cfg := DefaultConfig()
	for _, tt := range tests {
		if got := len(cfg.Params(tt.demo)); got != tt.expected {
			t.Errorf("demo %s: expected %d params, got %d", tt.demo, tt.expected, got)
		}
	}
	if cfg.Params("pendulum")["damping"] != 1 {
		t.Error("expected damping encoded as 1")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("uniform", "reverse")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Uniform.Velocity != -5 {
		t.Errorf("expected velocity -5, got %f", cfg.Uniform.Velocity)
	}
	if GetPreset("uniform", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "slow") != nil {
		t.Error("expected nil for nonexistent demo")
	}
}

func TestListPresets(t *testing.T) {
	if len(ListPresets("pendulum")) == 0 {
		t.Error("expected presets for pendulum")
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent demo")
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.ApplyPreset("accelerated", "braking") {
		t.Fatal("expected preset to apply")
	}
	if cfg.Accelerated.Acceleration != -1 || cfg.Accelerated.InitialVelocity != 10 {
		t.Errorf("preset not applied: %+v", cfg.Accelerated)
	}
	if cfg.Uniform.Velocity != 5 {
		t.Error("other demos must keep their settings")
	}
	if cfg.ApplyPreset("accelerated", "warp") {
		t.Error("expected false for unknown preset")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvTimestep, "0.01")
	t.Setenv(EnvFPS, "30")
	t.Setenv(EnvWheelMode, "closed")
	t.Setenv(EnvListen, "127.0.0.1:9999")

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if cfg.Timestep != 0.01 || cfg.FPS != 30 || cfg.WheelMode != "closed" || cfg.Listen != "127.0.0.1:9999" {
		t.Errorf("env not applied: %+v", cfg)
	}
}

func TestApplyEnvRejectsGarbage(t *testing.T) {
	t.Setenv(EnvTimestep, "fast")
	if err := DefaultConfig().ApplyEnv(); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte(EnvMaxTicks+"=1234\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvMaxTicks, "")
	os.Unsetenv(EnvMaxTicks)

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatal(err)
	}
	if cfg.MaxTicks != 1234 {
		t.Errorf("expected max ticks 1234 from .env, got %d", cfg.MaxTicks)
	}
}

func TestNewModel(t *testing.T) {
	reg := demos.NewRegistry()
	cfg := DefaultConfig()
	cfg.Uniform.Velocity = 9
	cfg.WheelMode = "closed"

	m, err := cfg.NewModel(reg, "glb")
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	if m.Name() != demos.UniformName {
		t.Errorf("expected uniform, got %s", m.Name())
	}
	if m.GetParams()["velocity"] != 9 {
		t.Errorf("expected velocity 9, got %f", m.GetParams()["velocity"])
	}

	m, err = cfg.NewModel(reg, "accelerated")
	if err != nil {
		t.Fatal(err)
	}
	if m.(*demos.Accelerated).Wheel != demos.WheelClosed {
		t.Error("expected closed wheel mode from config")
	}
}

func TestNewModelRejectsBadParams(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pendulum.Length = -1

	_, err := cfg.NewModel(demos.NewRegistry(), "pendulum")
	if !errors.Is(err, sim.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
	if _, err := cfg.NewModel(demos.NewRegistry(), "rocket"); !errors.Is(err, sim.ErrUnknownModel) {
		t.Errorf("expected ErrUnknownModel, got %v", err)
	}
}

func TestNewController(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timestep = 0.01

	c, err := cfg.NewController(demos.NewRegistry(), "pendulum")
	if err != nil {
		t.Fatal(err)
	}
	if c.Timestep() != 0.01 {
		t.Errorf("expected timestep 0.01, got %f", c.Timestep())
	}
}
