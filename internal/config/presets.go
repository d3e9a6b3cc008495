package config

var Presets = map[string]map[string]*Config{
	"pendulum": {
		"small": {
			Pendulum: PendulumConfig{Amplitude: 10, Length: 2, Mass: 1, Damping: true},
		},
		"wide": {
			Pendulum: PendulumConfig{Amplitude: 80, Length: 2, Mass: 1, Damping: true},
		},
		"long": {
			Pendulum: PendulumConfig{Amplitude: 30, Length: 5, Mass: 1, Damping: true},
		},
		"ideal": {
			Pendulum: PendulumConfig{Amplitude: 30, Length: 2, Mass: 1, Damping: false},
		},
	},
	"uniform": {
		"slow": {
			Uniform: UniformConfig{Velocity: 2, WheelRadius: 0.2},
		},
		"fast": {
			Uniform: UniformConfig{Velocity: 15, WheelRadius: 0.3},
		},
		"reverse": {
			Uniform: UniformConfig{Velocity: -5, WheelRadius: 0.2},
		},
	},
	"accelerated": {
		"launch": {
			Accelerated: AcceleratedConfig{InitialVelocity: 0, Acceleration: 3, WheelRadius: 0.2},
		},
		"braking": {
			Accelerated: AcceleratedConfig{InitialVelocity: 10, Acceleration: -1, WheelRadius: 0.2},
		},
		"turnaround": {
			Accelerated: AcceleratedConfig{InitialVelocity: 5, Acceleration: -2, WheelRadius: 0.2},
		},
	},
}

func GetPreset(demo, preset string) *Config {
	demoPresets, ok := Presets[demo]
	if !ok {
		return nil
	}
	cfg, ok := demoPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(demo string) []string {
	demoPresets, ok := Presets[demo]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(demoPresets))
	for name := range demoPresets {
		names = append(names, name)
	}
	return names
}

// ApplyPreset copies the named preset's section for demo into c. It reports false
// when the preset does not exist.
func (c *Config) ApplyPreset(demo, preset string) bool {
	p := GetPreset(demo, preset)
	if p == nil {
		return false
	}
	switch demo {
	case "pendulum":
		c.Pendulum = p.Pendulum
	case "uniform":
		c.Uniform = p.Uniform
	case "accelerated":
		c.Accelerated = p.Accelerated
	}
	return true
}
