package config

import (
	"github.com/san-kum/motionlab/internal/demos"
	"github.com/san-kum/motionlab/internal/sim"
)

// NewModel builds the named demo from reg with this config's parameters applied.
func (c *Config) NewModel(reg *demos.Registry, name string) (sim.Model, error) {
	canonical, err := reg.Resolve(name)
	if err != nil {
		return nil, err
	}
	m, err := reg.New(canonical)
	if err != nil {
		return nil, err
	}
	if a, ok := m.(*demos.Accelerated); ok {
		mode, err := demos.ParseWheelMode(c.WheelMode)
		if err != nil {
			return nil, err
		}
		a.Wheel = mode
	}
	if err := demos.Apply(m, c.Params(canonical)); err != nil {
		return nil, err
	}
	return m, nil
}

// NewController wraps NewModel in a controller running at the configured timestep.
func (c *Config) NewController(reg *demos.Registry, name string, opts ...sim.Option) (*sim.Controller, error) {
	m, err := c.NewModel(reg, name)
	if err != nil {
		return nil, err
	}
	opts = append([]sim.Option{sim.WithTimestep(c.Timestep)}, opts...)
	return sim.NewController(m, opts...)
}
