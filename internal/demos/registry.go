package demos

import (
	"fmt"
	"sort"

	"github.com/san-kum/motionlab/internal/sim"
)

// Registry maps demo names and aliases to model factories.
type Registry struct {
	models  map[string]func() sim.Model
	aliases map[string]string
	info    map[string]string
}

func NewRegistry() *Registry {
	r := &Registry{
		models:  make(map[string]func() sim.Model),
		aliases: make(map[string]string),
		info:    make(map[string]string),
	}

	r.Register(PendulumName, "simple pendulum", func() sim.Model { return NewPendulum() })
	r.Register(UniformName, "constant velocity on a 30 m track", func() sim.Model { return NewUniform() })
	r.Register(AcceleratedName, "uniform acceleration on a 30 m track", func() sim.Model { return NewAccelerated() })

	r.aliases["glb"] = UniformName
	r.aliases["constant_velocity"] = UniformName
	r.aliases["glbb"] = AcceleratedName
	r.aliases["constant_acceleration"] = AcceleratedName

	return r
}

func (r *Registry) Register(name, description string, factory func() sim.Model) {
	r.models[name] = factory
	r.info[name] = description
}

// Resolve returns the canonical demo name for name or an alias.
func (r *Registry) Resolve(name string) (string, error) {
	if canonical, ok := r.aliases[name]; ok {
		name = canonical
	}
	if _, ok := r.models[name]; !ok {
		return "", fmt.Errorf("%w: %s (available: %v)", sim.ErrUnknownModel, name, r.Names())
	}
	return name, nil
}

// New builds a fresh model with default parameters.
func (r *Registry) New(name string) (sim.Model, error) {
	canonical, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	return r.models[canonical](), nil
}

// Names lists canonical demo names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Describe(name string) string {
	if canonical, err := r.Resolve(name); err == nil {
		return r.info[canonical]
	}
	return ""
}

// Apply sets every entry of params on m, stopping at the first rejection.
// Names are applied in sorted order so failures are deterministic.
func Apply(m sim.Model, params map[string]float64) error {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := m.SetParam(name, params[name]); err != nil {
			return err
		}
	}
	return nil
}
