package demos

import (
	"github.com/san-kum/motionlab/internal/kinematics"
	"github.com/san-kum/motionlab/internal/sim"
)

const PendulumName = "pendulum"

// Pendulum swings with the closed-form small-angle law. Mass is shown but never
// changes the motion.
type Pendulum struct {
	Amplitude float64 // degrees
	Length    float64 // m
	Mass      float64 // kg
	Damping   bool
}

func NewPendulum() *Pendulum {
	return &Pendulum{
		Amplitude: 30,
		Length:    2,
		Mass:      1,
		Damping:   true,
	}
}

var pendulumBounds = map[string]bound{
	"amplitude": {kind: openRange, lo: 0, hi: 180},
	"length":    {kind: positiveReal},
	"mass":      {kind: positiveReal},
	"damping":   {kind: flag},
}

func (p *Pendulum) Name() string { return PendulumName }

func (p *Pendulum) ParamNames() []string {
	return []string{"amplitude", "length", "mass", "damping"}
}

func (p *Pendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"amplitude": p.Amplitude,
		"length":    p.Length,
		"mass":      p.Mass,
		"damping":   boolParam(p.Damping),
	}
}

func (p *Pendulum) SetParam(name string, value float64) error {
	b, ok := pendulumBounds[name]
	if !ok {
		return unknown(p.Name(), name, value)
	}
	if err := b.check(p.Name(), name, value); err != nil {
		return err
	}
	switch name {
	case "amplitude":
		p.Amplitude = value
	case "length":
		p.Length = value
	case "mass":
		p.Mass = value
	case "damping":
		p.Damping = value == 1
	}
	return nil
}

func (p *Pendulum) Effect(name string) sim.Effect {
	switch name {
	case "length":
		return sim.EffectRebuild | sim.EffectRestart
	case "mass":
		return sim.EffectRebuild
	case "amplitude", "damping":
		return sim.EffectRestart
	}
	return 0
}

func (p *Pendulum) Rest() kinematics.Pose {
	return kinematics.RestingPendulum(p.Length)
}

func (p *Pendulum) Advance(_ kinematics.Pose, t, _ float64) kinematics.Pose {
	return kinematics.PendulumPose(p.Amplitude, p.Length, p.Damping, t)
}

// Figures returns period, frequency and angular frequency for display.
func (p *Pendulum) Figures() (period, frequency, omega float64) {
	return kinematics.PendulumFigures(p.Length)
}
