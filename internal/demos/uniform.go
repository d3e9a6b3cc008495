package demos

import (
	"github.com/san-kum/motionlab/internal/kinematics"
	"github.com/san-kum/motionlab/internal/sim"
)

const UniformName = "uniform"

// Uniform drives a vehicle at constant velocity along the track.
type Uniform struct {
	Velocity    float64 // m/s
	WheelRadius float64 // m
}

func NewUniform() *Uniform {
	return &Uniform{Velocity: 5, WheelRadius: 0.2}
}

var uniformBounds = map[string]bound{
	"velocity":     {kind: anyReal},
	"wheel_radius": {kind: positiveReal},
}

func (u *Uniform) Name() string { return UniformName }

func (u *Uniform) ParamNames() []string { return []string{"velocity", "wheel_radius"} }

func (u *Uniform) GetParams() map[string]float64 {
	return map[string]float64{
		"velocity":     u.Velocity,
		"wheel_radius": u.WheelRadius,
	}
}

func (u *Uniform) SetParam(name string, value float64) error {
	b, ok := uniformBounds[name]
	if !ok {
		return unknown(u.Name(), name, value)
	}
	if err := b.check(u.Name(), name, value); err != nil {
		return err
	}
	switch name {
	case "velocity":
		u.Velocity = value
	case "wheel_radius":
		u.WheelRadius = value
	}
	return nil
}

func (u *Uniform) Effect(name string) sim.Effect {
	if name == "wheel_radius" {
		return sim.EffectRebuild
	}
	return 0
}

func (u *Uniform) Rest() kinematics.Pose { return kinematics.Pose{Velocity: u.Velocity} }

func (u *Uniform) Advance(_ kinematics.Pose, t, _ float64) kinematics.Pose {
	return kinematics.UniformPose(u.Velocity, u.WheelRadius, t)
}

func (u *Uniform) Limit() float64 { return kinematics.TrackLength }

func (u *Uniform) Farther(pos, max float64) bool { return pos > max }

func (u *Uniform) Finish(elapsed float64, final kinematics.Pose, max float64) sim.Result {
	return sim.Result{
		Model:         u.Name(),
		Elapsed:       elapsed,
		FinalPosition: final.Position,
		Velocity:      u.Velocity,
		MaxPosition:   max,
		WheelTurns:    kinematics.WheelTurns(final.Position, u.WheelRadius),
		Params:        u.GetParams(),
	}
}
