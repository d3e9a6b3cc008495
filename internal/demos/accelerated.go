package demos

import (
	"fmt"
	"math"

	"github.com/san-kum/motionlab/internal/kinematics"
	"github.com/san-kum/motionlab/internal/sim"
)

const AcceleratedName = "accelerated"

type WheelMode string

const (
	// WheelIncremental adds v(t)·Δt/r every tick.
	WheelIncremental WheelMode = "incremental"
	// WheelClosed uses φ = s(t)/r.
	WheelClosed WheelMode = "closed"
)

func ParseWheelMode(s string) (WheelMode, error) {
	switch WheelMode(s) {
	case WheelIncremental, "":
		return WheelIncremental, nil
	case WheelClosed:
		return WheelClosed, nil
	}
	return "", fmt.Errorf("unknown wheel mode %q (want %s or %s)", s, WheelIncremental, WheelClosed)
}

// Accelerated drives a vehicle with constant acceleration along the track.
type Accelerated struct {
	InitialVelocity float64 // m/s
	Acceleration    float64 // m/s²
	WheelRadius     float64 // m
	Wheel           WheelMode
}

func NewAccelerated() *Accelerated {
	return &Accelerated{
		InitialVelocity: 2,
		Acceleration:    1,
		WheelRadius:     0.2,
		Wheel:           WheelIncremental,
	}
}

var acceleratedBounds = map[string]bound{
	"initial_velocity": {kind: anyReal},
	"acceleration":     {kind: anyReal},
	"wheel_radius":     {kind: positiveReal},
}

func (a *Accelerated) Name() string { return AcceleratedName }

func (a *Accelerated) ParamNames() []string {
	return []string{"initial_velocity", "acceleration", "wheel_radius"}
}

func (a *Accelerated) GetParams() map[string]float64 {
	return map[string]float64{
		"initial_velocity": a.InitialVelocity,
		"acceleration":     a.Acceleration,
		"wheel_radius":     a.WheelRadius,
	}
}

func (a *Accelerated) SetParam(name string, value float64) error {
	b, ok := acceleratedBounds[name]
	if !ok {
		return unknown(a.Name(), name, value)
	}
	if err := b.check(a.Name(), name, value); err != nil {
		return err
	}
	switch name {
	case "initial_velocity":
		a.InitialVelocity = value
	case "acceleration":
		a.Acceleration = value
	case "wheel_radius":
		a.WheelRadius = value
	}
	return nil
}

func (a *Accelerated) Effect(name string) sim.Effect {
	if name == "wheel_radius" {
		return sim.EffectRebuild
	}
	return 0
}

func (a *Accelerated) Rest() kinematics.Pose {
	return kinematics.Pose{Velocity: a.InitialVelocity}
}

func (a *Accelerated) Advance(prev kinematics.Pose, t, dt float64) kinematics.Pose {
	pose := kinematics.AcceleratedPose(a.InitialVelocity, a.Acceleration, a.WheelRadius, t)
	if a.Wheel != WheelClosed {
		pose.Rotation = prev.Rotation + kinematics.WheelIncrement(pose.Velocity, dt, a.WheelRadius)
	}
	return pose
}

func (a *Accelerated) Limit() float64 { return kinematics.TrackLength }

// Farther compares by magnitude so backward excursions are recorded too.
func (a *Accelerated) Farther(pos, max float64) bool { return math.Abs(pos) > math.Abs(max) }

func (a *Accelerated) Finish(elapsed float64, final kinematics.Pose, max float64) sim.Result {
	return sim.Result{
		Model:         a.Name(),
		Elapsed:       elapsed,
		FinalPosition: final.Position,
		Velocity:      final.Velocity,
		MaxPosition:   max,
		WheelTurns:    kinematics.WheelTurns(final.Position, a.WheelRadius),
		Params:        a.GetParams(),
	}
}
