// Package kinematics holds the closed-form motion laws behind each demo.
// Every function here is pure: same parameters and elapsed time, same pose.
package kinematics

import "math"

const (
	// Gravity is fixed for the pendulum demo, m/s².
	Gravity = 9.8
	// PivotHeight is the pendulum pivot's height above the scene origin.
	PivotHeight = 0.8
	// TrackLength is the travel limit of both vehicle demos, m.
	TrackLength = 30.0
	// MinLength keeps rope length and wheel radius away from zero.
	MinLength = 1e-6
	// DampingBase and DampingRate define the empirical envelope 0.995^(10t).
	DampingBase = 0.995
	DampingRate = 10.0
)

// Pose is the instantaneous state of one animated object.
//
// For the track demos Position is the track coordinate in metres and Rotation the
// accumulated wheel angle. For the pendulum Position and Rotation both hold the
// swing angle θ in radians and X, Y hold the bob offset from the scene origin.
type Pose struct {
	Position float64 `json:"position"`
	Rotation float64 `json:"rotation"`
	Velocity float64 `json:"velocity"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
}

// IsValid reports whether the pose is free of NaN and Inf.
func (p Pose) IsValid() bool {
	for _, v := range [...]float64{p.Position, p.Rotation, p.Velocity, p.X, p.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func positive(v float64) float64 {
	if v < MinLength || math.IsNaN(v) {
		return MinLength
	}
	return v
}
