package kinematics

import "math"

// PendulumFigures returns period (s), frequency (Hz) and angular frequency (rad/s)
// of a small-angle pendulum of the given rope length.
func PendulumFigures(length float64) (period, frequency, omega float64) {
	length = positive(length)
	period = 2 * math.Pi * math.Sqrt(length/Gravity)
	frequency = 1 / period
	omega = 2 * math.Pi * frequency
	return period, frequency, omega
}

// DampingEnvelope is the multiplicative amplitude decay at time t.
func DampingEnvelope(t float64) float64 {
	return math.Pow(DampingBase, DampingRate*t)
}

// PendulumAngle returns θ(t) in radians. Mass never enters the model.
func PendulumAngle(amplitudeDeg, length float64, damped bool, t float64) float64 {
	a := amplitudeDeg * math.Pi / 180
	omega := math.Sqrt(Gravity / positive(length))
	theta := a * math.Cos(omega*t)
	if damped {
		theta *= DampingEnvelope(t)
	}
	return theta
}

// PendulumPose evaluates the pendulum at time t. Velocity is the bob's tangential
// speed L·dθ/dt.
func PendulumPose(amplitudeDeg, length float64, damped bool, t float64) Pose {
	length = positive(length)
	a := amplitudeDeg * math.Pi / 180
	omega := math.Sqrt(Gravity / length)

	theta := PendulumAngle(amplitudeDeg, length, damped, t)

	// d/dt of A·cos(ωt)·e(t), with e'(t) = e(t)·rate·ln(base)
	dtheta := -a * omega * math.Sin(omega*t)
	if damped {
		env := DampingEnvelope(t)
		dtheta = dtheta*env + a*math.Cos(omega*t)*env*DampingRate*math.Log(DampingBase)
	}

	return Pose{
		Position: theta,
		Rotation: theta,
		Velocity: length * dtheta,
		X:        length * math.Sin(theta),
		Y:        PivotHeight - length*math.Cos(theta),
	}
}

// RestingPendulum is the pose of a pendulum hanging straight down.
func RestingPendulum(length float64) Pose {
	return Pose{Y: PivotHeight - positive(length)}
}

// Degrees rounds an angle to whole degrees for the protractor readout.
func Degrees(theta float64) int {
	return int(math.Round(theta * 180 / math.Pi))
}
