package kinematics

import "math"

// UniformPose evaluates constant-velocity motion: s = v·t, φ = s/r.
func UniformPose(velocity, wheelRadius, t float64) Pose {
	s := velocity * t
	return Pose{
		Position: s,
		Rotation: s / positive(wheelRadius),
		Velocity: velocity,
	}
}

// AcceleratedVelocity returns v(t) = v0 + a·t.
func AcceleratedVelocity(v0, a, t float64) float64 {
	return v0 + a*t
}

// AcceleratedPosition returns s(t) = v0·t + ½·a·t².
func AcceleratedPosition(v0, a, t float64) float64 {
	return v0*t + 0.5*a*t*t
}

// AcceleratedPose evaluates uniformly accelerated motion with the closed-form wheel
// angle φ = s/r.
func AcceleratedPose(v0, a, wheelRadius, t float64) Pose {
	s := AcceleratedPosition(v0, a, t)
	return Pose{
		Position: s,
		Rotation: s / positive(wheelRadius),
		Velocity: AcceleratedVelocity(v0, a, t),
	}
}

// WheelIncrement is the per-tick wheel angle step Δφ = v·Δt / r.
func WheelIncrement(velocity, dt, wheelRadius float64) float64 {
	return velocity * dt / positive(wheelRadius)
}

// WheelTurns converts travelled distance into whole-and-fractional wheel revolutions.
func WheelTurns(distance, wheelRadius float64) float64 {
	return distance / (2 * math.Pi * positive(wheelRadius))
}

// CrossingTime returns the first t ≥ 0 at which v0·t + ½·a·t² reaches distance, and
// false if the motion never gets there.
func CrossingTime(v0, a, distance float64) (float64, bool) {
	if a == 0 {
		if v0 <= 0 {
			return 0, distance <= 0
		}
		return distance / v0, true
	}
	disc := v0*v0 + 2*a*distance
	if disc < 0 {
		return 0, false
	}
	root := math.Sqrt(disc)
	best := math.Inf(1)
	for _, t := range [...]float64{(-v0 + root) / a, (-v0 - root) / a} {
		if t >= 0 && t < best {
			best = t
		}
	}
	if math.IsInf(best, 1) {
		return 0, false
	}
	return best, true
}
