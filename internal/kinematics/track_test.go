package kinematics

import (
	"math"
	"testing"
)

func TestUniformPose(t *testing.T) {
	p := UniformPose(5, 0.2, 3)
	if math.Abs(p.Position-15) > 1e-12 {
		t.Errorf("expected s=15, got %f", p.Position)
	}
	if math.Abs(p.Rotation-75) > 1e-9 {
		t.Errorf("expected φ=s/r=75, got %f", p.Rotation)
	}
	if p.Velocity != 5 {
		t.Errorf("expected v=5, got %f", p.Velocity)
	}
}

func TestUniformRotationHasNoExtraTurnFactor(t *testing.T) {
	r := 0.3
	s := 2 * math.Pi * r
	p := UniformPose(s, r, 1)
	if math.Abs(p.Rotation-2*math.Pi) > 1e-12 {
		t.Errorf("one circumference should be one revolution (2π), got %f", p.Rotation)
	}
	if math.Abs(WheelTurns(s, r)-1) > 1e-12 {
		t.Errorf("expected 1 turn, got %f", WheelTurns(s, r))
	}
}

func TestAcceleratedPose(t *testing.T) {
	p := AcceleratedPose(2, 1, 0.2, 5)
	if math.Abs(p.Velocity-7) > 1e-12 {
		t.Errorf("expected v=7, got %f", p.Velocity)
	}
	if math.Abs(p.Position-22.5) > 1e-12 {
		t.Errorf("expected s=22.5, got %f", p.Position)
	}
}

func TestCrossingTime(t *testing.T) {
	tests := []struct {
		name     string
		v0, a    float64
		expected float64
		ok       bool
	}{
		{"accelerating", 2, 1, -2 + math.Sqrt(64), true},
		{"constant", 5, 0, 6, true},
		{"standing", 0, 0, 0, false},
		{"backward", -5, 0, 0, false},
		{"peak below track", 5, -1, 0, false},
		{"reverse then forward", -2, 1, 2 + math.Sqrt(64), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CrossingTime(tt.v0, tt.a, TrackLength)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if ok && math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("expected %.6f, got %.6f", tt.expected, got)
			}
		})
	}
}

func TestWheelIncrementSumsToClosedForm(t *testing.T) {
	dt, r := 0.001, 0.2
	total := 0.0
	for i := 1; i <= 3000; i++ {
		ts := float64(i) * dt
		total += WheelIncrement(AcceleratedVelocity(2, 1, ts), dt, r)
	}
	closed := AcceleratedPosition(2, 1, 3) / r
	if math.Abs(total-closed)/closed > 1e-3 {
		t.Errorf("incremental %.4f too far from closed form %.4f", total, closed)
	}
}
