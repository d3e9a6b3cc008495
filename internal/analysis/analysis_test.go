package analysis

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/motionlab/internal/demos"
	"github.com/san-kum/motionlab/internal/kinematics"
	"github.com/san-kum/motionlab/internal/sim"
)

func sine(freq, dt float64, n int) ([]float64, []float64) {
	times := make([]float64, n)
	values := make([]float64, n)
	for i := range values {
		times[i] = float64(i) * dt
		values[i] = math.Sin(2 * math.Pi * freq * times[i])
	}
	return times, values
}

func TestDominantFrequency(t *testing.T) {
	tests := []struct {
		name string
		freq float64
		dt   float64
		n    int
	}{
		{"power of two", 2, 0.01, 1024},
		{"odd length", 0.5, 0.016, 1001},
		{"slow", 0.25, 0.05, 800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, values := sine(tt.freq, tt.dt, tt.n)
			got := DominantFrequency(values, tt.dt)
			resolution := 1 / (float64(tt.n) * tt.dt)
			if math.Abs(got-tt.freq) > resolution {
				t.Errorf("expected %f ± %f, got %f", tt.freq, resolution, got)
			}
		})
	}
}

func TestDominantFrequencyFlat(t *testing.T) {
	flat := make([]float64, 64)
	for i := range flat {
		flat[i] = 3
	}
	if got := DominantFrequency(flat, 0.01); got != 0 {
		t.Errorf("expected 0 for a constant signal, got %f", got)
	}
	if got := DominantFrequency([]float64{1}, 0.01); got != 0 {
		t.Errorf("expected 0 for a single sample, got %f", got)
	}
}

func TestFindPeaks(t *testing.T) {
	times := []float64{0, 1, 2, 3, 4, 5, 6, 7}
	values := []float64{0, 2, 1, 3, 3, 1, 4, 5}

	peaks := FindPeaks(times, values)
	if len(peaks) != 2 {
		t.Fatalf("expected 2 peaks, got %d: %+v", len(peaks), peaks)
	}
	if peaks[0].Index != 1 || peaks[1].Index != 3 {
		t.Errorf("unexpected peak indices: %+v", peaks)
	}
}

func TestEstimatePeriod(t *testing.T) {
	times, values := sine(0.5, 0.01, 1000)
	period := EstimatePeriod(FindPeaks(times, values))
	if math.Abs(period-2) > 0.011 {
		t.Errorf("expected period 2, got %f", period)
	}
	if EstimatePeriod(nil) != 0 {
		t.Error("expected 0 without peaks")
	}
}

func TestDecaying(t *testing.T) {
	if !Decaying([]Peak{{Value: 3}, {Value: 2}, {Value: 2}}, 0) {
		t.Error("expected non-increasing peaks to be decaying")
	}
	if Decaying([]Peak{{Value: 1}, {Value: 2}}, 0.1) {
		t.Error("expected growing peaks to fail")
	}
}

func TestCrossings(t *testing.T) {
	times := []float64{0, 1, 2, 3, 4}
	values := []float64{-1, 1, -1, -1, 3}

	got := Crossings(times, values, 0)
	if len(got) != 2 {
		t.Fatalf("expected 2 crossings, got %v", got)
	}
	if math.Abs(got[0]-0.5) > 1e-12 || math.Abs(got[1]-3.25) > 1e-12 {
		t.Errorf("unexpected crossing times: %v", got)
	}
}

func TestPhasePortraitToASCII(t *testing.T) {
	_, xs := sine(1, 0.01, 200)
	_, ys := sine(1, 0.01, 225)
	p := NewPhasePortrait("x", xs, "v", ys[25:])

	if len(p.Points) != 200 {
		t.Fatalf("expected 200 points, got %d", len(p.Points))
	}
	out := p.ToASCII(40, 12)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 12 {
		t.Errorf("expected 12 rows, got %d", len(lines))
	}
	if !strings.ContainsRune(out, '•') {
		t.Error("expected plotted points")
	}
	if (*PhasePortrait)(nil).ToASCII(10, 10) != "" {
		t.Error("expected empty plot for nil portrait")
	}
}

func pendulumTrace(t *testing.T, damped bool, ticks int) *sim.Trace {
	t.Helper()
	p := demos.NewPendulum()
	p.Damping = damped
	c, err := sim.NewController(p)
	if err != nil {
		t.Fatal(err)
	}
	trace, err := sim.Run(context.Background(), c, ticks)
	if err != nil {
		t.Fatal(err)
	}
	return trace
}

func TestPendulumTraceMatchesFigures(t *testing.T) {
	trace := pendulumTrace(t, false, 2000)
	period, frequency, _ := kinematics.PendulumFigures(2)

	f := DominantFrequency(trace.Rotations(), trace.Timestep)
	resolution := 1 / (float64(len(trace.Samples)) * trace.Timestep)
	if math.Abs(f-frequency) > resolution {
		t.Errorf("expected frequency %f ± %f, got %f", frequency, resolution, f)
	}

	got := EstimatePeriod(FindPeaks(trace.Times(), trace.Rotations()))
	if math.Abs(got-period) > 2*trace.Timestep {
		t.Errorf("expected period %f, got %f", period, got)
	}
}

func TestDampedPendulumTraceDecays(t *testing.T) {
	trace := pendulumTrace(t, true, 2000)
	peaks := FindPeaks(trace.Times(), trace.Rotations())
	if len(peaks) < 3 {
		t.Fatalf("expected several peaks, got %d", len(peaks))
	}
	if !Decaying(peaks, 1e-12) {
		t.Error("expected damped peaks to be non-increasing")
	}
}

func TestSweep(t *testing.T) {
	build := func() (*sim.Controller, error) {
		return sim.NewController(demos.NewUniform())
	}

	points, err := Sweep(context.Background(), build, "velocity", -5, 10, 4, 5000)
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(points))
	}

	// values: -5, 0, 5, 10
	if points[0].Completed || points[1].Completed {
		t.Error("non-positive velocities must not complete")
	}
	for _, p := range points[2:] {
		if !p.Completed {
			t.Errorf("velocity %f: expected completion", p.Value)
			continue
		}
		if p.MaxPosition != kinematics.TrackLength {
			t.Errorf("velocity %f: expected max %f, got %f", p.Value, kinematics.TrackLength, p.MaxPosition)
		}
		want := kinematics.TrackLength / p.Value
		if math.Abs(p.Elapsed-want) > 0.016+1e-9 {
			t.Errorf("velocity %f: expected completion near %f, got %f", p.Value, want, p.Elapsed)
		}
	}
}

func TestSweepRecordsRejectedValues(t *testing.T) {
	build := func() (*sim.Controller, error) {
		return sim.NewController(demos.NewPendulum())
	}

	points, err := Sweep(context.Background(), build, "length", 0, 2, 3, 500)
	if err != nil {
		t.Fatal(err)
	}
	if !errors.Is(points[0].Err, sim.ErrInvalidParameter) {
		t.Errorf("expected length 0 to be rejected, got %v", points[0].Err)
	}
	if points[0].Period != 0 {
		t.Error("rejected point must not run")
	}
	if points[1].Err != nil || points[2].Err != nil {
		t.Error("expected positive lengths to be accepted")
	}

	// A 1 m pendulum has a period near 2 s; 500 ticks is 8 s of motion.
	if math.Abs(points[1].Period-2*math.Pi*math.Sqrt(1/kinematics.Gravity)) > 0.05 {
		t.Errorf("unexpected period for 1 m: %f", points[1].Period)
	}
}
