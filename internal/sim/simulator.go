package sim

import (
	"context"
	"fmt"
)

// maxPrealloc bounds the samples reserved up front; longer runs grow the slice.
const maxPrealloc = 4096

// Run starts c from zero and ticks it headlessly until it completes, maxTicks
// ticks have elapsed or ctx is done. The partial trace is returned with ctx.Err()
// on cancellation.
func Run(ctx context.Context, c *Controller, maxTicks int) (*Trace, error) {
	if maxTicks <= 0 {
		return nil, fmt.Errorf("max ticks must be positive, got %d", maxTicks)
	}

	trace := &Trace{
		Model:    c.Model().Name(),
		Timestep: c.Timestep(),
		Params:   c.Model().GetParams(),
		Samples:  make([]Sample, 0, min(maxTicks, maxPrealloc-1)+1),
	}

	c.Start()
	trace.Samples = append(trace.Samples, sampleOf(c.Snapshot()))
	for c.Ticks() < maxTicks && c.Phase() == PhaseRunning {
		select {
		case <-ctx.Done():
			return trace, ctx.Err()
		default:
		}
		trace.Samples = append(trace.Samples, sampleOf(c.Tick()))
	}

	if r, ok := c.Result(); ok {
		trace.Result = &r
	}
	return trace, nil
}

func sampleOf(f Frame) Sample {
	return Sample{Tick: f.Tick, Time: f.Clock.Elapsed, Pose: f.Pose, Phase: f.Phase}
}

// Times, Positions, Velocities and Rotations flatten a trace for plotting and
// analysis.
func (t *Trace) Times() []float64 {
	out := make([]float64, len(t.Samples))
	for i, s := range t.Samples {
		out[i] = s.Time
	}
	return out
}

func (t *Trace) Positions() []float64 {
	out := make([]float64, len(t.Samples))
	for i, s := range t.Samples {
		out[i] = s.Pose.Position
	}
	return out
}

func (t *Trace) Velocities() []float64 {
	out := make([]float64, len(t.Samples))
	for i, s := range t.Samples {
		out[i] = s.Pose.Velocity
	}
	return out
}

func (t *Trace) Rotations() []float64 {
	out := make([]float64, len(t.Samples))
	for i, s := range t.Samples {
		out[i] = s.Pose.Rotation
	}
	return out
}
