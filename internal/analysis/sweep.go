package analysis

import (
	"context"
	"fmt"

	"github.com/san-kum/motionlab/internal/sim"
)

// SweepPoint summarises one run of a parameter sweep. Err is set when the value
// was rejected by the model; such points are not run.
type SweepPoint struct {
	Value       float64
	Err         error
	Completed   bool
	Elapsed     float64
	MaxPosition float64
	Period      float64
}

// Sweep runs one fresh controller per parameter value in [lo, hi] and records how
// each run ended. Accepted values run concurrently.
func Sweep(
	ctx context.Context,
	build func() (*sim.Controller, error),
	param string,
	lo, hi float64,
	steps, maxTicks int,
) ([]SweepPoint, error) {
	if steps <= 1 {
		steps = 2
	}
	step := (hi - lo) / float64(steps-1)

	points := make([]SweepPoint, steps)
	var controllers []*sim.Controller
	var index []int

	for i := 0; i < steps; i++ {
		v := lo + float64(i)*step
		points[i].Value = v

		c, err := build()
		if err != nil {
			return nil, fmt.Errorf("sweep %s=%g: %w", param, v, err)
		}
		if err := c.SetParameter(param, v); err != nil {
			points[i].Err = err
			continue
		}
		controllers = append(controllers, c)
		index = append(index, i)
	}

	traces, err := sim.NewEnsemble(controllers, maxTicks).Run(ctx)
	if err != nil {
		return nil, err
	}

	for j, trace := range traces {
		p := &points[index[j]]
		last := trace.Samples[len(trace.Samples)-1]
		p.Elapsed = last.Time
		if trace.Result != nil {
			p.Completed = true
			p.MaxPosition = trace.Result.MaxPosition
		} else {
			p.MaxPosition = controllers[j].MaxPosition()
		}
		p.Period = EstimatePeriod(FindPeaks(trace.Times(), trace.Rotations()))
	}

	return points, nil
}
