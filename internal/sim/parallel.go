package sim

import (
	"context"
	"sync"
)

// Ensemble runs independent controllers side by side. Controllers share nothing,
// so each gets its own goroutine.
type Ensemble struct {
	controllers []*Controller
	maxTicks    int
}

func NewEnsemble(controllers []*Controller, maxTicks int) *Ensemble {
	return &Ensemble{controllers: controllers, maxTicks: maxTicks}
}

// Run returns one trace per controller, in input order. The first error wins.
func (e *Ensemble) Run(ctx context.Context) ([]*Trace, error) {
	traces := make([]*Trace, len(e.controllers))
	errs := make([]error, len(e.controllers))

	var wg sync.WaitGroup
	for i, c := range e.controllers {
		wg.Add(1)
		go func(idx int, c *Controller) {
			defer wg.Done()
			traces[idx], errs[idx] = Run(ctx, c, e.maxTicks)
		}(i, c)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return traces, nil
}
