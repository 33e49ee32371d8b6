package sim

import (
	"context"
	"sync"

	"github.com/san-kum/rigid2d/internal/metrics"
	"github.com/san-kum/rigid2d/internal/space"
)

// SpaceFactory builds a fresh space for one ensemble member.
type SpaceFactory func() (*space.Space, error)

// Ensemble runs several independent simulations concurrently, each on
// its own space built by the factory.
type Ensemble struct {
	factories []SpaceFactory
}

func NewEnsemble(factories ...SpaceFactory) *Ensemble {
	return &Ensemble{factories: factories}
}

func (e *Ensemble) Run(ctx context.Context, dt, duration float64) ([]*Result, error) {
	results := make([]*Result, len(e.factories))
	errs := make([]error, len(e.factories))

	var wg sync.WaitGroup
	for i, factory := range e.factories {
		wg.Add(1)
		go func(idx int, factory SpaceFactory) {
			defer wg.Done()

			sp, err := factory()
			if err != nil {
				errs[idx] = err
				return
			}

			runner := New()
			for _, m := range metrics.Default() {
				runner.AddMetric(m)
			}
			results[idx], errs[idx] = runner.Run(ctx, sp, dt, duration)
		}(i, factory)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
