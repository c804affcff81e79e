package sim

import (
	"context"
	"sync"

	"github.com/san-kum/mitosis/internal/config"
)

// Ensemble runs independent headless sessions that differ only in seed.
type Ensemble struct {
	base      *config.Config
	numRuns   int
	seedStart int64
	metrics   func() []Metric
}

// NewEnsemble prepares numRuns sessions seeded from base.Seed upwards.
// metrics is called once per run so each session gets its own instances.
func NewEnsemble(base *config.Config, numRuns int, metrics func() []Metric) *Ensemble {
	return &Ensemble{base: base, numRuns: numRuns, seedStart: base.Seed, metrics: metrics}
}

func (e *Ensemble) Run(ctx context.Context, rc RunConfig) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := *e.base
			cfgCopy.Seed = e.seedStart + int64(idx)

			s, err := New(&cfgCopy)
			if err != nil {
				errs[idx] = err
				return
			}
			if e.metrics != nil {
				for _, m := range e.metrics() {
					s.AddMetric(m)
				}
			}

			results[idx], errs[idx] = s.Run(ctx, rc)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
