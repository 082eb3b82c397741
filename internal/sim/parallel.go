package sim

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Job is one named run for an Ensemble.
type Job struct {
	Name string
	Sim  *Simulator
	X0   State
	Cfg  Config
}

// Ensemble runs independent simulations concurrently, one goroutine per job.
// Jobs must not share controllers, metrics or observers.
type Ensemble struct {
	jobs []Job
}

func NewEnsemble(jobs ...Job) *Ensemble {
	return &Ensemble{jobs: jobs}
}

func (e *Ensemble) Add(j Job) { e.jobs = append(e.jobs, j) }

// Run returns results in job order. The first failing job cancels the others
// and its error is returned, tagged with its name.
func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, len(e.jobs))

	g, ctx := errgroup.WithContext(ctx)
	for i := range e.jobs {
		j := e.jobs[i]
		g.Go(func() error {
			res, err := j.Sim.Run(ctx, j.X0, j.Cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", j.Name, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
