package engine

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds batch parallelism when the caller passes <= 0.
const DefaultWorkers = 8

// TransformAll transforms inputs in parallel and returns outputs in input
// order. Every call receives its own copy of opts.
func (e *Engine) TransformAll(ctx context.Context, inputs []string, opts Options, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	results := make([]Result, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, input := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("transforming line %d: %w", i+1, err)
			}

			results[i] = e.Evaluate(input, opts)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
