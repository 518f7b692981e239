// SPDX-License-Identifier: MIT

package functionals

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvparam/parameters"
)

// EvaluateMany evaluates f on every element of mus with at most
// WithConcurrency(n) evaluations in flight (default GOMAXPROCS) and returns
// the results in input order.
//
// The first failure cancels the samples not yet started and is returned
// wrapped with its sample index (errors.Is / errors.As still see the
// original error). ctx only governs scheduling: an Evaluate already running
// is never interrupted.
//
// Complexity: O(len(mus)) evaluations; O(len(mus)) memory for the results.
func EvaluateMany(ctx context.Context, f Functional, mus []parameters.Parameter, opts ...BatchOption) ([]parameters.Array, error) {
	if f == nil {
		return nil, ErrNotInitialized
	}
	o := gatherBatchOptions(opts...)

	out := make([]parameters.Array, len(mus))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, mu := range mus {
		if gctx.Err() != nil {
			break
		}
		i, mu := i, mu
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := f.Evaluate(mu)
			if err != nil {
				return fmt.Errorf("functionals: EvaluateMany: sample %d: %w", i, err)
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
