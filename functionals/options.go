// SPDX-License-Identifier: MIT

// Package functionals: functional options shared by the constructors.
//
// Notes:
//   - WithCoordinates is meaningful for Projection only; Generic and
//     Expression reject it with ErrCoordinates instead of ignoring it.
//   - WithConcurrency configures EvaluateMany and has its own option type.
package functionals

import (
	"fmt"
	"runtime"
)

const panicConcurrencyInvalid = "functionals: WithConcurrency: n must be >= 1"

// Option configures a functional constructor.
type Option func(*Options)

// Options is the effective constructor configuration.
type Options struct {
	name      string
	coords    []int
	hasCoords bool
}

// WithName sets the label reported by Name. The empty label means anonymous.
func WithName(name string) Option {
	return func(o *Options) { o.name = name }
}

// WithCoordinates selects one element of a non-scalar projected parameter,
// one index per axis.
func WithCoordinates(idx ...int) Option {
	cp := append([]int(nil), idx...)
	return func(o *Options) {
		o.coords = cp
		o.hasCoords = true
	}
}

func gatherOptions(user ...Option) Options {
	var o Options
	for _, set := range user {
		set(&o)
	}

	return o
}

// rejectCoordinates is used by constructors that have no notion of coordinates.
func (o Options) rejectCoordinates(kind string) error {
	if o.hasCoords {
		return constructionErrorf(kind, ErrCoordinates, "coordinates %v apply to projections only", o.coords)
	}

	return nil
}

// BatchOption configures EvaluateMany.
type BatchOption func(*batchOptions)

type batchOptions struct {
	concurrency int
}

// WithConcurrency bounds the number of evaluations in flight.
// Panics if n < 1.
func WithConcurrency(n int) BatchOption {
	if n < 1 {
		panic(fmt.Sprintf("%s (got %d)", panicConcurrencyInvalid, n))
	}

	return func(o *batchOptions) { o.concurrency = n }
}

func gatherBatchOptions(user ...BatchOption) batchOptions {
	o := batchOptions{concurrency: runtime.GOMAXPROCS(0)}
	for _, set := range user {
		set(&o)
	}

	return o
}
