// SPDX-License-Identifier: MIT

// Package matrixio: functional options for LoadMatrix.
//
// Defaults: no key, the OS filesystem, a logger that discards everything.
package matrixio

import (
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
)

const (
	panicNilFs     = "matrixio: WithFs: fs must not be nil"
	panicNilLogger = "matrixio: WithLogger: logger must not be nil"
)

// Option configures LoadMatrix.
type Option func(*Options)

// Options is the effective LoadMatrix configuration.
type Options struct {
	key    string
	fs     afero.Fs
	logger hclog.Logger
}

// WithKey selects a named entry in a MATLAB or NPZ container.
func WithKey(key string) Option {
	return func(o *Options) { o.key = key }
}

// WithFs reads from fs instead of the OS filesystem. Panics on nil.
func WithFs(fs afero.Fs) Option {
	if fs == nil {
		panic(panicNilFs)
	}

	return func(o *Options) { o.fs = fs }
}

// WithLogger reports format detection and fallback attempts to logger.
// Panics on nil.
func WithLogger(logger hclog.Logger) Option {
	if logger == nil {
		panic(panicNilLogger)
	}

	return func(o *Options) { o.logger = logger }
}

func gatherOptions(user ...Option) Options {
	o := Options{
		fs:     afero.NewOsFs(),
		logger: hclog.NewNullLogger(),
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
