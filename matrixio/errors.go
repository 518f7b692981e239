// SPDX-License-Identifier: MIT
// Package: lvparam/matrixio
//
// errors.go: sentinel errors and LoadError.

package matrixio

import (
	"errors"
	"fmt"
)

var (
	// ErrLoad marks every LoadMatrix failure.
	ErrLoad = errors.New("matrixio: cannot load matrix")

	// ErrKeyNotSupported indicates a key given for a format without named entries.
	ErrKeyNotSupported = errors.New("matrixio: format does not support a key")

	// ErrKeyNotFound indicates that the requested entry is not in the container.
	ErrKeyNotFound = errors.New("matrixio: key not found")

	// ErrNoMatrix indicates a file without any matrix data.
	ErrNoMatrix = errors.New("matrixio: no matrix data")

	// ErrAmbiguous indicates several matrices and no key to choose one.
	ErrAmbiguous = errors.New("matrixio: more than one matrix stored")

	// ErrUnsupported indicates well-formed data this package cannot represent
	// (complex values, more than two dimensions, cell arrays, ...).
	ErrUnsupported = errors.New("matrixio: unsupported data")

	// ErrFormat indicates a malformed or truncated file.
	ErrFormat = errors.New("matrixio: malformed file")
)

// LoadError is returned by LoadMatrix.
type LoadError struct {
	Path string // file that was read
	Key  string // requested entry, "" if none
	Err  error  // cause; a multierror listing every attempt after fallback
}

// Error implements error.
func (e *LoadError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("matrixio: could not load %s: %v", e.Path, e.Err)
	}

	return fmt.Sprintf("matrixio: could not load %s (key %q): %v", e.Path, e.Key, e.Err)
}

// Is makes errors.Is(err, ErrLoad) hold.
func (e *LoadError) Is(target error) bool { return target == ErrLoad }

// Unwrap exposes the cause.
func (e *LoadError) Unwrap() error { return e.Err }

func formatErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrFormat}, args...)...)
}
