// SPDX-License-Identifier: MIT
// Package: lvparam/functionals
//
// errors.go: sentinel errors and ConstructionError.
//
// Error policy:
//   • Constructors fail with *ConstructionError; errors.Is(err, ErrConstruction)
//     holds and the cause stays reachable (ErrCoordinates, ErrNilMapping,
//     parameters.ErrBadName, *expression.SyntaxError, ...).
//   • Evaluate returns type mismatches (*parameters.TypeMismatchError) and
//     computation errors untouched.

package functionals

import (
	"errors"
	"fmt"
)

var (
	// ErrConstruction marks every constructor failure.
	ErrConstruction = errors.New("functionals: invalid construction")

	// ErrCoordinates indicates missing, extra or out-of-range projection coordinates.
	ErrCoordinates = errors.New("functionals: invalid coordinates")

	// ErrNilMapping indicates a Generic built without a mapping.
	ErrNilMapping = errors.New("functionals: nil mapping")

	// ErrNotInitialized is returned by every method of a zero-value functional.
	ErrNotInitialized = errors.New("functionals: functional not initialized")

	// ErrLocked indicates an attempt to decode state into an already built functional.
	ErrLocked = errors.New("functionals: functional is locked")
)

// ConstructionError reports which constructor failed and why.
type ConstructionError struct {
	Kind string // "projection", "generic" or "expression"
	Err  error  // cause
}

// Error implements error.
func (e *ConstructionError) Error() string {
	return fmt.Sprintf("functionals: cannot build %s functional: %v", e.Kind, e.Err)
}

// Is makes errors.Is(err, ErrConstruction) hold.
func (e *ConstructionError) Is(target error) bool { return target == ErrConstruction }

// Unwrap exposes the cause.
func (e *ConstructionError) Unwrap() error { return e.Err }

func constructionErrorf(kind string, cause error, format string, args ...any) error {
	if format == "" {
		return &ConstructionError{Kind: kind, Err: cause}
	}

	return &ConstructionError{Kind: kind, Err: fmt.Errorf("%w: "+format, append([]any{cause}, args...)...)}
}
