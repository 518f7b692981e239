// SPDX-License-Identifier: MIT
// Package: lvparam/parameters
//
// errors.go: sentinel errors for the parameters package.
//
// Error policy:
//   • Only sentinel variables (package-level) plus TypeMismatchError are exposed.
//   • Callers MUST use errors.Is / errors.As to branch on semantics.
//   • Context is attached with %w at the detection site.

package parameters

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape indicates a negative extent or a data buffer that does not
	// fill the requested shape.
	ErrBadShape = errors.New("parameters: invalid shape")

	// ErrBadName indicates an empty or non-identifier parameter name.
	ErrBadName = errors.New("parameters: invalid parameter name")

	// ErrDuplicateName indicates that a name was declared twice in one Type.
	ErrDuplicateName = errors.New("parameters: duplicate parameter name")

	// ErrTypeMismatch indicates that a value does not conform to the declared Type.
	ErrTypeMismatch = errors.New("parameters: value does not match parameter type")

	// ErrIndex indicates an index outside an array's extents, or an index
	// applied to a scalar.
	ErrIndex = errors.New("parameters: index out of range")

	// ErrNotScalar indicates that a single number was requested from an array
	// holding more than one element.
	ErrNotScalar = errors.New("parameters: array is not a scalar")

	// ErrUnsupportedValue indicates a raw value of a Go type Parse cannot read.
	ErrUnsupportedValue = errors.New("parameters: unsupported value type")
)

// TypeMismatchError reports which parameter failed validation and why.
// Expected/Actual are nil when the mismatch is not about shape (e.g. a
// missing name or an unreadable raw value).
type TypeMismatchError struct {
	Parameter string // offending parameter name
	Expected  Shape  // declared shape
	Actual    Shape  // observed shape; nil when the value is missing
	Reason    string // short human-readable cause
	Err       error  // underlying cause, if any
}

// Error implements error.
func (e *TypeMismatchError) Error() string {
	if e.Actual == nil {
		return fmt.Sprintf("parameters: parameter %q (expected shape %s): %s", e.Parameter, e.Expected, e.Reason)
	}

	return fmt.Sprintf("parameters: parameter %q: expected shape %s, got %s", e.Parameter, e.Expected, e.Actual)
}

// Is makes errors.Is(err, ErrTypeMismatch) hold for every TypeMismatchError.
func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// Unwrap exposes the underlying cause.
func (e *TypeMismatchError) Unwrap() error { return e.Err }
