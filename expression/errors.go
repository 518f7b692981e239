// SPDX-License-Identifier: MIT
// Package: lvparam/expression
//
// errors.go: sentinel errors and the two error types of the package.
//
// Error policy:
//   • Compile returns *SyntaxError (errors.Is(err, ErrSyntax)).
//   • Program.Eval returns *EvalError wrapping exactly one evaluation sentinel.
//   • Callers branch with errors.Is / errors.As; never on message text.

package expression

import (
	"errors"
	"fmt"
)

// ErrSyntax marks every compile-time failure.
var ErrSyntax = errors.New("expression: syntax error")

// Evaluation sentinels.
var (
	// ErrUndefinedName: an identifier is neither bound nor a whitelisted function.
	ErrUndefinedName = errors.New("expression: undefined name")

	// ErrUnknownFunction: a call targets a name outside the function table.
	ErrUnknownFunction = errors.New("expression: unknown function")

	// ErrNotCallable: a call targets a bound parameter (parameters shadow functions).
	ErrNotCallable = errors.New("expression: value is not callable")

	// ErrFunctionAsValue: a whitelisted function name is used as an operand.
	ErrFunctionAsValue = errors.New("expression: function used as a value")

	// ErrArity: a function received the wrong number of arguments.
	ErrArity = errors.New("expression: wrong number of arguments")

	// ErrShape: operands have incompatible shapes, or a reduction got an empty array.
	ErrShape = errors.New("expression: incompatible shapes")

	// ErrIndex: a subscription is out of range or applied to a scalar.
	ErrIndex = errors.New("expression: index out of range")
)

// SyntaxError reports where compilation stopped.
type SyntaxError struct {
	Source string // full expression text
	Pos    int    // byte offset of the offending token
	Msg    string // what was expected or found
}

// Error implements error.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("expression: syntax error at offset %d in %q: %s", e.Pos, e.Source, e.Msg)
}

// Is makes errors.Is(err, ErrSyntax) hold.
func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }

// EvalError reports a failure while running a Program.
type EvalError struct {
	Op  string // node that failed, e.g. "call sin", "name x", "operator *"
	Pos int    // byte offset of that node in the source
	Err error  // wraps one evaluation sentinel
}

// Error implements error.
func (e *EvalError) Error() string {
	return fmt.Sprintf("%s (at offset %d): %v", e.Op, e.Pos, e.Err)
}

// Unwrap exposes the sentinel.
func (e *EvalError) Unwrap() error { return e.Err }

func evalErrorf(op string, pos int, sentinel error, format string, args ...any) error {
	return &EvalError{Op: op, Pos: pos, Err: fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...)}
}
