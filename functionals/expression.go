// SPDX-License-Identifier: MIT

package functionals

import (
	"fmt"

	"github.com/katalvlaran/lvparam/expression"
	"github.com/katalvlaran/lvparam/parameters"
)

// Expression is a functional whose mapping is a compiled formula. It
// delegates to an unexported Generic, so nothing that affects evaluation is
// reachable from outside the package once it is built.
//
// Only the source text, the type and the name are kept as state; the
// compiled program is rebuilt by NewExpression (and therefore by Restore and
// the decoders), never serialized.
type Expression struct {
	generic Generic
	src     string
	prog    *expression.Program
}

// NewExpression compiles src once.
// Errors: *ConstructionError wrapping *expression.SyntaxError (syntax is
// checked here; names are resolved per evaluation) or ErrCoordinates.
func NewExpression(src string, typ parameters.Type, opts ...Option) (*Expression, error) {
	const kind = "expression"
	o := gatherOptions(opts...)
	if err := o.rejectCoordinates(kind); err != nil {
		return nil, err
	}
	prog, err := expression.Compile(src)
	if err != nil {
		return nil, constructionErrorf(kind, err, "")
	}
	e := &Expression{src: src, prog: prog}
	e.generic = Generic{
		name: o.name,
		typ:  typ,
		mapping: func(mu parameters.Parameter) (parameters.Array, error) {
			return prog.Eval(mu)
		},
	}

	return e, nil
}

// Name returns the label given by WithName.
func (e *Expression) Name() string { return e.generic.name }

// ParameterType returns the declared type.
func (e *Expression) ParameterType() parameters.Type { return e.generic.typ }

// Evaluate validates mu and runs the compiled formula. Evaluation errors are
// *expression.EvalError values, returned unwrapped.
func (e *Expression) Evaluate(mu parameters.Parameter) (parameters.Array, error) {
	if e == nil {
		return parameters.Array{}, ErrNotInitialized
	}

	return e.generic.Evaluate(mu)
}

// Source returns the formula text.
func (e *Expression) Source() string { return e.src }

// Program returns the compiled formula (nil for the zero value).
func (e *Expression) Program() *expression.Program { return e.prog }

// String renders e.g. Expression(2*x, {x: ()}).
func (e *Expression) String() string {
	return fmt.Sprintf("Expression(%s, %s)", e.src, e.generic.typ)
}
