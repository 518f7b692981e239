// SPDX-License-Identifier: MIT

package functionals

import "github.com/katalvlaran/lvparam/parameters"

// Functional maps a parameter value to a numeric result.
//
// Contract:
//   - ParameterType is fixed at construction.
//   - Evaluate validates mu against ParameterType before computing and never
//     mutates mu.
//   - Implementations are immutable and safe for concurrent use.
type Functional interface {
	Name() string
	ParameterType() parameters.Type
	Evaluate(mu parameters.Parameter) (parameters.Array, error)
	String() string
}

// EvaluateRaw parses a loose value (map, number, nil; see parameters.Type.Parse)
// against f's type and evaluates f on the result.
func EvaluateRaw(f Functional, raw any) (parameters.Array, error) {
	if f == nil {
		return parameters.Array{}, ErrNotInitialized
	}
	mu, err := f.ParameterType().Parse(raw)
	if err != nil {
		return parameters.Array{}, err
	}

	return f.Evaluate(mu)
}

// Compile-time interface checks.
var (
	_ Functional = (*Projection)(nil)
	_ Functional = (*Generic)(nil)
	_ Functional = (*Expression)(nil)
)
