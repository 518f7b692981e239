// SPDX-License-Identifier: MIT

package expression

import (
	"math"
	"sort"

	"github.com/katalvlaran/lvparam/parameters"
)

// function is one entry of the closed namespace reachable from a call.
type function struct {
	arity int
	apply func(args []parameters.Array) (parameters.Array, error)
}

// elementwise lifts a scalar function to arrays.
func elementwise(f func(float64) float64) function {
	return function{arity: 1, apply: func(args []parameters.Array) (parameters.Array, error) {
		return args[0].Map(f), nil
	}}
}

// reduction folds all elements into a scalar.
func reduction(f func(a, b float64) float64) function {
	return function{arity: 1, apply: func(args []parameters.Array) (parameters.Array, error) {
		v, err := args[0].Reduce(f)
		if err != nil {
			return parameters.Array{}, err
		}
		return parameters.ScalarOf(v), nil
	}}
}

// binary combines two arrays elementwise with scalar broadcasting.
func binary(f func(a, b float64) float64) function {
	return function{arity: 2, apply: func(args []parameters.Array) (parameters.Array, error) {
		return parameters.Zip(args[0], args[1], f)
	}}
}

// functions is the whole namespace; it is never extended at runtime.
var functions = map[string]function{
	"sin":     elementwise(math.Sin),
	"cos":     elementwise(math.Cos),
	"tan":     elementwise(math.Tan),
	"arcsin":  elementwise(math.Asin),
	"arccos":  elementwise(math.Acos),
	"arctan":  elementwise(math.Atan),
	"sinh":    elementwise(math.Sinh),
	"cosh":    elementwise(math.Cosh),
	"tanh":    elementwise(math.Tanh),
	"arcsinh": elementwise(math.Asinh),
	"arccosh": elementwise(math.Acosh),
	"arctanh": elementwise(math.Atanh),
	"exp":     elementwise(math.Exp),
	"exp2":    elementwise(math.Exp2),
	"log":     elementwise(math.Log),
	"log2":    elementwise(math.Log2),
	"log10":   elementwise(math.Log10),
	"min":     reduction(math.Min),
	"max":     reduction(math.Max),
	"minimum": binary(math.Min),
	"maximum": binary(math.Max),
}

// Functions returns the names callable from an expression, sorted.
func Functions() []string {
	names := make([]string, 0, len(functions))
	for n := range functions {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}

// IsFunction reports whether name is in the function table.
func IsFunction(name string) bool {
	_, ok := functions[name]
	return ok
}
