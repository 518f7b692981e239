// Package functionals provides parametric functionals: immutable objects
// that map a parameter value to a number (or a small array).
//
// 🚀 What lives here?
//
//   - Functional: the common interface (Name, ParameterType, Evaluate).
//   - Projection: returns one declared parameter, or one scalar element of it.
//   - Generic:    wraps an arbitrary Go mapping behind a declared Type.
//   - Expression: compiles a textual formula once (see package expression)
//     and evaluates it against each parameter value.
//   - State:      the persisted form of an Expression (JSON, YAML, loose maps).
//   - EvaluateMany: bounded concurrent evaluation over a sample of parameters.
//
// ⚙️ Usage:
//
//	typ := parameters.MustType(map[string]parameters.Shape{"x": parameters.Scalar()})
//	f, err := functionals.NewExpression("2*x", typ, functionals.WithName("f"))
//	v, err := functionals.EvaluateRaw(f, map[string]any{"x": 5}) // v == 10
//
// Lifecycle: a constructor declares the parameter type, validates its
// arguments and returns a locked functional; there are no setters. The zero
// value of every functional is unusable and reports ErrNotInitialized.
//
// Evaluate always validates its argument against ParameterType first
// (parameters.Type.Parse) and only then computes. Errors produced by the
// computation itself (a Generic mapping, an expression evaluation) are
// returned exactly as produced.
//
// All functionals are safe for concurrent use.
package functionals
