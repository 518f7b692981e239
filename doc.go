// Package lvparam evaluates parametric functionals and loads the matrices
// that parametric models are assembled from.
//
// 🚀 What is lvparam?
//
//	A small numerical toolkit for parameter-dependent models:
//		• Parameter types: named, fixed-shape inputs, validated in one place
//		• Functionals: projection, generic Go mapping, safe textual formula
//		• Persistence: formulas saved as (expression, parameter type, name)
//		  and always re-compiled on load (JSON, YAML, loose maps)
//		• Batch evaluation: bounded concurrency over a parameter sample
//		• Matrix loading: MATLAB, MatrixMarket, NumPy and text files
//
// ✨ Why lvparam?
//
//   - No general evaluator: formulas reach a fixed table of numeric functions
//   - Immutable after construction: every functional is safe to share
//   - Explicit errors: sentinels per package, checked with errors.Is / errors.As
//
// Packages:
//
//	parameters/  Shape, Array, Type (name → shape), Parameter, Parse
//	expression/  lexer, parser and evaluator for arithmetic formulas
//	functionals/ Projection, Generic, Expression, State, EvaluateMany
//	matrix/      Dense row-major float64 matrix
//	matrixio/    LoadMatrix: format detection, fallback, NPZ/MAT keys
//
// Quick example:
//
//	typ := parameters.MustType(map[string]parameters.Shape{"x": parameters.Scalar()})
//	f, _ := functionals.NewExpression("2*x", typ, functionals.WithName("f"))
//	v, _ := functionals.EvaluateRaw(f, map[string]any{"x": 5}) // 10
//
//	go get github.com/katalvlaran/lvparam
package lvparam
