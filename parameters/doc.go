// Package parameters describes the inputs of parametric functionals: named,
// fixed-shape numeric values.
//
// 🚀 What lives here?
//
//   - Shape: the extents of one parameter; the empty shape is a scalar.
//     ShapeOf(n) normalizes a bare integer: 0 ⇒ (), n ⇒ (n,).
//   - Array: an immutable n-dimensional float64 value (row-major).
//   - Type: the declared mapping name → Shape a functional accepts. Built
//     once through TypeBuilder (or NewType / TypeOf) and frozen afterwards.
//   - Parameter: a concrete mapping name → Array, borrowed per evaluation.
//
// ⚙️ Usage:
//
//	typ, err := parameters.NewTypeBuilder().
//		Add("diffusion", parameters.ShapeOf(2)).
//		Add("t", parameters.Scalar()).
//		Build()
//
//	mu, err := typ.Parse(map[string]any{"diffusion": []float64{1, 0.5}, "t": 3})
//
// Parse is the single validation gate: a missing name or a wrong shape fails
// with a *TypeMismatchError before any functional runs.
//
// All values in this package are immutable after construction and safe for
// concurrent use.
package parameters
