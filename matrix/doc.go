// Package matrix provides the dense, row-major float64 matrix that the rest of
// lvparam hands to callers.
//
// The matrix package provides:
//
//   - Dense: a flat-buffer matrix with bounds-checked At/Set that return
//     sentinel errors instead of panicking.
//   - A numeric policy (WithValidateNaNInf / WithNoValidateNaNInf) deciding
//     whether NaN and ±Inf are accepted on ingestion.
//   - Validators (ValidateNotNil, ValidateSameShape, ValidateFinite).
//
// matrixio.LoadMatrix returns *Dense for every supported on-disk format.
package matrix
