// SPDX-License-Identifier: MIT

package matrix

// Test bridge (white-box) for the options snapshot.
//
// Purpose:
//   - Expose a read-only view of the unexported Options to matrix_test only.
//
// Build policy:
//   - Compiled only by go test (the _test.go suffix); every symbol carries
//     the _TestOnly suffix.
//
// Maintenance:
//   - Keep OptionsSnapshot in sync with the Options fields (tests catch drift).

// PanicEpsilonInvalid_TestOnly exposes the WithEpsilon panic message.
const PanicEpsilonInvalid_TestOnly = panicEpsilonInvalid

// OptionsSnapshot is a stable copy of the effective Options.
type OptionsSnapshot struct {
	Eps            float64
	ValidateNaNInf bool
}

func snapshotOf(o Options) OptionsSnapshot {
	return OptionsSnapshot{Eps: o.eps, ValidateNaNInf: o.validateNaNInf}
}

// GatherOptionsSnapshot_TestOnly applies opts over the defaults and returns the result.
func GatherOptionsSnapshot_TestOnly(opts ...Option) OptionsSnapshot {
	return snapshotOf(gatherOptions(opts...))
}
