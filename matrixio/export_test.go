// SPDX-License-Identifier: MIT

package matrixio

// Test bridge: exposes unexported helpers to matrixio_test only.
var (
	// ExportedExtension exposes extension for table tests.
	ExportedExtension = extension
)
