// SPDX-License-Identifier: MIT
package matrixio_test

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/katalvlaran/lvparam/matrixio"
)

// ExampleLoadMatrix reads a MatrixMarket file from an in-memory filesystem.
func ExampleLoadMatrix() {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "stiffness.mtx", []byte(
		"%%MatrixMarket matrix coordinate real symmetric\n2 2 2\n1 1 2\n2 1 -1\n"), 0o644)

	m, err := matrixio.LoadMatrix("stiffness.mtx", matrixio.WithFs(fs))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(m)

	_, err = matrixio.LoadMatrix("stiffness.mtx", matrixio.WithFs(fs), matrixio.WithKey("K"))
	fmt.Println(err)

	// Output:
	// [2, -1]
	// [-1, 0]
	// matrixio: could not load stiffness.mtx (key "K"): Matrix Market file: matrixio: format does not support a key
}
