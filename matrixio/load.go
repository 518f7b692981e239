// SPDX-License-Identifier: MIT

package matrixio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"

	"github.com/katalvlaran/lvparam/matrix"
)

// source is what every format loader receives.
type source struct {
	fs   afero.Fs
	path string
	key  string
	log  hclog.Logger
}

func (s source) read() ([]byte, error) {
	return afero.ReadFile(s.fs, s.path)
}

// rejectKey is used by formats without named entries.
func (s source) rejectKey(format string) error {
	if s.key != "" {
		return fmt.Errorf("%s file: %w", format, ErrKeyNotSupported)
	}

	return nil
}

type loader struct {
	name string
	load func(src source) (*matrix.Dense, error)
}

var (
	matLoader = loader{name: "MATLAB", load: loadMAT}
	mtxLoader = loader{name: "Matrix Market", load: loadMTX}
	npyLoader = loader{name: "NPY/NPZ", load: loadNPY}
	txtLoader = loader{name: "Text", load: loadTXT}
)

var byExtension = map[string]loader{
	".mat":    matLoader,
	".mtx":    mtxLoader,
	".mtx.gz": mtxLoader,
	".npy":    npyLoader,
	".npz":    npyLoader,
	".txt":    txtLoader,
}

// fallbackOrder is tried when the extension is not recognized.
var fallbackOrder = []loader{matLoader, mtxLoader, txtLoader, npyLoader}

// LoadMatrix reads the matrix stored at path.
//
// Steps:
//  1. Detect the format from the extension (see package doc).
//  2. Known format: run its loader; its error is final.
//  3. Unknown format: run every loader in fallback order; return the first
//     success, or a LoadError aggregating every attempt.
//
// Errors: *LoadError (errors.Is(err, ErrLoad)).
func LoadMatrix(path string, opts ...Option) (*matrix.Dense, error) {
	o := gatherOptions(opts...)
	log := o.logger.Named("load_matrix")
	log.Info("loading matrix", "path", path)
	src := source{fs: o.fs, path: path, key: o.key, log: log}

	if l, ok := byExtension[extension(path)]; ok {
		log.Info(l.name + " file detected")
		m, err := l.load(src)
		if err != nil {
			return nil, &LoadError{Path: path, Key: o.key, Err: err}
		}
		return loaded(log, m), nil
	}

	log.Warn("could not detect file format, trying all loaders", "path", path)
	var attempts *multierror.Error
	for _, l := range fallbackOrder {
		m, err := l.load(src)
		if err == nil {
			log.Info("loaded matrix", "format", l.name)
			return loaded(log, m), nil
		}
		log.Debug("loader failed", "format", l.name, "error", err)
		attempts = multierror.Append(attempts, fmt.Errorf("%s: %w", l.name, err))
	}

	return nil, &LoadError{Path: path, Key: o.key, Err: attempts.ErrorOrNil()}
}

// loaded notes non-finite entries; they are kept as read.
func loaded(log hclog.Logger, m *matrix.Dense) *matrix.Dense {
	if err := matrix.ValidateFinite(m); err != nil {
		log.Debug("matrix holds non-finite values", "rows", m.Rows(), "cols", m.Cols())
	}

	return m
}

// extension returns the lower-cased format suffix of path, or "".
// It is the last suffix if that is four characters long (".mat"), or the
// last two suffixes if they are a four-character one followed by ".gz".
func extension(path string) string {
	base := filepath.Base(path)
	if strings.HasSuffix(base, ".") {
		return ""
	}
	parts := strings.Split(strings.TrimLeft(base, "."), ".")
	suffixes := parts[1:]
	n := len(suffixes)
	switch {
	case n >= 1 && len(suffixes[n-1]) == 3:
		return "." + strings.ToLower(suffixes[n-1])
	case n >= 2 && strings.EqualFold(suffixes[n-1], "gz") && len(suffixes[n-2]) == 3:
		return "." + strings.ToLower(suffixes[n-2]) + ".gz"
	}

	return ""
}

// newDense builds a matrix from row-major data of the given n-d shape.
// 0-d ⇒ 1×1, 1-d ⇒ n×1, 2-d as is; more axes are unsupported.
func newDense(shape []int, data []float64) (*matrix.Dense, error) {
	var rows, cols int
	switch len(shape) {
	case 0:
		rows, cols = 1, 1
	case 1:
		rows, cols = shape[0], 1
	case 2:
		rows, cols = shape[0], shape[1]
	default:
		return nil, fmt.Errorf("%d-dimensional array of shape %v: %w", len(shape), shape, ErrUnsupported)
	}
	if err := checkDims("array", rows, cols); err != nil {
		return nil, err
	}

	return matrix.NewDenseFrom(rows, cols, data, matrix.WithNoValidateNaNInf())
}

// maxElements caps the dense buffer a loader allocates (2 GiB of float64).
const maxElements = 1 << 28

// checkDims vets a size read from a file before anything is allocated.
// Negative sizes are malformed; empty and oversized matrices are unsupported.
func checkDims(format string, rows, cols int) error {
	switch {
	case rows < 0 || cols < 0:
		return formatErrorf("%s: negative size %dx%d", format, rows, cols)
	case rows == 0 || cols == 0:
		return fmt.Errorf("%s: empty %dx%d matrix: %w", format, rows, cols, ErrUnsupported)
	case cols > maxElements/rows:
		return fmt.Errorf("%s: %dx%d matrix exceeds %d elements: %w", format, rows, cols, maxElements, ErrUnsupported)
	}

	return nil
}

// fromColumnMajor reorders a Fortran-ordered rows×cols buffer.
func fromColumnMajor(rows, cols int, data []float64) []float64 {
	out := make([]float64, len(data))
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			out[i*cols+j] = data[j*rows+i]
		}
	}

	return out
}
