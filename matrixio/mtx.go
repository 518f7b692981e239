// SPDX-License-Identifier: MIT

package matrixio

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvparam/matrix"
)

const mtxBanner = "%%matrixmarket"

// mtxHeader is the parsed banner line
// "%%MatrixMarket matrix <format> <field> <symmetry>".
type mtxHeader struct {
	format   string // coordinate | array
	field    string // real | double | integer | pattern
	symmetry string // general | symmetric | skew-symmetric | hermitian
}

func loadMTX(src source) (*matrix.Dense, error) {
	if err := src.rejectKey("Matrix Market"); err != nil {
		return nil, err
	}
	raw, err := src.read()
	if err != nil {
		return nil, err
	}
	var r io.Reader = bytes.NewReader(raw)
	if len(raw) >= 2 && raw[0] == 0x1f && raw[1] == 0x8b {
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, formatErrorf("Matrix Market gzip stream: %v", err)
		}
		defer zr.Close()
		r = zr
	}

	return readMTX(r)
}

// readMTX parses a MatrixMarket stream and densifies it. Repeated
// coordinate entries are summed.
func readMTX(r io.Reader) (*matrix.Dense, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, formatErrorf("Matrix Market: empty file")
	}
	h, err := parseMTXBanner(sc.Text())
	if err != nil {
		return nil, err
	}

	// data lines: everything that is neither blank nor a comment
	next := func() ([]string, bool) {
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" || strings.HasPrefix(line, "%") {
				continue
			}
			return strings.Fields(line), true
		}
		return nil, false
	}

	size, ok := next()
	if !ok {
		return nil, formatErrorf("Matrix Market: missing size line")
	}
	want := 3
	if h.format == "array" {
		want = 2
	}
	if len(size) != want {
		return nil, formatErrorf("Matrix Market size line %q", strings.Join(size, " "))
	}
	dims := make([]int, want)
	for i, f := range size {
		if dims[i], err = strconv.Atoi(f); err != nil || dims[i] < 0 {
			return nil, formatErrorf("Matrix Market size line %q", strings.Join(size, " "))
		}
	}
	rows, cols := dims[0], dims[1]
	if h.symmetry != "general" && rows != cols {
		return nil, formatErrorf("Matrix Market: %s matrix of size %dx%d", h.symmetry, rows, cols)
	}
	if err := checkDims("Matrix Market", rows, cols); err != nil {
		return nil, err
	}
	out := make([]float64, rows*cols)

	if h.format == "coordinate" {
		err = readMTXCoordinate(h, rows, cols, dims[2], next, out)
	} else {
		err = readMTXArray(h, rows, cols, next, out)
	}
	if err != nil {
		return nil, err
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return newDense([]int{rows, cols}, out)
}

func parseMTXBanner(line string) (mtxHeader, error) {
	f := strings.Fields(strings.ToLower(line))
	if len(f) != 5 || f[0] != mtxBanner {
		return mtxHeader{}, formatErrorf("Matrix Market banner %q", line)
	}
	if f[1] != "matrix" {
		return mtxHeader{}, fmt.Errorf("Matrix Market object %q: %w", f[1], ErrUnsupported)
	}
	h := mtxHeader{format: f[2], field: f[3], symmetry: f[4]}
	switch h.format {
	case "coordinate", "array":
	default:
		return mtxHeader{}, formatErrorf("Matrix Market format %q", h.format)
	}
	switch h.field {
	case "real", "double", "integer":
	case "pattern":
		if h.format == "array" {
			return mtxHeader{}, formatErrorf("Matrix Market pattern field in array format")
		}
	case "complex":
		return mtxHeader{}, fmt.Errorf("Matrix Market complex field: %w", ErrUnsupported)
	default:
		return mtxHeader{}, formatErrorf("Matrix Market field %q", h.field)
	}
	switch h.symmetry {
	case "general", "symmetric", "skew-symmetric":
	case "hermitian": // real hermitian data is symmetric
		h.symmetry = "symmetric"
	default:
		return mtxHeader{}, formatErrorf("Matrix Market symmetry %q", h.symmetry)
	}

	return h, nil
}

func readMTXCoordinate(h mtxHeader, rows, cols, nnz int, next func() ([]string, bool), out []float64) error {
	want := 3
	if h.field == "pattern" {
		want = 2
	}
	for k := 0; k < nnz; k++ {
		f, ok := next()
		if !ok {
			return formatErrorf("Matrix Market: %d of %d entries", k, nnz)
		}
		if len(f) != want {
			return formatErrorf("Matrix Market entry %q", strings.Join(f, " "))
		}
		i, err1 := strconv.Atoi(f[0])
		j, err2 := strconv.Atoi(f[1])
		if err1 != nil || err2 != nil || i < 1 || i > rows || j < 1 || j > cols {
			return formatErrorf("Matrix Market entry %q outside %dx%d", strings.Join(f, " "), rows, cols)
		}
		v := 1.0
		if want == 3 {
			var err error
			if v, err = strconv.ParseFloat(f[2], 64); err != nil {
				return formatErrorf("Matrix Market value %q", f[2])
			}
		}
		i, j = i-1, j-1
		out[i*cols+j] += v
		if i != j {
			switch h.symmetry {
			case "symmetric":
				out[j*cols+i] += v
			case "skew-symmetric":
				out[j*cols+i] -= v
			}
		}
	}
	if f, ok := next(); ok {
		return formatErrorf("Matrix Market: trailing data %q", strings.Join(f, " "))
	}

	return nil
}

// readMTXArray reads column-major values; symmetric storage holds the lower
// triangle with diagonal, skew-symmetric the strict lower triangle.
func readMTXArray(h mtxHeader, rows, cols int, next func() ([]string, bool), out []float64) error {
	var pending []string
	value := func() (float64, error) {
		for len(pending) == 0 {
			f, ok := next()
			if !ok {
				return 0, formatErrorf("Matrix Market: too few array values")
			}
			pending = f
		}
		tok := pending[0]
		pending = pending[1:]
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return 0, formatErrorf("Matrix Market value %q", tok)
		}
		return v, nil
	}

	for j := 0; j < cols; j++ {
		start := 0
		switch h.symmetry {
		case "symmetric":
			start = j
		case "skew-symmetric":
			start = j + 1
		}
		for i := start; i < rows; i++ {
			v, err := value()
			if err != nil {
				return err
			}
			out[i*cols+j] = v
			if i == j {
				continue
			}
			switch h.symmetry {
			case "symmetric":
				out[j*cols+i] = v
			case "skew-symmetric":
				out[j*cols+i] = -v
			}
		}
	}
	if len(pending) > 0 {
		return formatErrorf("Matrix Market: too many array values")
	}
	if f, ok := next(); ok {
		return formatErrorf("Matrix Market: trailing data %q", strings.Join(f, " "))
	}

	return nil
}
