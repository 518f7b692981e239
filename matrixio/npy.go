// SPDX-License-Identifier: MIT

package matrixio

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sbinet/npyio/npy"

	"github.com/katalvlaran/lvparam/matrix"
)

var (
	npyMagic      = []byte("\x93NUMPY")
	zipMagic      = []byte("PK\x03\x04")
	emptyZipMagic = []byte("PK\x05\x06")
)

// loadNPY reads a .npy array or a .npz archive; the content decides, not
// the name. A key is only meaningful for archives and is ignored for a
// plain array file.
func loadNPY(src source) (*matrix.Dense, error) {
	raw, err := src.read()
	if err != nil {
		return nil, err
	}
	switch {
	case bytes.HasPrefix(raw, zipMagic) || bytes.HasPrefix(raw, emptyZipMagic):
		return loadNPZ(raw, src.key)
	case bytes.HasPrefix(raw, npyMagic):
		if src.key != "" {
			src.log.Debug("ignoring key for a single-array NPY file", "key", src.key)
		}
		return readNPY(bytes.NewReader(raw))
	}

	return nil, formatErrorf("neither an NPY array nor an NPZ archive")
}

func loadNPZ(raw []byte, key string) (*matrix.Dense, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, formatErrorf("NPZ archive: %v", err)
	}
	members := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		members[strings.TrimSuffix(f.Name, ".npy")] = f
	}

	var member *zip.File
	if key != "" {
		var ok bool
		if member, ok = members[strings.TrimSuffix(key, ".npy")]; !ok {
			return nil, fmt.Errorf("%q not found in NPZ file: %w", key, ErrKeyNotFound)
		}
	} else {
		switch len(members) {
		case 0:
			return nil, fmt.Errorf("NPZ file: %w", ErrNoMatrix)
		case 1:
			for _, f := range members {
				member = f
			}
		default:
			names := make([]string, 0, len(members))
			for n := range members {
				names = append(names, n)
			}
			sort.Strings(names)
			return nil, fmt.Errorf("NPZ file holds %v: %w", names, ErrAmbiguous)
		}
	}

	rc, err := member.Open()
	if err != nil {
		return nil, formatErrorf("NPZ member %s: %v", member.Name, err)
	}
	defer rc.Close()

	return readNPY(rc)
}

// readNPY decodes one array with npyio and converts it to a dense matrix.
func readNPY(r io.Reader) (*matrix.Dense, error) {
	nr, err := npy.NewReader(r)
	if err != nil {
		return nil, formatErrorf("NPY header: %v", err)
	}
	descr := nr.Header.Descr
	shape := append([]int(nil), descr.Shape...)
	if len(shape) > 2 {
		return nil, fmt.Errorf("NPY array of shape %v: %w", shape, ErrUnsupported)
	}

	data, err := readNPYData(nr, descr.Type)
	if err != nil {
		return nil, err
	}
	if descr.Fortran && len(shape) == 2 {
		data = fromColumnMajor(shape[0], shape[1], data)
	}

	return newDense(shape, data)
}

// readNPYData reads the payload into a slice of the stored element type and
// widens it to float64. The byte-order character of the descriptor is
// handled by npyio.
func readNPYData(nr *npy.Reader, dtype string) ([]float64, error) {
	kind := strings.TrimLeft(dtype, "<>|=")
	switch kind {
	case "f8":
		var v []float64
		if err := nr.Read(&v); err != nil {
			return nil, formatErrorf("NPY data: %v", err)
		}
		return v, nil
	case "f4":
		var v []float32
		err := nr.Read(&v)
		return widen(v, err)
	case "i8":
		var v []int64
		err := nr.Read(&v)
		return widen(v, err)
	case "i4":
		var v []int32
		err := nr.Read(&v)
		return widen(v, err)
	case "i2":
		var v []int16
		err := nr.Read(&v)
		return widen(v, err)
	case "i1":
		var v []int8
		err := nr.Read(&v)
		return widen(v, err)
	case "u8":
		var v []uint64
		err := nr.Read(&v)
		return widen(v, err)
	case "u4":
		var v []uint32
		err := nr.Read(&v)
		return widen(v, err)
	case "u2":
		var v []uint16
		err := nr.Read(&v)
		return widen(v, err)
	case "u1":
		var v []uint8
		err := nr.Read(&v)
		return widen(v, err)
	case "b1":
		var v []bool
		if err := nr.Read(&v); err != nil {
			return nil, formatErrorf("NPY data: %v", err)
		}
		out := make([]float64, len(v))
		for i, b := range v {
			if b {
				out[i] = 1
			}
		}
		return out, nil
	}

	return nil, fmt.Errorf("NPY dtype %q: %w", dtype, ErrUnsupported)
}

type number interface {
	~float32 | ~int64 | ~int32 | ~int16 | ~int8 | ~uint64 | ~uint32 | ~uint16 | ~uint8
}

func widen[T number](v []T, err error) ([]float64, error) {
	if err != nil {
		return nil, formatErrorf("NPY data: %v", err)
	}
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}

	return out, nil
}
