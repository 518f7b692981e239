// SPDX-License-Identifier: MIT

package matrixio

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/katalvlaran/lvparam/matrix"
)

// MATLAB level 5 MAT-file layout:
//
//	128-byte header: text, subsystem offset, version 0x0100, endian "IM"/"MI"
//	data elements:   tag (type, byte count) + payload, padded to 8 bytes;
//	                 a tag whose high 16 bits are set is a "small element"
//	                 packing up to 4 payload bytes into the tag itself.
//
// A variable is a miMATRIX element (optionally wrapped in a zlib
// miCOMPRESSED element) holding array flags, dimensions, name and the data
// in column-major order.

const matHeaderLen = 128

// data element types
const (
	miINT8       = 1
	miUINT8      = 2
	miINT16      = 3
	miUINT16     = 4
	miINT32      = 5
	miUINT32     = 6
	miSINGLE     = 7
	miDOUBLE     = 9
	miINT64      = 12
	miUINT64     = 13
	miMATRIX     = 14
	miCOMPRESSED = 15
)

// array classes: 5 is sparse, 6 (double) through 15 (uint64) are numeric;
// cell, struct, object and char arrays (1-4) and anything newer are skipped.
const (
	mxSPARSE = 5
	mxDOUBLE = 6
	mxUINT64 = 15
)

const (
	flagComplex = 0x0800
	classMask   = 0xff
)

// matVariable is one top-level variable. err is set for variables that are
// well formed but cannot become a real dense matrix; numeric reports whether
// the variable counts as matrix data when no key is given.
type matVariable struct {
	name    string
	numeric bool
	dense   *matrix.Dense
	err     error
}

func loadMAT(src source) (*matrix.Dense, error) {
	raw, err := src.read()
	if err != nil {
		return nil, err
	}
	vars, err := parseMAT(raw)
	if err != nil {
		return nil, err
	}

	if src.key != "" {
		for _, v := range vars {
			if v.name == src.key {
				return v.dense, v.err
			}
		}
		return nil, fmt.Errorf("%q not found in MATLAB file: %w", src.key, ErrKeyNotFound)
	}

	var found []matVariable
	for _, v := range vars {
		if v.numeric {
			found = append(found, v)
		}
	}
	switch len(found) {
	case 0:
		return nil, fmt.Errorf("MATLAB file: %w", ErrNoMatrix)
	case 1:
		return found[0].dense, found[0].err
	}
	names := make([]string, len(found))
	for i, v := range found {
		names[i] = v.name
	}

	return nil, fmt.Errorf("MATLAB file holds %v: %w", names, ErrAmbiguous)
}

// parseMAT decodes every top-level variable of a level 5 MAT-file.
func parseMAT(raw []byte) ([]matVariable, error) {
	if len(raw) < matHeaderLen {
		return nil, formatErrorf("MAT header: %d bytes", len(raw))
	}
	var order binary.ByteOrder
	switch string(raw[126:128]) {
	case "IM":
		order = binary.LittleEndian
	case "MI":
		order = binary.BigEndian
	default:
		return nil, formatErrorf("MAT header: no endian indicator")
	}
	if v := order.Uint16(raw[124:126]); v != 0x0100 {
		return nil, fmt.Errorf("MAT version %#04x (only level 5 is read): %w", v, ErrUnsupported)
	}

	r := matReader{order: order}
	var vars []matVariable
	rest := raw[matHeaderLen:]
	for len(rest) > 0 {
		typ, payload, next, err := r.element(rest)
		if err != nil {
			return nil, err
		}
		rest = next
		if typ == miCOMPRESSED {
			if typ, payload, err = r.inflate(payload); err != nil {
				return nil, err
			}
		}
		if typ != miMATRIX || len(payload) == 0 {
			continue
		}
		v, err := r.variable(payload)
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)
	}

	return vars, nil
}

type matReader struct {
	order binary.ByteOrder
}

// element splits off one data element and returns its type, payload and
// the bytes that follow it.
func (r matReader) element(b []byte) (typ uint32, payload, rest []byte, err error) {
	if len(b) < 8 {
		return 0, nil, nil, formatErrorf("MAT element tag: %d bytes left", len(b))
	}
	first := r.order.Uint32(b[:4])
	if n := first >> 16; n != 0 {
		if n > 4 {
			return 0, nil, nil, formatErrorf("MAT small element of %d bytes", n)
		}
		return first & 0xffff, b[4 : 4+n], b[8:], nil
	}
	n := uint64(r.order.Uint32(b[4:8]))
	if n > uint64(len(b)-8) {
		return 0, nil, nil, formatErrorf("MAT element of %d bytes, %d left", n, len(b)-8)
	}
	end := 8 + int(n)
	payload = b[8:end]
	if first != miCOMPRESSED {
		end = (end + 7) &^ 7
		if end > len(b) {
			end = len(b)
		}
	}

	return first, payload, b[end:], nil
}

// inflate decompresses a miCOMPRESSED payload, which holds one element.
func (r matReader) inflate(payload []byte) (uint32, []byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(payload))
	if err != nil {
		return 0, nil, formatErrorf("MAT compressed element: %v", err)
	}
	defer zr.Close()
	inner, err := io.ReadAll(zr)
	if err != nil {
		return 0, nil, formatErrorf("MAT compressed element: %v", err)
	}
	typ, payload, _, err := r.element(inner)

	return typ, payload, err
}

// variable decodes a miMATRIX payload.
func (r matReader) variable(b []byte) (matVariable, error) {
	_, flags, b, err := r.element(b)
	if err != nil {
		return matVariable{}, err
	}
	if len(flags) < 4 {
		return matVariable{}, formatErrorf("MAT array flags: %d bytes", len(flags))
	}
	word := r.order.Uint32(flags[:4])
	class := word & classMask

	dimsTyp, dimsRaw, b, err := r.element(b)
	if err != nil {
		return matVariable{}, err
	}
	dims, err := r.numbers(dimsTyp, dimsRaw)
	if err != nil {
		return matVariable{}, err
	}
	_, name, b, err := r.element(b)
	if err != nil {
		return matVariable{}, err
	}
	v := matVariable{name: string(name)}

	switch {
	case class != mxSPARSE && (class < mxDOUBLE || class > mxUINT64):
		v.err = fmt.Errorf("MATLAB variable %q of class %d: %w", v.name, class, ErrUnsupported)
		return v, nil
	case word&flagComplex != 0:
		v.numeric = true
		v.err = fmt.Errorf("complex MATLAB variable %q: %w", v.name, ErrUnsupported)
		return v, nil
	}
	v.numeric = true
	if len(dims) != 2 {
		v.err = fmt.Errorf("MATLAB variable %q with %d dimensions: %w", v.name, len(dims), ErrUnsupported)
		return v, nil
	}
	for _, d := range dims {
		if d < 0 || d > math.MaxInt32 || d != math.Trunc(d) {
			return matVariable{}, formatErrorf("MATLAB variable %q: dimensions %v", v.name, dims)
		}
	}
	rows, cols := int(dims[0]), int(dims[1])
	if v.err = checkDims("MATLAB variable "+strconv.Quote(v.name), rows, cols); v.err != nil {
		return v, nil
	}

	if class == mxSPARSE {
		v.dense, v.err = r.sparse(rows, cols, b)
		return v, nil
	}
	realTyp, realRaw, _, err := r.element(b)
	if err != nil {
		return matVariable{}, err
	}
	data, err := r.numbers(realTyp, realRaw)
	if err != nil {
		return matVariable{}, err
	}
	if len(data) != rows*cols {
		return matVariable{}, formatErrorf("MATLAB variable %q: %d values for %dx%d", v.name, len(data), rows, cols)
	}
	v.dense, v.err = newDense([]int{rows, cols}, fromColumnMajor(rows, cols, data))

	return v, nil
}

// sparse densifies compressed-column data: ir (row indices), jc (column
// starts, cols+1 entries), pr (values; absent for some logical arrays).
func (r matReader) sparse(rows, cols int, b []byte) (*matrix.Dense, error) {
	irTyp, irRaw, b, err := r.element(b)
	if err != nil {
		return nil, err
	}
	jcTyp, jcRaw, b, err := r.element(b)
	if err != nil {
		return nil, err
	}
	ir, err := r.numbers(irTyp, irRaw)
	if err != nil {
		return nil, err
	}
	jc, err := r.numbers(jcTyp, jcRaw)
	if err != nil {
		return nil, err
	}
	var pr []float64
	if len(b) > 0 {
		prTyp, prRaw, _, err := r.element(b)
		if err != nil {
			return nil, err
		}
		if pr, err = r.numbers(prTyp, prRaw); err != nil {
			return nil, err
		}
	}
	if len(jc) != cols+1 {
		return nil, formatErrorf("sparse column index of length %d for %d columns", len(jc), cols)
	}

	out := make([]float64, rows*cols)
	for j := 0; j < cols; j++ {
		for k := int(jc[j]); k < int(jc[j+1]); k++ {
			if k < 0 || k >= len(ir) || int(ir[k]) < 0 || int(ir[k]) >= rows {
				return nil, formatErrorf("sparse entry %d out of range", k)
			}
			val := 1.0
			if pr != nil {
				if k >= len(pr) {
					return nil, formatErrorf("sparse value %d missing", k)
				}
				val = pr[k]
			}
			out[int(ir[k])*cols+j] += val
		}
	}

	return newDense([]int{rows, cols}, out)
}

// numbers converts a numeric payload of any element type to float64.
func (r matReader) numbers(typ uint32, b []byte) ([]float64, error) {
	var size int
	switch typ {
	case miINT8, miUINT8:
		size = 1
	case miINT16, miUINT16:
		size = 2
	case miINT32, miUINT32, miSINGLE:
		size = 4
	case miDOUBLE, miINT64, miUINT64:
		size = 8
	default:
		return nil, fmt.Errorf("MAT element type %d: %w", typ, ErrUnsupported)
	}
	if len(b)%size != 0 {
		return nil, formatErrorf("MAT element of type %d with %d bytes", typ, len(b))
	}

	out := make([]float64, len(b)/size)
	for i := range out {
		p := b[i*size : (i+1)*size]
		switch typ {
		case miINT8:
			out[i] = float64(int8(p[0]))
		case miUINT8:
			out[i] = float64(p[0])
		case miINT16:
			out[i] = float64(int16(r.order.Uint16(p)))
		case miUINT16:
			out[i] = float64(r.order.Uint16(p))
		case miINT32:
			out[i] = float64(int32(r.order.Uint32(p)))
		case miUINT32:
			out[i] = float64(r.order.Uint32(p))
		case miSINGLE:
			out[i] = float64(math.Float32frombits(r.order.Uint32(p)))
		case miDOUBLE:
			out[i] = math.Float64frombits(r.order.Uint64(p))
		case miINT64:
			out[i] = float64(int64(r.order.Uint64(p)))
		case miUINT64:
			out[i] = float64(r.order.Uint64(p))
		}
	}

	return out, nil
}
