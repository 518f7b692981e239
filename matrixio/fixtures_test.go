// SPDX-License-Identifier: MIT
package matrixio_test

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// Fixture builders write the binary formats byte by byte, so the readers
// are tested against the layouts themselves rather than against a writer
// from the same package.

var le = binary.LittleEndian

// memFs stores the given files in a fresh in-memory filesystem.
func memFs(t *testing.T, files map[string][]byte) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, content, 0o644))
	}

	return fs
}

func gzipped(t *testing.T, b []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(b)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

// ---------- NPY / NPZ ----------

// npyBytes renders a version 1.0 .npy file.
func npyBytes(descr string, fortran bool, shape []int, payload []byte) []byte {
	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = fmt.Sprint(d)
	}
	tuple := "(" + strings.Join(dims, ", ") + ")"
	if len(shape) == 1 {
		tuple = "(" + dims[0] + ",)"
	}
	order := "False"
	if fortran {
		order = "True"
	}
	header := fmt.Sprintf("{'descr': '%s', 'fortran_order': %s, 'shape': %s, }", descr, order, tuple)
	// magic(6) + version(2) + length(2) + header + '\n' is padded to 64 bytes
	total := 10 + len(header) + 1
	if rem := total % 64; rem != 0 {
		header += strings.Repeat(" ", 64-rem)
	}
	header += "\n"

	var b bytes.Buffer
	b.WriteString("\x93NUMPY")
	b.Write([]byte{1, 0})
	_ = binary.Write(&b, le, uint16(len(header)))
	b.WriteString(header)
	b.Write(payload)

	return b.Bytes()
}

func f8(vs ...float64) []byte {
	b := make([]byte, 8*len(vs))
	for i, v := range vs {
		le.PutUint64(b[8*i:], math.Float64bits(v))
	}

	return b
}

func i4(vs ...int32) []byte {
	b := make([]byte, 4*len(vs))
	for i, v := range vs {
		le.PutUint32(b[4*i:], uint32(v))
	}

	return b
}

// npzBytes zips name.npy members in the given order.
func npzBytes(t *testing.T, members ...any) []byte {
	t.Helper()
	require.Zero(t, len(members)%2, "name/content pairs")
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for i := 0; i < len(members); i += 2 {
		w, err := zw.Create(members[i].(string) + ".npy")
		require.NoError(t, err)
		_, err = w.Write(members[i+1].([]byte))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

// ---------- MATLAB level 5 ----------

const (
	miINT8       = 1
	miUINT8      = 2
	miUINT16     = 4
	miINT32      = 5
	miUINT32     = 6
	miDOUBLE     = 9
	miMATRIX     = 14
	miCOMPRESSED = 15

	mxCHAR   = 4
	mxSPARSE = 5
	mxDOUBLE = 6
	mxINT32  = 12
)

// matElement renders a tag plus payload; padded to 8 bytes unless compressed.
func matElement(typ uint32, payload []byte) []byte {
	if len(payload) <= 4 && len(payload) > 0 && typ != miMATRIX && typ != miCOMPRESSED {
		// small data element format
		b := make([]byte, 8)
		le.PutUint32(b, uint32(len(payload))<<16|typ)
		copy(b[4:], payload)
		return b
	}
	b := make([]byte, 8, 8+len(payload)+7)
	le.PutUint32(b, typ)
	le.PutUint32(b[4:], uint32(len(payload)))
	b = append(b, payload...)
	if typ != miCOMPRESSED {
		for len(b)%8 != 0 {
			b = append(b, 0)
		}
	}

	return b
}

// matArray renders a miMATRIX element; parts follow the name.
func matArray(class uint32, complexFlag bool, rows, cols int32, name string, parts ...[]byte) []byte {
	flags := make([]byte, 8)
	word := class
	if complexFlag {
		word |= 0x0800
	}
	le.PutUint32(flags, word)
	body := matElement(miUINT32, flags)
	body = append(body, matElement(miINT32, i4(rows, cols))...)
	body = append(body, matElement(miINT8, []byte(name))...)
	for _, p := range parts {
		body = append(body, p...)
	}

	return matElement(miMATRIX, body)
}

// matDouble stores a rows×cols double array given in row-major order.
func matDouble(name string, rows, cols int, rowMajor ...float64) []byte {
	col := make([]float64, len(rowMajor))
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			col[j*rows+i] = rowMajor[i*cols+j]
		}
	}

	return matArray(mxDOUBLE, false, int32(rows), int32(cols), name, matElement(miDOUBLE, f8(col...)))
}

func matCompressed(t *testing.T, element []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write(element)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return matElement(miCOMPRESSED, buf.Bytes())
}

func matChar(name, text string) []byte {
	u := make([]byte, 2*len(text))
	for i := 0; i < len(text); i++ {
		le.PutUint16(u[2*i:], uint16(text[i]))
	}

	return matArray(mxCHAR, false, 1, int32(len(text)), name, matElement(miUINT16, u))
}

// matFile prepends the 128-byte level 5 header.
func matFile(elements ...[]byte) []byte {
	h := make([]byte, 128)
	copy(h, "MATLAB 5.0 MAT-file, Platform: GLNXA64, Created on: Mon Jan  1 00:00:00 2024")
	for i := len("MATLAB 5.0 MAT-file, Platform: GLNXA64, Created on: Mon Jan  1 00:00:00 2024"); i < 116; i++ {
		h[i] = ' '
	}
	le.PutUint16(h[124:], 0x0100)
	copy(h[126:], "IM")
	for _, e := range elements {
		h = append(h, e...)
	}

	return h
}
