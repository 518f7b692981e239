// SPDX-License-Identifier: MIT

package parameters

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Array is an immutable n-dimensional float64 value in row-major order.
// The zero Array is the scalar 0.
//
// Arrays never share their buffer with the caller: constructors copy their
// input and Data returns a copy, so a Parameter can be borrowed by any number
// of concurrent evaluations.
type Array struct {
	shape Shape
	data  []float64
}

var zeroScalar = []float64{0}

// NewArray builds an array of the given shape from row-major data.
// Errors: ErrBadShape when an extent is negative or len(data) != shape.Size().
// Complexity: O(n) copy.
func NewArray(shape Shape, data []float64) (Array, error) {
	if err := shape.validate(); err != nil {
		return Array{}, err
	}
	if len(data) != shape.Size() {
		return Array{}, fmt.Errorf("NewArray: %d values for shape %s: %w", len(data), shape, ErrBadShape)
	}
	cp := make([]float64, len(data))
	copy(cp, data)

	return Array{shape: shape.Clone(), data: cp}, nil
}

// ScalarOf wraps v as a 0-d array.
func ScalarOf(v float64) Array {
	return Array{shape: Scalar(), data: []float64{v}}
}

// Vector builds a 1-d array holding vs.
func Vector(vs ...float64) Array {
	cp := make([]float64, len(vs))
	copy(cp, vs)

	return Array{shape: Shape{len(vs)}, data: cp}
}

// fromOwned wraps a buffer the caller gives up; no copy.
func fromOwned(shape Shape, data []float64) Array {
	return Array{shape: shape, data: data}
}

// flat returns the backing buffer, materializing the zero value as scalar 0.
func (a Array) flat() []float64 {
	if a.shape == nil && a.data == nil {
		return zeroScalar
	}

	return a.data
}

// Shape returns a copy of the array's extents.
func (a Array) Shape() Shape { return a.shape.Clone() }

// NDim returns the number of axes.
func (a Array) NDim() int { return len(a.shape) }

// Size returns the number of elements.
func (a Array) Size() int { return len(a.flat()) }

// Data returns a row-major copy of the elements.
func (a Array) Data() []float64 {
	src := a.flat()
	out := make([]float64, len(src))
	copy(out, src)

	return out
}

// Float returns the single element of a size-1 array (scalar, (1,), (1, 1), ...).
// Errors: ErrNotScalar otherwise.
func (a Array) Float() (float64, error) {
	src := a.flat()
	if len(src) != 1 {
		return 0, fmt.Errorf("Array.Float: shape %s: %w", a.shape, ErrNotScalar)
	}

	return src[0], nil
}

// At returns the element at the full index idx (one entry per axis).
// Errors: ErrIndex when len(idx) != NDim() or any entry is out of range.
func (a Array) At(idx ...int) (float64, error) {
	if len(idx) != len(a.shape) {
		return 0, fmt.Errorf("Array.At: %d indices for shape %s: %w", len(idx), a.shape, ErrIndex)
	}
	off := 0
	for k, i := range idx {
		if i < 0 || i >= a.shape[k] {
			return 0, fmt.Errorf("Array.At: index %d on axis %d of shape %s: %w", i, k, a.shape, ErrIndex)
		}
		off = off*a.shape[k] + i
	}

	return a.flat()[off], nil
}

// Index selects position i along the first axis, dropping that axis.
// Negative i counts from the end, as sequence subscription does.
// Errors: ErrIndex for scalars and out-of-range positions.
func (a Array) Index(i int) (Array, error) {
	if len(a.shape) == 0 {
		return Array{}, fmt.Errorf("Array.Index: cannot index a scalar: %w", ErrIndex)
	}
	n := a.shape[0]
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return Array{}, fmt.Errorf("Array.Index: index %d for axis of length %d: %w", i, n, ErrIndex)
	}
	rest := a.shape[1:].Clone()
	stride := rest.Size()
	out := make([]float64, stride)
	copy(out, a.data[i*stride:(i+1)*stride])

	return fromOwned(rest, out), nil
}

// Map applies f to every element and returns a new array of the same shape.
func (a Array) Map(f func(float64) float64) Array {
	src := a.flat()
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = f(v)
	}

	return fromOwned(a.shape.Clone(), out)
}

// Zip combines a and b elementwise. A size-1 operand of rank 0 is broadcast
// against the other; otherwise both shapes must be equal.
// Errors: ErrBadShape on incompatible shapes.
func Zip(a, b Array, f func(x, y float64) float64) (Array, error) {
	as, bs := a.flat(), b.flat()
	switch {
	case a.NDim() == 0:
		out := make([]float64, len(bs))
		for i, y := range bs {
			out[i] = f(as[0], y)
		}
		return fromOwned(b.shape.Clone(), out), nil
	case b.NDim() == 0:
		out := make([]float64, len(as))
		for i, x := range as {
			out[i] = f(x, bs[0])
		}
		return fromOwned(a.shape.Clone(), out), nil
	case a.shape.Equal(b.shape):
		out := make([]float64, len(as))
		for i := range as {
			out[i] = f(as[i], bs[i])
		}
		return fromOwned(a.shape.Clone(), out), nil
	}

	return Array{}, fmt.Errorf("operands with shapes %s and %s: %w", a.shape, b.shape, ErrBadShape)
}

// Reduce folds all elements with f, starting from the first one.
// Errors: ErrBadShape for empty arrays (there is no identity to return).
func (a Array) Reduce(f func(acc, v float64) float64) (float64, error) {
	src := a.flat()
	if len(src) == 0 {
		return 0, fmt.Errorf("Array.Reduce: empty array of shape %s: %w", a.shape, ErrBadShape)
	}
	acc := src[0]
	for _, v := range src[1:] {
		acc = f(acc, v)
	}

	return acc, nil
}

// Equal reports bit-identical equality: same shape and same IEEE-754 bits in
// every position (so NaN equals NaN and 0 differs from -0).
func (a Array) Equal(b Array) bool {
	if !a.Shape().Equal(b.Shape()) {
		return false
	}
	as, bs := a.flat(), b.flat()
	for i := range as {
		if math.Float64bits(as[i]) != math.Float64bits(bs[i]) {
			return false
		}
	}

	return true
}

// nested converts the array into nested []any lists (a float64 for scalars).
func (a Array) nested() any {
	src := a.flat()
	if len(a.shape) == 0 {
		return src[0]
	}
	var build func(axis, off int) any
	build = func(axis, off int) any {
		n := a.shape[axis]
		out := make([]any, n)
		if axis == len(a.shape)-1 {
			for i := 0; i < n; i++ {
				out[i] = src[off+i]
			}
			return out
		}
		stride := a.shape[axis+1:].Size()
		for i := 0; i < n; i++ {
			out[i] = build(axis+1, off+i*stride)
		}
		return out
	}

	return build(0, 0)
}

// String renders the array as nested lists, e.g. 2, [1 2], [[1 2] [3 4]].
func (a Array) String() string {
	var b strings.Builder
	var write func(v any)
	write = func(v any) {
		switch x := v.(type) {
		case float64:
			fmt.Fprintf(&b, "%g", x)
		case []any:
			b.WriteByte('[')
			for i, e := range x {
				if i > 0 {
					b.WriteByte(' ')
				}
				write(e)
			}
			b.WriteByte(']')
		}
	}
	write(a.nested())

	return b.String()
}

// MarshalJSON encodes the array as a number (scalar) or nested lists.
func (a Array) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.nested())
}

// UnmarshalJSON decodes a number or a rectangular nested list.
func (a *Array) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	arr, err := toArray(raw)
	if err != nil {
		return err
	}
	*a = arr

	return nil
}
