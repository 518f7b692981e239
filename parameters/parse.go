// SPDX-License-Identifier: MIT

package parameters

import (
	"encoding/json"
	"errors"
	"fmt"
)

// errNoParameter is the internal signal for an accepted nil value.
var errNoParameter = errors.New("parameters: no parameter needed")

// Parse validates raw against the declared type and returns a conforming
// Parameter holding exactly the declared names.
//
// Accepted raw values:
//   - Parameter (or *Parameter);
//   - map[string]any, map[string]Array, map[string]float64, map[string]int,
//     map[string][]float64, where each entry is a bare number (shape ()), an
//     Array, a []float64 / []int, a rectangular [][]float64, or nested []any
//     lists as produced by encoding/json;
//   - nil, only when the type declares at most one parameter of shape ();
//     the result then binds nothing;
//   - a bare number, only when the type declares exactly one parameter and
//     its shape is (); the number is bound to that name.
//
// Undeclared extra names are dropped. Every failure is a *TypeMismatchError
// (errors.Is(err, ErrTypeMismatch)); declared names are checked in
// lexicographic order and the first failure is reported.
//
// Complexity: O(total elements) for conversions, O(#names) otherwise.
func (t Type) Parse(raw any) (Parameter, error) {
	entries, err := t.entries(raw)
	if errors.Is(err, errNoParameter) {
		return Parameter{values: map[string]Array{}}, nil
	}
	if err != nil {
		return Parameter{}, err
	}
	values := make(map[string]Array, len(t.names))
	for _, name := range t.names {
		want := t.shapes[name]
		v, ok := entries[name]
		if !ok {
			return Parameter{}, &TypeMismatchError{Parameter: name, Expected: want.Clone(), Reason: "missing value"}
		}
		arr, err := toArray(v)
		if err != nil {
			return Parameter{}, &TypeMismatchError{Parameter: name, Expected: want.Clone(), Reason: "unreadable value", Err: err}
		}
		if !arr.Shape().Equal(want) {
			return Parameter{}, &TypeMismatchError{Parameter: name, Expected: want.Clone(), Actual: arr.Shape()}
		}
		values[name] = arr
	}

	return Parameter{values: values}, nil
}

// entries flattens the accepted raw representations into name → raw value.
func (t Type) entries(raw any) (map[string]any, error) {
	switch v := raw.(type) {
	case nil:
		return t.fromNil()
	case Parameter:
		return widen(v.values), nil
	case *Parameter:
		if v == nil {
			return t.fromNil()
		}
		return widen(v.values), nil
	case map[string]any:
		return v, nil
	case map[string]Array:
		return widen(v), nil
	case map[string]float64:
		return widen(v), nil
	case map[string]int:
		return widen(v), nil
	case map[string][]float64:
		return widen(v), nil
	}
	if _, ok := number(raw); ok {
		if len(t.names) == 1 && t.shapes[t.names[0]].IsScalar() {
			return map[string]any{t.names[0]: raw}, nil
		}
		return nil, &TypeMismatchError{
			Parameter: t.firstName(),
			Expected:  t.firstShape(),
			Reason:    "bare number given but the type does not declare exactly one scalar parameter",
		}
	}

	return nil, &TypeMismatchError{
		Parameter: t.firstName(),
		Expected:  t.firstShape(),
		Reason:    fmt.Sprintf("cannot read %T as a parameter", raw),
		Err:       ErrUnsupportedValue,
	}
}

// fromNil implements the "no parameter needed" case: nil stands for an empty
// value when the type declares at most one entry and that entry is a scalar.
// The entry stays unbound; a computation that reads it still fails.
func (t Type) fromNil() (map[string]any, error) {
	if len(t.names) == 0 || (len(t.names) == 1 && t.shapes[t.names[0]].IsScalar()) {
		return nil, errNoParameter
	}

	return nil, &TypeMismatchError{Parameter: t.names[0], Expected: t.firstShape(), Reason: "missing value (nil parameter)"}
}

func (t Type) firstName() string {
	if len(t.names) == 0 {
		return ""
	}

	return t.names[0]
}

func (t Type) firstShape() Shape {
	if len(t.names) == 0 {
		return Scalar()
	}

	return t.shapes[t.names[0]].Clone()
}

func widen[V any](m map[string]V) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}

	return out
}

// number converts any Go numeric scalar to float64.
func number(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	}

	return 0, false
}

// toArray converts a raw wire value into an Array, inferring its shape.
// Errors: ErrBadShape for ragged nesting, ErrUnsupportedValue otherwise.
func toArray(v any) (Array, error) {
	if f, ok := number(v); ok {
		return ScalarOf(f), nil
	}
	switch x := v.(type) {
	case Array:
		return x, nil
	case []float64:
		return Vector(x...), nil
	case []int:
		out := make([]float64, len(x))
		for i, e := range x {
			out[i] = float64(e)
		}
		return fromOwned(Shape{len(x)}, out), nil
	case [][]float64:
		items := make([]any, len(x))
		for i, row := range x {
			items[i] = row
		}
		return stack(items)
	case []any:
		return stack(x)
	}

	return Array{}, fmt.Errorf("%T: %w", v, ErrUnsupportedValue)
}

// stack converts each item and joins them along a new leading axis; all
// items must share one shape.
func stack(items []any) (Array, error) {
	if len(items) == 0 {
		return fromOwned(Shape{0}, []float64{}), nil
	}
	parts := make([]Array, len(items))
	for i, it := range items {
		a, err := toArray(it)
		if err != nil {
			return Array{}, err
		}
		if i > 0 && !a.shape.Equal(parts[0].shape) {
			return Array{}, fmt.Errorf("ragged nesting: item %d has shape %s, item 0 has %s: %w",
				i, a.shape, parts[0].shape, ErrBadShape)
		}
		parts[i] = a
	}
	inner := parts[0].shape
	data := make([]float64, 0, len(items)*inner.Size())
	for _, p := range parts {
		data = append(data, p.flat()...)
	}
	shape := append(Shape{len(items)}, inner...)

	return fromOwned(shape, data), nil
}
