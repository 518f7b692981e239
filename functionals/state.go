// SPDX-License-Identifier: MIT

package functionals

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvparam/parameters"
)

// State is the persisted form of an Expression: exactly the constructor
// arguments. Restoring re-runs NewExpression, so a stored formula is
// re-validated on every load.
type State struct {
	Expression    string          `json:"expression" yaml:"expression" mapstructure:"expression"`
	ParameterType parameters.Type `json:"parameter_type" yaml:"parameter_type" mapstructure:"parameter_type"`
	Name          string          `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
}

// State returns the constructor arguments of e.
func (e *Expression) State() State {
	return State{Expression: e.src, ParameterType: e.generic.typ, Name: e.generic.name}
}

// Restore rebuilds an Expression from s.
func Restore(s State) (*Expression, error) {
	var opts []Option
	if s.Name != "" {
		opts = append(opts, WithName(s.Name))
	}

	return NewExpression(s.Expression, s.ParameterType, opts...)
}

// MarshalJSON encodes e as its State.
func (e *Expression) MarshalJSON() ([]byte, error) {
	if e.prog == nil {
		return nil, ErrNotInitialized
	}

	return json.Marshal(e.State())
}

// UnmarshalJSON decodes a State and restores it into a zero Expression.
// Errors: ErrLocked if e was already built; construction errors otherwise.
func (e *Expression) UnmarshalJSON(b []byte) error {
	if e.prog != nil {
		return ErrLocked
	}
	var s State
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("functionals: decode expression state: %w", err)
	}

	return e.restoreInto(s)
}

// MarshalYAML encodes e as its State.
func (e *Expression) MarshalYAML() (any, error) {
	if e.prog == nil {
		return nil, ErrNotInitialized
	}

	return e.State(), nil
}

// UnmarshalYAML decodes a State and restores it into a zero Expression.
func (e *Expression) UnmarshalYAML(node *yaml.Node) error {
	if e.prog != nil {
		return ErrLocked
	}
	var s State
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("functionals: decode expression state: %w", err)
	}

	return e.restoreInto(s)
}

func (e *Expression) restoreInto(s State) error {
	restored, err := Restore(s)
	if err != nil {
		return err
	}
	*e = *restored

	return nil
}

var typeOfParameterType = reflect.TypeOf(parameters.Type{})

// StateFromMap decodes a loose map (as produced by a generic config or
// document decoder) into a State. parameter_type accepts a name → shape
// mapping where a shape is a list of extents or a bare integer; unknown keys
// are rejected.
func StateFromMap(m map[string]any) (State, error) {
	var s State
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  mapstructure.DecodeHookFuncType(parameterTypeHook),
		ErrorUnused: true,
		Result:      &s,
	})
	if err != nil {
		return State{}, err
	}
	if err := dec.Decode(m); err != nil {
		return State{}, fmt.Errorf("functionals: decode expression state: %w", err)
	}

	return s, nil
}

// parameterTypeHook turns a map into a parameters.Type through NewType, so
// names and shapes get the same validation as everywhere else.
func parameterTypeHook(from, to reflect.Type, data any) (any, error) {
	if to != typeOfParameterType || from == typeOfParameterType {
		return data, nil
	}
	rv := reflect.ValueOf(data)
	if rv.Kind() != reflect.Map {
		return nil, fmt.Errorf("parameter_type: want a mapping, got %T", data)
	}
	decl := make(map[string]parameters.Shape, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		name := fmt.Sprint(iter.Key().Interface())
		shape, err := shapeFromLoose(iter.Value().Interface())
		if err != nil {
			return nil, fmt.Errorf("parameter_type %q: %w", name, err)
		}
		decl[name] = shape
	}

	return parameters.NewType(decl)
}

// shapeFromLoose accepts an integer extent or a list of integer extents.
func shapeFromLoose(v any) (parameters.Shape, error) {
	if s, ok := v.(parameters.Shape); ok {
		return parameters.NewShape(s...)
	}
	if n, ok := looseInt(v); ok {
		return parameters.ShapeOf(n), nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil, fmt.Errorf("shape %v: %w", v, parameters.ErrBadShape)
	}
	ext := make([]int, rv.Len())
	for i := range ext {
		n, ok := looseInt(rv.Index(i).Interface())
		if !ok {
			return nil, fmt.Errorf("shape %v: %w", v, parameters.ErrBadShape)
		}
		ext[i] = n
	}

	return parameters.NewShape(ext...)
}

func looseInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case int32:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}

	return 0, false
}
