// SPDX-License-Identifier: MIT
package functionals_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvparam/expression"
	"github.com/katalvlaran/lvparam/functionals"
	"github.com/katalvlaran/lvparam/parameters"
)

func mustExpression(t *testing.T, src string, typ parameters.Type, opts ...functionals.Option) *functionals.Expression {
	t.Helper()
	f, err := functionals.NewExpression(src, typ, opts...)
	require.NoError(t, err)

	return f
}

// TestState_GoldenJSON pins the persisted JSON layout.
func TestState_GoldenJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		golden string
		f      *functionals.Expression
	}{
		{"state_named", mustExpression(t, "2*x", parameters.MustType(map[string]parameters.Shape{"x": parameters.ShapeOf(0)}), functionals.WithName("f"))},
		{"state_anonymous", mustExpression(t, "minimum(v[0], 2) + sin(t)", parameters.MustType(map[string]parameters.Shape{"v": {3}, "t": {}}))},
	}
	g := goldie.New(t)
	for _, tc := range tests {
		b, err := json.MarshalIndent(tc.f, "", "  ")
		require.NoError(t, err)
		g.Assert(t, tc.golden, append(b, '\n'))
	}
}

// TestState_RoundTrip is the persistence law: restore(save(f)) evaluates
// exactly like f.
func TestState_RoundTrip(t *testing.T) {
	t.Parallel()

	typ, err := parameters.TypeOf(map[string]int{"x": 0})
	require.NoError(t, err)
	orig := mustExpression(t, "2*x", typ, functionals.WithName("f"))
	inputs := []any{map[string]any{"x": 5}, 0.5, -3, map[string]any{"x": 1e300}}

	codecs := []struct {
		name    string
		restore func(t *testing.T) *functionals.Expression
	}{
		{"state", func(t *testing.T) *functionals.Expression {
			f, err := functionals.Restore(orig.State())
			require.NoError(t, err)
			return f
		}},
		{"json", func(t *testing.T) *functionals.Expression {
			b, err := json.Marshal(orig)
			require.NoError(t, err)
			var f functionals.Expression
			require.NoError(t, json.Unmarshal(b, &f))
			return &f
		}},
		{"yaml", func(t *testing.T) *functionals.Expression {
			b, err := yaml.Marshal(orig)
			require.NoError(t, err)
			var f functionals.Expression
			require.NoError(t, yaml.Unmarshal(b, &f))
			return &f
		}},
	}
	for _, c := range codecs {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			restored := c.restore(t)
			require.Equal(t, "f", restored.Name())
			require.Equal(t, "2*x", restored.Source())
			require.True(t, typ.Equal(restored.ParameterType()))
			if diff := cmp.Diff(orig.State().Expression, restored.State().Expression); diff != "" {
				t.Fatalf("state mismatch (-want +got):\n%s", diff)
			}
			for _, in := range inputs {
				want, err := functionals.EvaluateRaw(orig, in)
				require.NoError(t, err)
				got, err := functionals.EvaluateRaw(restored, in)
				require.NoError(t, err)
				require.True(t, want.Equal(got), "input %v", in)
			}
			got, err := functionals.EvaluateRaw(restored, map[string]any{"x": 5})
			require.NoError(t, err)
			require.True(t, parameters.ScalarOf(10).Equal(got))
		})
	}
}

// TestState_DecodeRevalidates: persisted state is always re-compiled.
func TestState_DecodeRevalidates(t *testing.T) {
	t.Parallel()

	var f functionals.Expression
	err := json.Unmarshal([]byte(`{"expression": "__import__('os')", "parameter_type": {"x": 0}}`), &f)
	require.ErrorIs(t, err, functionals.ErrConstruction)
	require.ErrorIs(t, err, expression.ErrSyntax)

	err = json.Unmarshal([]byte(`{"expression": "x", "parameter_type": {"x": -1}}`), &f)
	require.Error(t, err)

	err = yaml.Unmarshal([]byte("expression: x ** \nparameter_type:\n  x: 0\n"), &f)
	require.ErrorIs(t, err, expression.ErrSyntax)

	// Bare integer shapes in YAML are normalized.
	var g functionals.Expression
	require.NoError(t, yaml.Unmarshal([]byte("expression: max(v)\nparameter_type:\n  v: 3\nname: top\n"), &g))
	shape, ok := g.ParameterType().Shape("v")
	require.True(t, ok)
	require.Equal(t, parameters.Shape{3}, shape)
	require.Equal(t, "top", g.Name())

	// A built functional is locked.
	built := mustExpression(t, "x", scalarX)
	err = json.Unmarshal([]byte(`{"expression": "2*x", "parameter_type": {"x": 0}}`), built)
	require.ErrorIs(t, err, functionals.ErrLocked)
	require.Equal(t, "x", built.Source())

	var zero functionals.Expression
	_, err = json.Marshal(&zero)
	require.ErrorIs(t, err, functionals.ErrNotInitialized)
}

// TestStateFromMap decodes loose maps, including bare-integer shapes.
func TestStateFromMap(t *testing.T) {
	t.Parallel()

	s, err := functionals.StateFromMap(map[string]any{
		"expression":     "x + v[1]",
		"parameter_type": map[string]any{"x": 0, "v": []any{3}},
		"name":           "loose",
	})
	require.NoError(t, err)
	want := functionals.State{
		Expression:    "x + v[1]",
		ParameterType: parameters.MustType(map[string]parameters.Shape{"x": {}, "v": {3}}),
		Name:          "loose",
	}
	require.Equal(t, want.Expression, s.Expression)
	require.Equal(t, want.Name, s.Name)
	require.True(t, want.ParameterType.Equal(s.ParameterType), "got %s", s.ParameterType)

	f, err := functionals.Restore(s)
	require.NoError(t, err)
	got, err := functionals.EvaluateRaw(f, map[string]any{"x": 1, "v": []float64{0, 2, 0}})
	require.NoError(t, err)
	require.True(t, parameters.ScalarOf(3).Equal(got))

	tests := []struct {
		name string
		raw  map[string]any
	}{
		{"unknown key", map[string]any{"expression": "x", "parameter_type": map[string]any{"x": 0}, "code": "x"}},
		{"negative extent", map[string]any{"expression": "x", "parameter_type": map[string]any{"x": -1}}},
		{"fractional extent", map[string]any{"expression": "x", "parameter_type": map[string]any{"x": []any{1.5}}}},
		{"bad name", map[string]any{"expression": "x", "parameter_type": map[string]any{"a b": 0}}},
		{"type not a map", map[string]any{"expression": "x", "parameter_type": "x"}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := functionals.StateFromMap(tc.raw)
			require.Error(t, err)
		})
	}
}
