// SPDX-License-Identifier: MIT
package functionals_test

import (
	"errors"
	"math"
	"reflect"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvparam/expression"
	"github.com/katalvlaran/lvparam/functionals"
	"github.com/katalvlaran/lvparam/parameters"
)

var scalarX = parameters.MustType(map[string]parameters.Shape{"x": parameters.Scalar()})

// TestGeneric_TransparentErrors checks that mapping errors come back as the
// very same value and that invalid input never reaches the mapping.
func TestGeneric_TransparentErrors(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	var calls atomic.Int32
	g, err := functionals.NewGeneric(func(mu parameters.Parameter) (parameters.Array, error) {
		calls.Add(1)
		x, _ := mu.Get("x")
		if f, _ := x.Float(); f < 0 {
			return parameters.Array{}, errBoom
		}
		return x.Map(math.Sqrt), nil
	}, scalarX, functionals.WithName("root"))
	require.NoError(t, err)
	require.Equal(t, "root", g.Name())
	require.True(t, scalarX.Equal(g.ParameterType()))
	require.Equal(t, "Generic({x: ()})", g.String())

	got, err := functionals.EvaluateRaw(g, map[string]any{"x": 9})
	require.NoError(t, err)
	require.True(t, parameters.ScalarOf(3).Equal(got))

	_, err = functionals.EvaluateRaw(g, map[string]any{"x": -1})
	require.True(t, err == errBoom, "mapping error must not be wrapped, got %v", err)

	_, err = functionals.EvaluateRaw(g, map[string]any{"y": 1})
	require.ErrorIs(t, err, parameters.ErrTypeMismatch)
	require.EqualValues(t, 2, calls.Load())
}

// TestNewGeneric_Errors covers constructor preconditions.
func TestNewGeneric_Errors(t *testing.T) {
	t.Parallel()

	_, err := functionals.NewGeneric(nil, scalarX)
	require.ErrorIs(t, err, functionals.ErrNilMapping)
	require.ErrorIs(t, err, functionals.ErrConstruction)

	identity := func(mu parameters.Parameter) (parameters.Array, error) { return parameters.Array{}, nil }
	_, err = functionals.NewGeneric(identity, scalarX, functionals.WithCoordinates(0))
	require.ErrorIs(t, err, functionals.ErrCoordinates)

	_, err = functionals.NewExpression("x", scalarX, functionals.WithCoordinates(0))
	require.ErrorIs(t, err, functionals.ErrCoordinates)
}

// TestExpression_Evaluate covers the formula functional end to end.
func TestExpression_Evaluate(t *testing.T) {
	t.Parallel()

	vec := parameters.MustType(map[string]parameters.Shape{"x": {}, "v": {3}})
	tests := []struct {
		name string
		src  string
		typ  parameters.Type
		raw  any
		want parameters.Array
	}{
		{"double", "2*x", scalarX, map[string]any{"x": 5}, parameters.ScalarOf(10)},
		{"sin", "sin(x)", scalarX, map[string]any{"x": 0.5}, parameters.ScalarOf(math.Sin(0.5))},
		{"bare number", "x**2", scalarX, 3, parameters.ScalarOf(9)},
		{"constant with nil", "1 + 1", scalarX, nil, parameters.ScalarOf(2)},
		{"vector", "x*v + 1", vec, map[string]any{"x": 2, "v": []float64{1, 2, 3}}, parameters.Vector(3, 5, 7)},
		{"reduction", "max(v) - min(v)", vec, map[string]any{"x": 0, "v": []float64{4, -1, 2}}, parameters.ScalarOf(5)},
		{"subscript", "v[0]*v[-1]", vec, map[string]any{"x": 0, "v": []float64{4, -1, 2}}, parameters.ScalarOf(8)},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f, err := functionals.NewExpression(tc.src, tc.typ)
			require.NoError(t, err)
			got, err := functionals.EvaluateRaw(f, tc.raw)
			require.NoError(t, err)
			require.Truef(t, tc.want.Equal(got), "want %v, got %v", tc.want, got)
		})
	}
}

// TestExpression_Safety: escapes fail at construction, unknown calls at evaluation.
func TestExpression_Safety(t *testing.T) {
	t.Parallel()

	for _, src := range []string{"os.system('x')", "__import__('os').getcwd()", "x.real", "[x for x in y]", "x if x else 1"} {
		_, err := functionals.NewExpression(src, scalarX)
		require.ErrorIs(t, err, functionals.ErrConstruction, src)
		require.ErrorIs(t, err, expression.ErrSyntax, src)
		var se *expression.SyntaxError
		require.ErrorAs(t, err, &se, src)
	}

	f, err := functionals.NewExpression("system(x)", scalarX)
	require.NoError(t, err)
	_, err = functionals.EvaluateRaw(f, 1)
	require.IsType(t, &expression.EvalError{}, err, "evaluation errors pass through unwrapped")
	require.ErrorIs(t, err, expression.ErrUnknownFunction)

	f, err = functionals.NewExpression("x + y", scalarX)
	require.NoError(t, err)
	_, err = functionals.EvaluateRaw(f, 1)
	require.ErrorIs(t, err, expression.ErrUndefinedName)
}

// TestExpression_ShadowedFunction pins the precedence of parameter names
// over function names.
func TestExpression_ShadowedFunction(t *testing.T) {
	t.Parallel()

	typ := parameters.MustType(map[string]parameters.Shape{"sin": {}})
	f, err := functionals.NewExpression("sin*2", typ)
	require.NoError(t, err)
	got, err := functionals.EvaluateRaw(f, map[string]any{"sin": 4})
	require.NoError(t, err)
	require.True(t, parameters.ScalarOf(8).Equal(got))

	f, err = functionals.NewExpression("sin(1)", typ)
	require.NoError(t, err)
	_, err = functionals.EvaluateRaw(f, map[string]any{"sin": 4})
	require.ErrorIs(t, err, expression.ErrNotCallable)
}

// TestIdempotence: repeated evaluation is bit-identical for every kind.
func TestIdempotence(t *testing.T) {
	t.Parallel()

	typ := parameters.MustType(map[string]parameters.Shape{"x": {}, "v": {3}})
	proj, err := functionals.NewProjection("v", parameters.ShapeOf(3), functionals.WithCoordinates(2))
	require.NoError(t, err)
	gen, err := functionals.NewGeneric(func(mu parameters.Parameter) (parameters.Array, error) {
		v, _ := mu.Get("v")
		return v.Map(math.Exp), nil
	}, typ)
	require.NoError(t, err)
	expr, err := functionals.NewExpression("exp(-x) * sin(v) / 3", typ)
	require.NoError(t, err)

	raw := map[string]any{"x": 0.1, "v": []float64{0.3, 1e-9, -7}}
	for _, f := range []functionals.Functional{proj, gen, expr} {
		first, err := functionals.EvaluateRaw(f, raw)
		require.NoError(t, err)
		for i := 0; i < 20; i++ {
			again, err := functionals.EvaluateRaw(f, raw)
			require.NoError(t, err)
			require.True(t, first.Equal(again), "%s: evaluation %d differs", f, i)
		}
	}
}

// TestFunctionals_NoExportedFields pins that a built functional has no field a
// caller could assign, so Evaluate always agrees with State and String.
func TestFunctionals_NoExportedFields(t *testing.T) {
	t.Parallel()

	for _, v := range []any{functionals.Projection{}, functionals.Generic{}, functionals.Expression{}} {
		typ := reflect.TypeOf(v)
		for i := 0; i < typ.NumField(); i++ {
			f := typ.Field(i)
			require.False(t, f.IsExported(), "%s.%s is exported", typ.Name(), f.Name)
			require.False(t, f.Anonymous, "%s embeds %s", typ.Name(), f.Name)
		}
	}

	e, err := functionals.NewExpression("2*x", scalarX, functionals.WithName("double"))
	require.NoError(t, err)
	require.Equal(t, "double", e.Name())
	require.True(t, e.ParameterType().Equal(scalarX))

	got, err := functionals.EvaluateRaw(e, 5)
	require.NoError(t, err)
	restored, err := functionals.Restore(e.State())
	require.NoError(t, err)
	again, err := functionals.EvaluateRaw(restored, 5)
	require.NoError(t, err)
	require.True(t, got.Equal(again))
	require.Equal(t, "double", restored.Name())
}
