// SPDX-License-Identifier: MIT
package parameters_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvparam/parameters"
)

// TestShapeOf pins the bare-integer normalization.
func TestShapeOf(t *testing.T) {
	t.Parallel()

	require.Equal(t, parameters.Shape{}, parameters.ShapeOf(0))
	require.Equal(t, parameters.Shape{3}, parameters.ShapeOf(3))
	require.True(t, parameters.ShapeOf(0).IsScalar())
	require.Equal(t, 1, parameters.Scalar().Size())
	require.Equal(t, 6, parameters.Shape{2, 3}.Size())

	require.Equal(t, "()", parameters.Scalar().String())
	require.Equal(t, "(3,)", parameters.Shape{3}.String())
	require.Equal(t, "(2, 3)", parameters.Shape{2, 3}.String())

	_, err := parameters.NewShape(2, -1)
	require.ErrorIs(t, err, parameters.ErrBadShape)

	// Element counts past math.MaxInt are rejected instead of wrapping.
	_, err = parameters.NewShape(math.MaxInt/2+1, 2)
	require.ErrorIs(t, err, parameters.ErrBadShape)
	_, err = parameters.NewShape(math.MaxInt/3+1, 3)
	require.ErrorIs(t, err, parameters.ErrBadShape)
	s, err := parameters.NewShape(0, math.MaxInt, math.MaxInt)
	require.NoError(t, err)
	require.Equal(t, 0, s.Size())
}

// TestTypeBuilder covers freezing, ordering and declaration errors.
func TestTypeBuilder(t *testing.T) {
	t.Parallel()

	b := parameters.NewTypeBuilder().Add("zeta", parameters.Shape{2}).AddSize("alpha", 0)
	typ, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "zeta"}, typ.Names())

	// Later builder mutations never reach the frozen Type.
	b.Add("late", parameters.Scalar())
	require.False(t, typ.Has("late"))

	// Neither do mutations of returned shapes.
	s, ok := typ.Shape("zeta")
	require.True(t, ok)
	s[0] = 99
	s2, _ := typ.Shape("zeta")
	require.Equal(t, parameters.Shape{2}, s2)

	tests := []struct {
		name string
		b    *parameters.TypeBuilder
		want error
	}{
		{"duplicate", parameters.NewTypeBuilder().AddSize("x", 0).AddSize("x", 2), parameters.ErrDuplicateName},
		{"empty name", parameters.NewTypeBuilder().AddSize("", 0), parameters.ErrBadName},
		{"not identifier", parameters.NewTypeBuilder().AddSize("a.b", 0), parameters.ErrBadName},
		{"leading digit", parameters.NewTypeBuilder().AddSize("1x", 0), parameters.ErrBadName},
		{"negative", parameters.NewTypeBuilder().AddSize("x", -2), parameters.ErrBadShape},
		{"overflow", parameters.NewTypeBuilder().Add("x", parameters.Shape{math.MaxInt / 2, 4}), parameters.ErrBadShape},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.b.Build()
			require.ErrorIs(t, err, tc.want)
		})
	}
}

// TestType_EqualIgnoresDeclarationOrder checks the canonical ordering.
func TestType_EqualIgnoresDeclarationOrder(t *testing.T) {
	t.Parallel()

	a, err := parameters.NewTypeBuilder().AddSize("x", 0).AddSize("y", 3).Build()
	require.NoError(t, err)
	b, err := parameters.TypeOf(map[string]int{"y": 3, "x": 0})
	require.NoError(t, err)
	require.True(t, a.Equal(b))
	require.Equal(t, "{x: (), y: (3,)}", a.String())

	c, err := parameters.TypeOf(map[string]int{"x": 0, "y": 2})
	require.NoError(t, err)
	require.False(t, a.Equal(c))
}

// TestType_JSONYAML round-trips declarations and accepts bare integers.
func TestType_JSONYAML(t *testing.T) {
	t.Parallel()

	typ := parameters.MustType(map[string]parameters.Shape{"x": {}, "m": {2, 2}})
	b, err := json.Marshal(typ)
	require.NoError(t, err)
	require.JSONEq(t, `{"m":[2,2],"x":[]}`, string(b))

	var loose parameters.Type
	require.NoError(t, json.Unmarshal([]byte(`{"x": 0, "m": [2, 2]}`), &loose))
	require.True(t, typ.Equal(loose), cmp.Diff(typ.Map(), loose.Map()))

	var bad parameters.Type
	require.ErrorIs(t, json.Unmarshal([]byte(`{"x": -1}`), &bad), parameters.ErrBadShape)

	y, err := yaml.Marshal(typ)
	require.NoError(t, err)
	var back parameters.Type
	require.NoError(t, yaml.Unmarshal(y, &back))
	require.True(t, typ.Equal(back), cmp.Diff(typ.Map(), back.Map()))

	var fromInts parameters.Type
	require.NoError(t, yaml.Unmarshal([]byte("x: 0\nv: 3\n"), &fromInts))
	require.Empty(t, cmp.Diff(map[string]parameters.Shape{"x": {}, "v": {3}}, fromInts.Map()))
}
