// SPDX-License-Identifier: MIT
package functionals_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvparam/functionals"
	"github.com/katalvlaran/lvparam/parameters"
)

func sample(n int) []parameters.Parameter {
	mus := make([]parameters.Parameter, n)
	for i := range mus {
		mus[i] = parameters.NewParameter(map[string]parameters.Array{"x": parameters.ScalarOf(float64(i))})
	}

	return mus
}

// TestEvaluateMany_Order checks ordered results under concurrency and that a
// shared functional matches sequential evaluation bit for bit.
func TestEvaluateMany_Order(t *testing.T) {
	t.Parallel()

	f := mustExpression(t, "sin(x) * exp(-x / 100) + x**2", scalarX)
	mus := sample(500)
	for _, n := range []int{1, 3, 16} {
		got, err := functionals.EvaluateMany(context.Background(), f, mus, functionals.WithConcurrency(n))
		require.NoError(t, err)
		require.Len(t, got, len(mus))
		for i, mu := range mus {
			want, err := f.Evaluate(mu)
			require.NoError(t, err)
			require.True(t, want.Equal(got[i]), "sample %d with concurrency %d", i, n)
		}
	}

	got, err := functionals.EvaluateMany(context.Background(), f, nil)
	require.NoError(t, err)
	require.Empty(t, got)
}

// TestEvaluateMany_Errors covers failure propagation and cancellation.
func TestEvaluateMany_Errors(t *testing.T) {
	t.Parallel()

	errOdd := errors.New("odd sample")
	g, err := functionals.NewGeneric(func(mu parameters.Parameter) (parameters.Array, error) {
		x, _ := mu.Get("x")
		if v, _ := x.Float(); int(v)%2 == 1 {
			return parameters.Array{}, errOdd
		}
		return x, nil
	}, scalarX)
	require.NoError(t, err)

	_, err = functionals.EvaluateMany(context.Background(), g, sample(10), functionals.WithConcurrency(2))
	require.ErrorIs(t, err, errOdd)

	bad := []parameters.Parameter{parameters.NewParameter(map[string]parameters.Array{"y": parameters.ScalarOf(1)})}
	_, err = functionals.EvaluateMany(context.Background(), g, bad)
	require.ErrorIs(t, err, parameters.ErrTypeMismatch)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = functionals.EvaluateMany(ctx, g, sample(4))
	require.ErrorIs(t, err, context.Canceled)

	_, err = functionals.EvaluateMany(context.Background(), nil, sample(1))
	require.ErrorIs(t, err, functionals.ErrNotInitialized)

	require.Panics(t, func() { functionals.WithConcurrency(0) })
}
