package algebra

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Precipitator80/CS4102-Practical-1/engine/core"
)

func TestRotationZYX_AppliesXFirst(t *testing.T) {
	x, y, z := NewSymbol("x", ""), NewSymbol("y", ""), NewSymbol("z", "")
	b := Bindings{"x": 0.1, "y": 0.2, "z": 0.3}

	got, err := RotationZYX(x, y, z).Subs(b).Numeric()
	require.NoError(t, err)
	want, err := RotationZ(z).Mul(RotationY(y)).Mul(RotationX(x)).Subs(b).Numeric()
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			require.InDelta(t, want.At(i, j), got.At(i, j), 1e-12)
		}
	}
}

func TestEvaluate(t *testing.T) {
	theta := NewSymbol("theta", "")

	got, err := Evaluate(RotationZ(theta), Bindings{"theta": 0.1}, 2)
	require.NoError(t, err)
	require.Equal(t, N(1), got.At(0, 0))
	require.Equal(t, N(-0.1), got.At(0, 1))
	require.Equal(t, N(0.1), got.At(1, 0))

	_, err = Evaluate(RotationZ(theta), Bindings{}, 2)
	require.True(t, errors.Is(err, core.ErrUnboundSymbol))
}

func TestCentroid_UsesOwnColumnCount(t *testing.T) {
	points := FromFloats([][]float64{
		{0, 2},
		{0, 4},
		{0, 6},
		{1, 1},
	})

	got, err := Evaluate(Centroid(points), nil, 2)
	require.NoError(t, err)
	require.True(t, got.Equal(ColumnVector(N(1), N(2), N(3))))
}

func TestColumnDiff(t *testing.T) {
	points := FromFloats([][]float64{
		{-2, 2},
		{-1, -1},
		{3, 3},
		{1, 1},
	})

	require.True(t, ColumnDiff(points, 1, 0).Equal(ColumnVector(N(4), N(0), N(0), N(0))))
}
