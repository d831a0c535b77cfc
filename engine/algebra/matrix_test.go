package algebra

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/Precipitator80/CS4102-Practical-1/engine/core"
)

func TestMatrix_MulIdentity(t *testing.T) {
	a := FromFloats([][]float64{{1, 2}, {3, 4}})

	require.True(t, a.Mul(Identity(2)).Equal(a))
	require.True(t, Identity(2).Mul(a).Equal(a))
}

func TestMatrix_MulShapeMismatch(t *testing.T) {
	a := FromFloats([][]float64{{1, 2, 3}})

	require.Panics(t, func() { a.Mul(a) })
}

func TestMatrix_T(t *testing.T) {
	a := FromFloats([][]float64{{1, 2, 3}, {4, 5, 6}})

	rows, cols := a.T().Dims()
	require.Equal(t, 3, rows)
	require.Equal(t, 2, cols)
	require.Equal(t, N(6), a.T().At(2, 1))
}

func TestMatrix_Det(t *testing.T) {
	a := FromFloats([][]float64{
		{2, 0, 1},
		{1, 3, 2},
		{1, 1, 2},
	})
	require.Equal(t, N(6), a.Det())

	theta := NewSymbol("theta", "")
	det, err := EvaluateScalar(RotationX(theta).Det(), Bindings{"theta": 0.3}, 9)
	require.NoError(t, err)
	require.Equal(t, 1.0, det)
}

func TestMatrix_Inverse(t *testing.T) {
	a := FromFloats([][]float64{
		{2, 0, 1, 0},
		{1, 3, 2, 0},
		{1, 1, 2, 0},
		{0, 0, 0, 1},
	})
	inv, err := a.Inverse()
	require.NoError(t, err)

	prod, err := a.Mul(inv).Numeric()
	require.NoError(t, err)
	require.True(t, mat.EqualApprox(prod, mat.NewDiagDense(4, []float64{1, 1, 1, 1}), 1e-12))
}

func TestMatrix_InverseSymbolic(t *testing.T) {
	d := NewSymbol("d", "")
	tr := Translation(N(0), N(0), d)

	inv, err := tr.Inverse()
	require.NoError(t, err)

	got, err := Evaluate(inv, Bindings{"d": 12}, 2)
	require.NoError(t, err)
	require.Equal(t, N(-12), got.At(2, 3))
}

func TestMatrix_InverseSingular(t *testing.T) {
	a := FromFloats([][]float64{{1, 2}, {2, 4}})

	_, err := a.Inverse()
	require.True(t, errors.Is(err, core.ErrSingularMatrix))
}

func TestMatrix_DotCross(t *testing.T) {
	x := ColumnVector(N(1), N(0), N(0), N(0))
	y := ColumnVector(N(0), N(1), N(0), N(0))

	require.Equal(t, N(0), x.Dot(y))
	require.True(t, x.Cross(y).Equal(ColumnVector(N(0), N(0), N(1))))
	require.Equal(t, N(5), ColumnVector(N(3), N(4)).Norm())
}

func TestMatrix_NumericUnbound(t *testing.T) {
	_, err := ColumnVector(NewSymbol("x", "")).Numeric()

	require.True(t, errors.Is(err, core.ErrUnboundSymbol))
}

func TestMatrix_RoundKeepsSymbols(t *testing.T) {
	x := NewSymbol("x", "")
	a := NewMatrix(1, 2, N(1.23456), x)

	got := a.Round(2)
	require.Equal(t, N(1.23), got.At(0, 0))
	require.Equal(t, Expr(x), got.At(0, 1))
}

func TestMatrix_Render(t *testing.T) {
	require.Equal(t, "[1, 0]\n[0, 1]", Identity(2).String())
	require.Equal(t, `\begin{bmatrix} 1 & 0 \\ 0 & 1 \end{bmatrix}`, Identity(2).LaTeX())
}
