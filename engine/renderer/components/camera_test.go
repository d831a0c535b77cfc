package components

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Precipitator80/CS4102-Practical-1/engine/algebra"
	"github.com/Precipitator80/CS4102-Practical-1/engine/math"
)

func testSymbols() CameraSymbols {
	return CameraSymbols{
		Pitch:    algebra.NewSymbol("theta_xc", ""),
		Yaw:      algebra.NewSymbol("theta_yc", ""),
		Distance: algebra.NewSymbol("d_c", ""),
	}
}

func TestCamera_ViewInvertsWorld(t *testing.T) {
	c := NewCamera(0.15, 0.07, 12)

	world, err := c.GetWorld()
	require.NoError(t, err)
	view, err := c.GetView()
	require.NoError(t, err)
	require.True(t, view.Mul(world).Compare(math.NewMat4Identity(), 1e-12))
}

func TestCamera_Position(t *testing.T) {
	c := NewCamera(0.15, 0.07, 12)

	p, err := c.Position()
	require.NoError(t, err)
	require.InDelta(t, 12, p.Length(), 1e-12)

	c.SetPitch(0)
	c.SetYaw(0)
	p, err = c.Position()
	require.NoError(t, err)
	require.True(t, p.Compare(math.NewVec3(0, 0, 12), 1e-12))
}

func TestCamera_PitchPastPoleKept(t *testing.T) {
	for _, pitch := range []float64{1.6, -2, 3.5} {
		c := NewCamera(pitch, 0.07, 12)
		require.Equal(t, pitch, c.Pitch)

		world, err := c.GetWorld()
		require.NoError(t, err)
		want := math.NewMat4EulerY(0.07).Mul(math.NewMat4EulerX(pitch)).Mul(math.NewMat4Translation(math.NewVec3(0, 0, 12)))
		require.True(t, world.Compare(want, 1e-12), "pitch %v", pitch)

		view, err := c.GetView()
		require.NoError(t, err)
		require.True(t, view.Mul(world).Compare(math.NewMat4Identity(), 1e-12), "pitch %v", pitch)
	}
}

func TestCamera_SymbolicMatchesNumeric(t *testing.T) {
	c := NewCamera(0.15, 0.07, 12)
	s := testSymbols()

	got, err := SymbolicWorld(s).Subs(c.Bindings(s)).Numeric()
	require.NoError(t, err)
	want, err := c.GetWorld()
	require.NoError(t, err)
	require.True(t, math.EqualDense(got, want.ToDense(), 1e-12))
}

func TestCamera_ZeroDistanceStillInvertible(t *testing.T) {
	c := NewCamera(0.3, -0.4, 0)

	view, err := c.GetView()
	require.NoError(t, err)
	require.True(t, view.IsAffine())
}
