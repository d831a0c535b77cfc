package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/Precipitator80/CS4102-Practical-1/engine/algebra"
	"github.com/Precipitator80/CS4102-Practical-1/engine/core"
	"github.com/Precipitator80/CS4102-Practical-1/engine/math"
)

func boxScene() Scene {
	return Scene{
		Points: mat.NewDense(4, 10, []float64{
			-2, 2, 2, -2, -2, 2, 2, -2, -2, 2,
			-1, -1, 1, 1, -1, -1, 1, 1, -0.5, -0.5,
			3, 3, 3, 3, -3, -3, -3, -3, -1, -1,
			1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
		}),
		Model: ModelParams{
			Rotation:    math.NewVec3(0.1, 0.2, 0.1),
			Translation: math.NewVec3(0, 1, 1),
			Scale:       math.NewVec3(0.7, 0.7, 0.7),
		},
		Camera:       CameraParams{Pitch: 0.15, Yaw: 0.07, Distance: 12},
		ScaleFactors: math.NewVec3(2, 1, 1),
		Precision:    2,
	}
}

func run(t *testing.T, scene Scene) *Report {
	t.Helper()
	p, err := New(scene, DefaultSymbols(), core.NewRunID())
	require.NoError(t, err)
	r, err := p.Run()
	require.NoError(t, err)
	return r
}

func step(t *testing.T, r *Report, name string) Step {
	t.Helper()
	s, ok := r.Step(name)
	require.True(t, ok, "missing step %q", name)
	return s
}

func TestRun_StepOrder(t *testing.T) {
	r := run(t, boxScene())

	names := make([]string, len(r.Steps))
	for i, s := range r.Steps {
		names[i] = s.Name
	}
	require.Equal(t, StepRotation, names[0])
	require.Equal(t, StepCompositionOrder, names[len(names)-1])
	require.Less(t, indexOf(names, StepView), indexOf(names, StepModelView))
	require.Less(t, indexOf(names, StepModelViewPoints), indexOf(names, StepScaledPoints))
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

func TestRun_AllChecksPass(t *testing.T) {
	r := run(t, boxScene())

	require.Empty(t, r.Failed())
	for _, name := range []string{
		StepModelTransform,
		StepDotV1V2,
		StepDotV2V3,
		StepCoplanar,
		StepViewInverse,
		StepAssociativity,
		StepModelViewInverse,
		StepScaleDistances,
		StepCompositionOrder,
	} {
		s := step(t, r, name)
		require.Equal(t, StepCheck, s.Kind, name)
		require.True(t, s.Passed, name)
	}
}

func TestRun_ValuesAreRounded(t *testing.T) {
	r := run(t, boxScene())

	for _, s := range r.Steps {
		require.Empty(t, s.Value.Symbols(), s.Name)
		rounded := s.Value.Round(r.Precision)
		require.True(t, rounded.Equal(s.Value), "%s is not rounded: %s", s.Name, s.Value)
	}
}

func TestRun_CentroidXIsZero(t *testing.T) {
	r := run(t, boxScene())

	c := step(t, r, StepCentroid).Value
	require.Equal(t, algebra.N(0), c.At(0, 0))
	require.Equal(t, algebra.N(-0.1), c.At(1, 0))
	require.Equal(t, algebra.N(-0.2), c.At(2, 0))
}

func TestRun_CoplanarResidualsZero(t *testing.T) {
	r := run(t, boxScene())

	s := step(t, r, StepCoplanar)
	require.True(t, s.Value.Equal(algebra.NewMatrix(1, 3, algebra.N(0), algebra.N(0), algebra.N(0))))
}

func TestRun_InPlaceScaleDoublesX(t *testing.T) {
	r := run(t, boxScene())

	d := step(t, r, StepScaleDistances).Value
	require.Equal(t, algebra.N(2), d.At(0, 2), "x edge ratio")
	require.Equal(t, algebra.N(1), d.At(1, 2), "y edge ratio")
	require.Equal(t, algebra.N(1), d.At(2, 2), "z edge ratio")
	require.Equal(t, algebra.N(2.8), d.At(0, 0))
	require.Equal(t, algebra.N(5.6), d.At(0, 1))
}

func TestRun_InPlaceScaleOtherAxis(t *testing.T) {
	scene := boxScene()
	scene.ScaleFactors = math.NewVec3(1, 3, 1)
	r := run(t, scene)

	d := step(t, r, StepScaleDistances).Value
	require.Equal(t, algebra.N(1), d.At(0, 2))
	require.Equal(t, algebra.N(3), d.At(1, 2))
	require.True(t, step(t, r, StepScaleDistances).Passed)
}

func TestRun_ModelViewInverseRecorded(t *testing.T) {
	r := run(t, boxScene())

	names := make([]string, len(r.Steps))
	for i, s := range r.Steps {
		names[i] = s.Name
	}
	require.Less(t, indexOf(names, StepModelViewInverse), indexOf(names, StepScaler))

	s := step(t, r, StepModelViewInverse)
	require.Equal(t, StepCheck, s.Kind)
	require.True(t, s.Passed)

	mvm, err := exactModelView(boxScene())
	require.NoError(t, err)
	want, err := mvm.Inverse()
	require.NoError(t, err)
	got, err := s.Value.Numeric()
	require.NoError(t, err)
	require.True(t, mat.EqualApprox(math.RoundDense(want.ToDense(), 2), got, 1e-9), "%v", mat.Formatted(got))
}

// exactModelView builds Mview·M from the numeric builders.
func exactModelView(scene Scene) (math.Mat4, error) {
	m := scene.Model
	model := math.NewMat4Translation(m.Translation).
		Mul(math.NewMat4EulerZYX(m.Rotation.X, m.Rotation.Y, m.Rotation.Z)).
		Mul(math.NewMat4Scale(m.Scale))
	camera := math.NewMat4EulerY(scene.Camera.Yaw).
		Mul(math.NewMat4EulerX(scene.Camera.Pitch)).
		Mul(math.NewMat4Translation(math.NewVec3(0, 0, scene.Camera.Distance)))
	view, err := camera.Inverse()
	if err != nil {
		return math.Mat4{}, err
	}
	return view.Mul(model), nil
}

func TestRun_CompositionOrderMatters(t *testing.T) {
	r := run(t, boxScene())

	s := step(t, r, StepCompositionOrder)
	require.True(t, s.Passed)
	require.False(t, s.Value.Equal(step(t, r, StepModel).Value))
}

func TestRun_CentroidUsesTransformedCount(t *testing.T) {
	scene := boxScene()
	scene.Points = mat.DenseCopyOf(scene.Points.Slice(0, 4, 0, 8))
	r := run(t, scene)

	// The corners are centred on the origin, so their model-view centroid
	// is where the model-view matrix sends the origin.
	mvm, err := step(t, r, StepModelView).Value.Numeric()
	require.NoError(t, err)
	c, err := step(t, r, StepCentroidMVM).Value.Numeric()
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.InDelta(t, mvm.At(i, 3), c.At(i, 0), 0.02, "row %d", i)
	}
}

func TestRun_AtOriginUsesExactModelViewPoints(t *testing.T) {
	scene := boxScene()
	r := run(t, scene)

	mvm, err := exactModelView(scene)
	require.NoError(t, err)
	exact, err := mvm.Apply(scene.Points)
	require.NoError(t, err)

	d, err := step(t, r, StepCentroidDelta).Value.Numeric()
	require.NoError(t, err)
	back := math.NewMat4Translation(math.NewVec3(-d.At(0, 0), -d.At(1, 0), -d.At(2, 0)))
	m := scene.Model
	camRotation := math.NewMat4EulerY(scene.Camera.Yaw).Mul(math.NewMat4EulerX(scene.Camera.Pitch))
	undo := camRotation.Mul(math.NewMat4EulerZYX(m.Rotation.X, m.Rotation.Y, m.Rotation.Z)).ToDense().T()

	var toOrigin, want mat.Dense
	toOrigin.Mul(undo, back.ToDense())
	want.Mul(&toOrigin, exact)
	got, err := step(t, r, StepAtOrigin).Value.Numeric()
	require.NoError(t, err)
	require.True(t, mat.EqualApprox(math.RoundDense(&want, scene.Precision), got, 1e-9),
		"got\n%v\nwant\n%v", mat.Formatted(got), mat.Formatted(math.RoundDense(&want, scene.Precision)))
}

func TestRun_SymbolicFormsKept(t *testing.T) {
	r := run(t, boxScene())

	rotation := step(t, r, StepRotation)
	require.NotNil(t, rotation.Symbolic)
	require.Contains(t, rotation.Symbolic.Symbols(), "theta_x")

	camera := step(t, r, StepCamera)
	require.Equal(t, []string{"d_c", "theta_xc", "theta_yc"}, camera.Symbolic.Symbols())
}

func TestRun_ViewAgreesWithCamera(t *testing.T) {
	r := run(t, boxScene())

	view := step(t, r, StepView).Value
	// The camera sits 12 units out along its own z axis.
	require.Equal(t, algebra.N(-12), view.At(2, 3))
}

func TestRun_CameraUsesPitchPastPole(t *testing.T) {
	scene := boxScene()
	scene.Camera.Pitch = 1.6
	r := run(t, scene)

	world := math.NewMat4EulerY(0.07).Mul(math.NewMat4EulerX(1.6)).Mul(math.NewMat4Translation(math.NewVec3(0, 0, 12)))
	got, err := step(t, r, StepCamera).Value.Numeric()
	require.NoError(t, err)
	require.True(t, mat.Equal(math.RoundDense(world.ToDense(), 2), got), "camera\n%v", mat.Formatted(got))
	require.InDelta(t, -11.99, got.At(1, 3), 1e-9)
	require.True(t, step(t, r, StepViewInverse).Passed)
}

func TestNew_RejectsBadScenes(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Scene)
		want   error
	}{
		{"too few points", func(s *Scene) { s.Points = mat.DenseCopyOf(s.Points.Slice(0, 4, 0, 4)) }, core.ErrShape},
		{"three rows", func(s *Scene) { s.Points = mat.DenseCopyOf(s.Points.Slice(0, 3, 0, 10)) }, core.ErrShape},
		{"w not one", func(s *Scene) { s.Points.Set(3, 2, 2) }, core.ErrShape},
		{"no points", func(s *Scene) { s.Points = nil }, core.ErrShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene := boxScene()
			tt.mutate(&scene)
			_, err := New(scene, DefaultSymbols(), core.NewRunID())
			require.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}

	scene := boxScene()
	scene.Precision = MaxPrecision + 1
	_, err := New(scene, DefaultSymbols(), core.NewRunID())
	require.Error(t, err)
}

func TestReport_Changed(t *testing.T) {
	first := run(t, boxScene())
	same := run(t, boxScene())
	require.Empty(t, same.Changed(first))

	scene := boxScene()
	scene.ScaleFactors = math.NewVec3(1, 1, 2)
	other := run(t, scene)
	changed := other.Changed(first)
	require.Contains(t, changed, StepScaler)
	require.Contains(t, changed, StepScaledPoints)
	require.NotContains(t, changed, StepModel)
}
