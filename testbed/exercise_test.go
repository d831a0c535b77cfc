package testbed

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Precipitator80/CS4102-Practical-1/engine"
	"github.com/Precipitator80/CS4102-Practical-1/engine/pipeline"
)

func TestDefaultScene_Valid(t *testing.T) {
	scene := DefaultScene()

	require.NoError(t, scene.Validate())
	_, cols := scene.Points.Dims()
	require.Equal(t, 10, cols)
}

func TestDefaultScene_Fresh(t *testing.T) {
	a := DefaultScene()
	a.Points.Set(0, 0, 99)

	require.Equal(t, -2.0, DefaultScene().Points.At(0, 0))
}

func TestTestExercise_Run(t *testing.T) {
	tx := NewTestExercise()
	var out bytes.Buffer
	e, err := engine.New(tx.Exercise, &out)
	require.NoError(t, err)
	defer e.Shutdown()
	require.NoError(t, e.Initialize())

	r, err := e.RunOnce()
	require.NoError(t, err)
	require.Empty(t, r.Failed())
	require.Equal(t, 2, r.Precision)

	_, ok := r.Step(pipeline.StepScaledPoints)
	require.True(t, ok)
	require.Contains(t, out.String(), "== "+pipeline.StepScaleDistances+" [ok] ==")
}
