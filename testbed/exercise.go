package testbed

import (
	"gonum.org/v1/gonum/mat"

	"github.com/Precipitator80/CS4102-Practical-1/engine"
	"github.com/Precipitator80/CS4102-Practical-1/engine/core"
	"github.com/Precipitator80/CS4102-Practical-1/engine/math"
	"github.com/Precipitator80/CS4102-Practical-1/engine/pipeline"
)

// The practical's point table: a 4x4x6 box around the origin plus two
// points on its bottom face. One point per column, homogeneous w=1.
var pointTable = []float64{
	-2, 2, 2, -2, -2, 2, 2, -2, -2, 2,
	-1, -1, 1, 1, -1, -1, 1, 1, -0.5, -0.5,
	3, 3, 3, 3, -3, -3, -3, -3, -1, -1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
}

type TestExercise struct {
	*engine.Exercise
}

func NewTestExercise() *TestExercise {
	tx := &TestExercise{
		Exercise: &engine.Exercise{
			ApplicationConfig: &engine.ApplicationConfig{
				Name:       "CS4102 Practical 1",
				LogLevel:   core.InfoLevel,
				Format:     "text",
				Precision:  2,
				ShowChecks: true,
			},
			Flags:   engine.Flags{Precision: -1},
			Scene:   DefaultScene(),
			Symbols: pipeline.DefaultSymbols(),
		},
	}
	tx.FnBoot = tx.Boot
	tx.FnOnReport = tx.OnReport
	return tx
}

// DefaultScene is the parameter set the practical is marked against.
func DefaultScene() pipeline.Scene {
	return pipeline.Scene{
		Points: mat.NewDense(4, 10, append([]float64(nil), pointTable...)),
		Model: pipeline.ModelParams{
			Rotation:    math.NewVec3(0.1, 0.2, 0.1),
			Translation: math.NewVec3(0, 1, 1),
			Scale:       math.NewVec3(0.7, 0.7, 0.7),
		},
		Camera: pipeline.CameraParams{
			Pitch:    0.15,
			Yaw:      0.07,
			Distance: 12,
		},
		ScaleFactors: math.NewVec3(2, 1, 1),
		Precision:    2,
	}
}

func (x *TestExercise) Boot() error {
	core.LogInfo("booting testbed...")
	return nil
}

func (x *TestExercise) OnReport(r *pipeline.Report) error {
	if failed := r.Failed(); len(failed) > 0 {
		core.LogWarn("run %s: %d of the checks failed", r.RunID.Short(), len(failed))
		return nil
	}
	core.LogInfo("run %s: all checks passed", r.RunID.Short())
	return nil
}
