package engine

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/Precipitator80/CS4102-Practical-1/engine/assets/loaders"
	"github.com/Precipitator80/CS4102-Practical-1/engine/core"
	"github.com/Precipitator80/CS4102-Practical-1/engine/math"
	"github.com/Precipitator80/CS4102-Practical-1/engine/pipeline"
)

// applyScene returns base with every value present in f replaced. base is
// not modified.
func applyScene(base pipeline.Scene, f *loaders.SceneFile) (pipeline.Scene, error) {
	scene := base
	if base.Points != nil {
		scene.Points = mat.DenseCopyOf(base.Points)
	}
	if f == nil {
		return scene, nil
	}

	if m := f.Model; m != nil {
		setVec3(&scene.Model.Rotation, m.Rotation)
		setVec3(&scene.Model.Translation, m.Translation)
		setVec3(&scene.Model.Scale, m.Scale)
	}
	if c := f.Camera; c != nil {
		if c.Pitch != nil {
			scene.Camera.Pitch = *c.Pitch
		}
		if c.Yaw != nil {
			scene.Camera.Yaw = *c.Yaw
		}
		if c.Distance != nil {
			scene.Camera.Distance = *c.Distance
		}
	}
	if s := f.Scaling; s != nil {
		setVec3(&scene.ScaleFactors, s.Factors)
	}
	if p := f.Points; p != nil && len(p.X) > 0 {
		n := len(p.X)
		if n < pipeline.MinPoints {
			return pipeline.Scene{}, fmt.Errorf("%w: scene file has %d points, need at least %d", core.ErrShape, n, pipeline.MinPoints)
		}
		points := mat.NewDense(4, n, nil)
		points.SetRow(0, p.X)
		points.SetRow(1, p.Y)
		points.SetRow(2, p.Z)
		for j := 0; j < n; j++ {
			points.Set(3, j, 1)
		}
		scene.Points = points
	}
	return scene, nil
}

func setVec3(dst *math.Vec3, v []float64) {
	if len(v) == 3 {
		*dst = math.NewVec3(v[0], v[1], v[2])
	}
}
