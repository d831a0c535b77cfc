package pipeline

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/Precipitator80/CS4102-Practical-1/engine/algebra"
	"github.com/Precipitator80/CS4102-Practical-1/engine/core"
	"github.com/Precipitator80/CS4102-Practical-1/engine/math"
	"github.com/Precipitator80/CS4102-Practical-1/engine/renderer/components"
)

// MinPoints is the number of columns the edge and plane checks read.
const MinPoints = 5

// MaxPrecision keeps 10^precision well inside float64 range.
const MaxPrecision = 12

type ModelParams struct {
	// Euler angles in radians, applied X first.
	Rotation    math.Vec3
	Translation math.Vec3
	Scale       math.Vec3
}

type CameraParams struct {
	Pitch    float64
	Yaw      float64
	Distance float64
}

// Scene is everything a run needs. It is built once and never mutated by
// the pipeline.
type Scene struct {
	// Points is a 4xN homogeneous table, one point per column.
	Points *mat.Dense
	Model  ModelParams
	Camera CameraParams
	// ScaleFactors is the in-place scale applied in the object's frame.
	ScaleFactors math.Vec3
	Precision    int
}

func (s Scene) Validate() error {
	if s.Points == nil {
		return fmt.Errorf("%w: scene has no points", core.ErrShape)
	}
	r, c := s.Points.Dims()
	if r != 4 || c < MinPoints {
		return fmt.Errorf("%w: points must be 4xN with N >= %d, have %dx%d", core.ErrShape, MinPoints, r, c)
	}
	for j := 0; j < c; j++ {
		if w := s.Points.At(3, j); w != 1 {
			return fmt.Errorf("%w: point %d has w=%v, want 1", core.ErrShape, j, w)
		}
	}
	if s.Precision < 0 || s.Precision > MaxPrecision {
		return fmt.Errorf("precision %d outside [0, %d]", s.Precision, MaxPrecision)
	}
	return nil
}

// Symbols are the named unknowns of the model and camera transforms.
type Symbols struct {
	Rotation    [3]*algebra.Symbol
	Translation [3]*algebra.Symbol
	Scale       [3]*algebra.Symbol
	Camera      components.CameraSymbols
}

func DefaultSymbols() Symbols {
	return Symbols{
		Rotation: [3]*algebra.Symbol{
			algebra.NewSymbol("theta_x", `\theta_{x}`),
			algebra.NewSymbol("theta_y", `\theta_{y}`),
			algebra.NewSymbol("theta_z", `\theta_{z}`),
		},
		Translation: [3]*algebra.Symbol{
			algebra.NewSymbol("delta_x", `\delta_{x}`),
			algebra.NewSymbol("delta_y", `\delta_{y}`),
			algebra.NewSymbol("delta_z", `\delta_{z}`),
		},
		Scale: [3]*algebra.Symbol{
			algebra.NewSymbol("sigma_x", `\sigma_{x}`),
			algebra.NewSymbol("sigma_y", `\sigma_{y}`),
			algebra.NewSymbol("sigma_z", `\sigma_{z}`),
		},
		Camera: components.CameraSymbols{
			Pitch:    algebra.NewSymbol("theta_xc", `\theta_{xc}`),
			Yaw:      algebra.NewSymbol("theta_yc", `\theta_{yc}`),
			Distance: algebra.NewSymbol("d_c", `d_{c}`),
		},
	}
}

// ModelBindings binds the model unknowns to the scene's values.
func (s Symbols) ModelBindings(p ModelParams) algebra.Bindings {
	b := make(algebra.Bindings, 9)
	bind := func(syms [3]*algebra.Symbol, v math.Vec3) {
		b[syms[0].Name] = v.X
		b[syms[1].Name] = v.Y
		b[syms[2].Name] = v.Z
	}
	bind(s.Rotation, p.Rotation)
	bind(s.Translation, p.Translation)
	bind(s.Scale, p.Scale)
	return b
}
