package math

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/Precipitator80/CS4102-Practical-1/engine/core"
)

// Column reads column j of a 3xN or 4xN point matrix as a point.
func Column(points mat.Matrix, j int) (Vec3, error) {
	r, c := points.Dims()
	if r < 3 {
		return Vec3{}, fmt.Errorf("%w: points need at least 3 rows, have %d", core.ErrShape, r)
	}
	if j < 0 || j >= c {
		return Vec3{}, fmt.Errorf("%w: column %d of %d", core.ErrColumnRange, j, c)
	}
	return Vec3{points.At(0, j), points.At(1, j), points.At(2, j)}, nil
}

// ColumnDiff returns column i minus column j.
func ColumnDiff(points mat.Matrix, i, j int) (Vec3, error) {
	a, err := Column(points, i)
	if err != nil {
		return Vec3{}, err
	}
	b, err := Column(points, j)
	if err != nil {
		return Vec3{}, err
	}
	return a.Sub(b), nil
}

// Distance is the Euclidean length between columns i and j.
func Distance(points mat.Matrix, i, j int) (float64, error) {
	a, err := Column(points, i)
	if err != nil {
		return 0, err
	}
	b, err := Column(points, j)
	if err != nil {
		return 0, err
	}
	return a.Distance(b), nil
}

// Centroid averages the x, y and z rows over the columns of points. The
// point count comes from the matrix passed in, never from a shared table.
func Centroid(points mat.Matrix) (Vec3, error) {
	r, c := points.Dims()
	if r < 3 || c == 0 {
		return Vec3{}, fmt.Errorf("%w: centroid of %dx%d", core.ErrShape, r, c)
	}
	sum := NewVec3Zero()
	for j := 0; j < c; j++ {
		p, err := Column(points, j)
		if err != nil {
			return Vec3{}, err
		}
		sum = sum.Add(p)
	}
	return sum.MulScalar(1 / float64(c)), nil
}

// NewPlane returns the plane with the given normal through point.
func NewPlane(normal, point Vec3) Plane {
	return Plane{Normal: normal, D: normal.Dot(point)}
}

// NewPlaneFromPoints spans a plane over a, b and c with normal (b-a)×(c-a).
func NewPlaneFromPoints(a, b, c Vec3) Plane {
	return NewPlane(b.Sub(a).Cross(c.Sub(a)), a)
}

// Residual is Normal·r - D, zero for points on the plane.
func (p Plane) Residual(r Vec3) float64 {
	return p.Normal.Dot(r) - p.D
}

/**
 * @brief Evaluates the plane equation at the given columns of points and
 * reports whether every residual rounds to zero at precision decimals.
 * The rounded residuals are returned in column order.
 */
func (p Plane) Coplanar(points mat.Matrix, columns []int, precision int) (bool, []float64, error) {
	residuals := make([]float64, 0, len(columns))
	ok := true
	for _, j := range columns {
		r, err := Column(points, j)
		if err != nil {
			return false, nil, err
		}
		res := RoundTo(p.Residual(r), precision)
		if res != 0 {
			ok = false
		}
		residuals = append(residuals, res)
	}
	return ok, residuals, nil
}

// RoundDense rounds every element of d to precision decimals into a copy.
func RoundDense(d mat.Matrix, precision int) *mat.Dense {
	var out mat.Dense
	out.Apply(func(_, _ int, v float64) float64 {
		return RoundTo(v, precision)
	}, d)
	return &out
}

// EqualDense compares two gonum matrices within tolerance.
func EqualDense(a, b mat.Matrix, tolerance float64) bool {
	return mat.EqualApprox(a, b, tolerance)
}
