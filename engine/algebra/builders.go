package algebra

import (
	"fmt"

	"github.com/Precipitator80/CS4102-Practical-1/engine/core"
)

var (
	zero = Num(0)
	one  = Num(1)
)

// Translation builds the homogeneous translation by (dx, dy, dz).
func Translation(dx, dy, dz Expr) *Matrix {
	return NewMatrix(4, 4,
		one, zero, zero, dx,
		zero, one, zero, dy,
		zero, zero, one, dz,
		zero, zero, zero, one,
	)
}

// Scale builds the homogeneous scale by (sx, sy, sz) about the origin.
func Scale(sx, sy, sz Expr) *Matrix {
	return NewMatrix(4, 4,
		sx, zero, zero, zero,
		zero, sy, zero, zero,
		zero, zero, sz, zero,
		zero, zero, zero, one,
	)
}

// RotationX rotates anticlockwise about the X axis.
func RotationX(theta Expr) *Matrix {
	c, s := Cos(theta), Sin(theta)
	return NewMatrix(4, 4,
		one, zero, zero, zero,
		zero, c, Neg(s), zero,
		zero, s, c, zero,
		zero, zero, zero, one,
	)
}

// RotationY rotates anticlockwise about the Y axis.
func RotationY(theta Expr) *Matrix {
	c, s := Cos(theta), Sin(theta)
	return NewMatrix(4, 4,
		c, zero, s, zero,
		zero, one, zero, zero,
		Neg(s), zero, c, zero,
		zero, zero, zero, one,
	)
}

// RotationZ rotates anticlockwise about the Z axis.
func RotationZ(theta Expr) *Matrix {
	c, s := Cos(theta), Sin(theta)
	return NewMatrix(4, 4,
		c, Neg(s), zero, zero,
		s, c, zero, zero,
		zero, zero, one, zero,
		zero, zero, zero, one,
	)
}

// RotationZYX composes Rz·Ry·Rx, so the X rotation is applied first.
func RotationZYX(x, y, z Expr) *Matrix {
	return RotationZ(z).Mul(RotationY(y).Mul(RotationX(x)))
}

// Centroid averages the x, y and z rows of a 3×N or 4×N point matrix over
// its own N columns and returns a 3×1 vector.
func Centroid(points *Matrix) *Matrix {
	rows, cols := points.Dims()
	if rows < 3 {
		panic(fmt.Errorf("%w: centroid of %dx%d", core.ErrShape, rows, cols))
	}
	out := make([]Expr, 3)
	terms := make([]Expr, cols)
	for i := 0; i < 3; i++ {
		for j := 0; j < cols; j++ {
			terms[j] = points.At(i, j)
		}
		out[i] = Div(Add(terms...), Num(float64(cols)))
	}
	return ColumnVector(out...)
}

// ColumnDiff returns column i minus column j.
func ColumnDiff(points *Matrix, i, j int) *Matrix {
	return points.Col(i).Sub(points.Col(j))
}

// Evaluate substitutes b into a and rounds the result to precision
// decimals. It fails when a symbol is left unbound or a denominator
// evaluates to zero.
func Evaluate(a *Matrix, b Bindings, precision int) (*Matrix, error) {
	s := a.Subs(b)
	if _, err := s.Numeric(); err != nil {
		return nil, err
	}
	return s.Round(precision), nil
}
