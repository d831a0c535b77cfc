package math

import (
	"errors"
	"fmt"
	m "math"

	"gonum.org/v1/gonum/mat"

	"github.com/Precipitator80/CS4102-Practical-1/engine/core"
)

const (
	/** @brief Default tolerance when comparing computed matrices. */
	K_COMPARE_TOLERANCE float64 = 1e-9
)

// ------------------------------------------
// Vector 3
// ------------------------------------------

func NewVec3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

func NewVec3Zero() Vec3 {
	return Vec3{}
}

func NewVec3One() Vec3 {
	return Vec3{1, 1, 1}
}

// ToVec4 returns the homogeneous form of v with the given w.
func (v Vec3) ToVec4(w float64) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}

func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		v.X + other.X,
		v.Y + other.Y,
		v.Z + other.Z}
}

func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{
		v.X - other.X,
		v.Y - other.Y,
		v.Z - other.Z}
}

func (v Vec3) MulScalar(scalar float64) Vec3 {
	return Vec3{
		v.X * scalar,
		v.Y * scalar,
		v.Z * scalar}
}

func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vec3) Length() float64 {
	return m.Sqrt(v.LengthSquared())
}

/**
 * @brief Returns the dot product between the provided vectors. Typically used
 * to calculate the difference in direction.
 */
func (v Vec3) Dot(other Vec3) float64 {
	p := float64(0)
	p += v.X * other.X
	p += v.Y * other.Y
	p += v.Z * other.Z
	return p
}

/**
 * @brief Calculates and returns the cross product of the supplied vectors.
 * The cross product is a new vector which is orthoganal to both provided vectors.
 */
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X}
}

/**
 * @brief Compares all elements of v and other and ensures the difference
 * is less than tolerance.
 */
func (v Vec3) Compare(other Vec3, tolerance float64) bool {
	return NearlyEqual(v.X, other.X, tolerance) &&
		NearlyEqual(v.Y, other.Y, tolerance) &&
		NearlyEqual(v.Z, other.Z, tolerance)
}

func (v Vec3) Distance(other Vec3) float64 {
	return v.Sub(other).Length()
}

// Round rounds every component to precision decimals.
func (v Vec3) Round(precision int) Vec3 {
	return Vec3{RoundTo(v.X, precision), RoundTo(v.Y, precision), RoundTo(v.Z, precision)}
}

/**
 * @brief Transform v by m. NOTE: It is assumed by this function that the
 * vector v is a point, not a direction, and is calculated as if a w component
 * with a value of 1.0 is there.
 */
func (v Vec3) Transform(mt Mat4) Vec3 {
	return mt.MulVec4(v.ToVec4(1)).ToVec3()
}

// ------------------------------------------
// Vector 4
// ------------------------------------------

// ToVec3 drops w without dividing by it; every transform here is affine.
func (v Vec4) ToVec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// ------------------------------------------
// Matrix 4x4
// ------------------------------------------

/**
 * @brief Creates and returns an identity matrix:
 *
 * {
 *   {1, 0, 0, 0},
 *   {0, 1, 0, 0},
 *   {0, 0, 1, 0},
 *   {0, 0, 0, 1}
 * }
 */
func NewMat4Identity() Mat4 {
	out_matrix := Mat4{}
	out_matrix.Data[0] = 1.0
	out_matrix.Data[5] = 1.0
	out_matrix.Data[10] = 1.0
	out_matrix.Data[15] = 1.0
	return out_matrix
}

/**
 * @brief Returns the result of multiplying mt by other. With column
 * vectors, other is applied first.
 */
func (mt Mat4) Mul(other Mat4) Mat4 {
	out_matrix := Mat4{}

	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			sum := float64(0)
			for i := 0; i < 4; i++ {
				sum += mt.Data[row*4+i] * other.Data[i*4+col]
			}
			out_matrix.Data[row*4+col] = sum
		}
	}

	return out_matrix
}

func (mt Mat4) MulVec4(v Vec4) Vec4 {
	d := mt.Data
	return Vec4{
		d[0]*v.X + d[1]*v.Y + d[2]*v.Z + d[3]*v.W,
		d[4]*v.X + d[5]*v.Y + d[6]*v.Z + d[7]*v.W,
		d[8]*v.X + d[9]*v.Y + d[10]*v.Z + d[11]*v.W,
		d[12]*v.X + d[13]*v.Y + d[14]*v.Z + d[15]*v.W,
	}
}

/**
 * @brief Creates and returns an inverse of the provided matrix. A singular
 * matrix fails with core.ErrSingularMatrix.
 */
func (mt Mat4) Inverse() (Mat4, error) {
	var inv mat.Dense
	if err := inv.Inverse(mt.ToDense()); err != nil {
		// gonum reports near-singular input as a Condition error while still
		// producing a result; anything else means no inverse exists.
		var cond mat.Condition
		if !errors.As(err, &cond) || m.IsInf(float64(cond), 1) {
			return Mat4{}, fmt.Errorf("%w: %v", core.ErrSingularMatrix, err)
		}
		core.LogWarn("inverting an ill-conditioned matrix: %s", err)
	}
	return NewMat4FromDense(&inv)
}

/**
 * @brief Creates and returns a translation matrix from the given position.
 */
func NewMat4Translation(position Vec3) Mat4 {
	out_matrix := NewMat4Identity()
	out_matrix.Data[3] = position.X
	out_matrix.Data[7] = position.Y
	out_matrix.Data[11] = position.Z
	return out_matrix
}

/**
 * @brief Returns a scale matrix using the provided scale.
 */
func NewMat4Scale(scale Vec3) Mat4 {
	out_matrix := NewMat4Identity()
	out_matrix.Data[0] = scale.X
	out_matrix.Data[5] = scale.Y
	out_matrix.Data[10] = scale.Z
	return out_matrix
}

/**
 * @brief Creates a rotation matrix from the provided x angle.
 */
func NewMat4EulerX(angle_radians float64) Mat4 {
	out_matrix := NewMat4Identity()
	c := m.Cos(angle_radians)
	s := m.Sin(angle_radians)

	out_matrix.Data[5] = c
	out_matrix.Data[6] = -s
	out_matrix.Data[9] = s
	out_matrix.Data[10] = c
	return out_matrix
}

/**
 * @brief Creates a rotation matrix from the provided y angle.
 */
func NewMat4EulerY(angle_radians float64) Mat4 {
	out_matrix := NewMat4Identity()
	c := m.Cos(angle_radians)
	s := m.Sin(angle_radians)

	out_matrix.Data[0] = c
	out_matrix.Data[2] = s
	out_matrix.Data[8] = -s
	out_matrix.Data[10] = c
	return out_matrix
}

/**
 * @brief Creates a rotation matrix from the provided z angle.
 */
func NewMat4EulerZ(angle_radians float64) Mat4 {
	out_matrix := NewMat4Identity()

	c := m.Cos(angle_radians)
	s := m.Sin(angle_radians)

	out_matrix.Data[0] = c
	out_matrix.Data[1] = -s
	out_matrix.Data[4] = s
	out_matrix.Data[5] = c
	return out_matrix
}

/**
 * @brief Creates a rotation matrix from the provided x, y and z axis
 * rotations as Rz·Ry·Rx, so the x rotation is applied first.
 */
func NewMat4EulerZYX(x_radians, y_radians, z_radians float64) Mat4 {
	rx := NewMat4EulerX(x_radians)
	ry := NewMat4EulerY(y_radians)
	rz := NewMat4EulerZ(z_radians)
	return rz.Mul(ry.Mul(rx))
}

// Compare reports whether every element is within tolerance of other.
func (mt Mat4) Compare(other Mat4, tolerance float64) bool {
	for i := range mt.Data {
		if !NearlyEqual(mt.Data[i], other.Data[i], tolerance) {
			return false
		}
	}
	return true
}

// Round rounds every element to precision decimals.
func (mt Mat4) Round(precision int) Mat4 {
	out_matrix := mt
	for i := range out_matrix.Data {
		out_matrix.Data[i] = RoundTo(out_matrix.Data[i], precision)
	}
	return out_matrix
}

// IsAffine reports whether the bottom row is [0 0 0 1].
func (mt Mat4) IsAffine() bool {
	return mt.Data[12] == 0 && mt.Data[13] == 0 && mt.Data[14] == 0 && mt.Data[15] == 1
}

// ToDense copies the matrix into a gonum matrix.
func (mt Mat4) ToDense() *mat.Dense {
	data := make([]float64, 16)
	copy(data, mt.Data[:])
	return mat.NewDense(4, 4, data)
}

// NewMat4FromDense copies a 4x4 gonum matrix.
func NewMat4FromDense(d mat.Matrix) (Mat4, error) {
	r, c := d.Dims()
	if r != 4 || c != 4 {
		return Mat4{}, fmt.Errorf("%w: want 4x4, have %dx%d", core.ErrShape, r, c)
	}
	out_matrix := Mat4{}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out_matrix.Data[i*4+j] = d.At(i, j)
		}
	}
	return out_matrix, nil
}

/**
 * @brief Applies mt to every column of a 4xN homogeneous point matrix.
 */
func (mt Mat4) Apply(points mat.Matrix) (*mat.Dense, error) {
	r, _ := points.Dims()
	if r != 4 {
		return nil, fmt.Errorf("%w: points must have 4 rows, have %d", core.ErrShape, r)
	}
	var out mat.Dense
	out.Mul(mt.ToDense(), points)
	return &out, nil
}
