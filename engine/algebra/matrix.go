package algebra

import (
	"fmt"
	"slices"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/Precipitator80/CS4102-Practical-1/engine/core"
)

// Matrix is an immutable rows×cols grid of expressions stored row-major.
//
// Like gonum/mat, operations panic with core.ErrShape when the dimensions
// of their operands do not line up. Evaluation failures are returned as
// errors instead.
type Matrix struct {
	rows, cols int
	data       []Expr
}

// NewMatrix builds a matrix from row-major elements.
func NewMatrix(rows, cols int, elems ...Expr) *Matrix {
	if rows <= 0 || cols <= 0 || len(elems) != rows*cols {
		panic(fmt.Errorf("%w: %dx%d from %d elements", core.ErrShape, rows, cols, len(elems)))
	}
	data := make([]Expr, len(elems))
	copy(data, elems)
	return &Matrix{rows: rows, cols: cols, data: data}
}

// ColumnVector returns an n×1 matrix.
func ColumnVector(elems ...Expr) *Matrix {
	return NewMatrix(len(elems), 1, elems...)
}

// FromFloats builds a numeric matrix from rows of equal length.
func FromFloats(rows [][]float64) *Matrix {
	if len(rows) == 0 {
		panic(fmt.Errorf("%w: no rows", core.ErrShape))
	}
	cols := len(rows[0])
	elems := make([]Expr, 0, len(rows)*cols)
	for _, r := range rows {
		if len(r) != cols {
			panic(fmt.Errorf("%w: ragged rows", core.ErrShape))
		}
		for _, v := range r {
			elems = append(elems, Num(v))
		}
	}
	return NewMatrix(len(rows), cols, elems...)
}

// FromDense copies a numeric gonum matrix.
func FromDense(d mat.Matrix) *Matrix {
	r, c := d.Dims()
	elems := make([]Expr, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			elems = append(elems, Num(d.At(i, j)))
		}
	}
	return NewMatrix(r, c, elems...)
}

func Identity(n int) *Matrix {
	elems := make([]Expr, n*n)
	for i := range elems {
		elems[i] = Num(0)
	}
	for i := 0; i < n; i++ {
		elems[i*n+i] = Num(1)
	}
	return NewMatrix(n, n, elems...)
}

// Dims returns the number of rows and columns.
func (a *Matrix) Dims() (int, int) {
	return a.rows, a.cols
}

func (a *Matrix) At(i, j int) Expr {
	if i < 0 || i >= a.rows || j < 0 || j >= a.cols {
		panic(fmt.Errorf("%w: (%d, %d) outside %dx%d", core.ErrColumnRange, i, j, a.rows, a.cols))
	}
	return a.data[i*a.cols+j]
}

// Col returns column j as an n×1 matrix.
func (a *Matrix) Col(j int) *Matrix {
	if j < 0 || j >= a.cols {
		panic(fmt.Errorf("%w: %d of %d", core.ErrColumnRange, j, a.cols))
	}
	elems := make([]Expr, a.rows)
	for i := range elems {
		elems[i] = a.data[i*a.cols+j]
	}
	return ColumnVector(elems...)
}

// Map applies fn to every element.
func (a *Matrix) Map(fn func(Expr) Expr) *Matrix {
	elems := make([]Expr, len(a.data))
	for i, e := range a.data {
		elems[i] = fn(e)
	}
	return &Matrix{rows: a.rows, cols: a.cols, data: elems}
}

func (a *Matrix) T() *Matrix {
	elems := make([]Expr, 0, len(a.data))
	for j := 0; j < a.cols; j++ {
		for i := 0; i < a.rows; i++ {
			elems = append(elems, a.data[i*a.cols+j])
		}
	}
	return &Matrix{rows: a.cols, cols: a.rows, data: elems}
}

// Mul returns a·b.
func (a *Matrix) Mul(b *Matrix) *Matrix {
	if a.cols != b.rows {
		panic(fmt.Errorf("%w: %dx%d times %dx%d", core.ErrShape, a.rows, a.cols, b.rows, b.cols))
	}
	elems := make([]Expr, 0, a.rows*b.cols)
	terms := make([]Expr, a.cols)
	for i := 0; i < a.rows; i++ {
		for j := 0; j < b.cols; j++ {
			for k := 0; k < a.cols; k++ {
				terms[k] = Mul(a.data[i*a.cols+k], b.data[k*b.cols+j])
			}
			elems = append(elems, Add(terms...))
		}
	}
	return &Matrix{rows: a.rows, cols: b.cols, data: elems}
}

func (a *Matrix) Add(b *Matrix) *Matrix {
	return a.zip(b, func(x, y Expr) Expr { return Add(x, y) })
}

func (a *Matrix) Sub(b *Matrix) *Matrix {
	return a.zip(b, Sub)
}

func (a *Matrix) zip(b *Matrix, fn func(x, y Expr) Expr) *Matrix {
	if a.rows != b.rows || a.cols != b.cols {
		panic(fmt.Errorf("%w: %dx%d against %dx%d", core.ErrShape, a.rows, a.cols, b.rows, b.cols))
	}
	elems := make([]Expr, len(a.data))
	for i := range a.data {
		elems[i] = fn(a.data[i], b.data[i])
	}
	return &Matrix{rows: a.rows, cols: a.cols, data: elems}
}

// Subs substitutes b into every element.
func (a *Matrix) Subs(b Bindings) *Matrix {
	return a.Map(func(e Expr) Expr { return e.Subs(b) })
}

// Round rounds every numeric element to precision decimals and leaves
// symbolic elements unchanged.
func (a *Matrix) Round(precision int) *Matrix {
	return a.Map(func(e Expr) Expr { return Round(e, precision) })
}

// Symbols lists the free symbols across all elements.
func (a *Matrix) Symbols() []string {
	set := make(map[string]struct{})
	for _, e := range a.data {
		e.symbols(set)
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// Numeric converts a fully substituted matrix into a gonum matrix.
func (a *Matrix) Numeric() (*mat.Dense, error) {
	d := mat.NewDense(a.rows, a.cols, nil)
	for i := 0; i < a.rows; i++ {
		for j := 0; j < a.cols; j++ {
			v, err := Value(a.data[i*a.cols+j])
			if err != nil {
				return nil, fmt.Errorf("element (%d, %d): %w", i, j, err)
			}
			d.Set(i, j, v)
		}
	}
	return d, nil
}

// Equal reports whether both matrices have the same shape and render every
// element identically.
func (a *Matrix) Equal(b *Matrix) bool {
	if a.rows != b.rows || a.cols != b.cols {
		return false
	}
	for i := range a.data {
		if a.data[i].String() != b.data[i].String() {
			return false
		}
	}
	return true
}

// Det expands the determinant along the row holding the most zeros.
func (a *Matrix) Det() Expr {
	if a.rows != a.cols {
		panic(fmt.Errorf("%w: determinant of %dx%d", core.ErrShape, a.rows, a.cols))
	}
	n := a.rows
	switch n {
	case 1:
		return a.data[0]
	case 2:
		return Sub(Mul(a.data[0], a.data[3]), Mul(a.data[1], a.data[2]))
	}

	row, zeros := 0, -1
	for i := 0; i < n; i++ {
		z := 0
		for j := 0; j < n; j++ {
			if isZero(a.data[i*n+j]) {
				z++
			}
		}
		if z > zeros {
			row, zeros = i, z
		}
	}

	terms := make([]Expr, 0, n)
	for j := 0; j < n; j++ {
		e := a.data[row*n+j]
		if isZero(e) {
			continue
		}
		terms = append(terms, Mul(cofactorSign(row, j), e, a.minor(row, j).Det()))
	}
	return Add(terms...)
}

// Inverse returns adj(a)/det(a). The result stays symbolic; a determinant
// that is already a numeric zero fails with core.ErrSingularMatrix, one
// that only becomes zero after substitution surfaces as
// core.ErrDivisionByZero on evaluation.
func (a *Matrix) Inverse() (*Matrix, error) {
	det := a.Det()
	if isZero(det) {
		return nil, core.ErrSingularMatrix
	}
	n := a.rows
	if n == 1 {
		return NewMatrix(1, 1, Div(Num(1), det)), nil
	}
	elems := make([]Expr, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			cof := Mul(cofactorSign(j, i), a.minor(j, i).Det())
			elems[i*n+j] = Div(cof, det)
		}
	}
	return NewMatrix(n, n, elems...), nil
}

func (a *Matrix) minor(row, col int) *Matrix {
	n := a.rows
	elems := make([]Expr, 0, (n-1)*(n-1))
	for i := 0; i < n; i++ {
		if i == row {
			continue
		}
		for j := 0; j < n; j++ {
			if j == col {
				continue
			}
			elems = append(elems, a.data[i*n+j])
		}
	}
	return NewMatrix(n-1, n-1, elems...)
}

func cofactorSign(i, j int) Expr {
	if (i+j)%2 == 0 {
		return Num(1)
	}
	return Num(-1)
}

func isZero(e Expr) bool {
	n, ok := e.(Num)
	return ok && n == 0
}

// Dot sums the element-wise products of two vectors of equal length.
func (a *Matrix) Dot(b *Matrix) Expr {
	if len(a.data) != len(b.data) || (a.cols != 1 && a.rows != 1) {
		panic(fmt.Errorf("%w: dot of %dx%d and %dx%d", core.ErrShape, a.rows, a.cols, b.rows, b.cols))
	}
	terms := make([]Expr, len(a.data))
	for i := range a.data {
		terms[i] = Mul(a.data[i], b.data[i])
	}
	return Add(terms...)
}

// Cross returns the 3×1 cross product of the first three elements of each
// vector, so homogeneous 4×1 directions can be passed directly.
func (a *Matrix) Cross(b *Matrix) *Matrix {
	if len(a.data) < 3 || len(b.data) < 3 {
		panic(fmt.Errorf("%w: cross needs three components", core.ErrShape))
	}
	u, v := a.data, b.data
	return ColumnVector(
		Sub(Mul(u[1], v[2]), Mul(u[2], v[1])),
		Sub(Mul(u[2], v[0]), Mul(u[0], v[2])),
		Sub(Mul(u[0], v[1]), Mul(u[1], v[0])),
	)
}

// Norm returns the Euclidean length of a vector.
func (a *Matrix) Norm() Expr {
	return Sqrt(a.Dot(a))
}

func (a *Matrix) String() string {
	var sb strings.Builder
	for i := 0; i < a.rows; i++ {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteByte('[')
		for j := 0; j < a.cols; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(a.data[i*a.cols+j].String())
		}
		sb.WriteByte(']')
	}
	return sb.String()
}

func (a *Matrix) LaTeX() string {
	var sb strings.Builder
	sb.WriteString(`\begin{bmatrix}`)
	for i := 0; i < a.rows; i++ {
		if i > 0 {
			sb.WriteString(` \\`)
		}
		for j := 0; j < a.cols; j++ {
			if j > 0 {
				sb.WriteString(" &")
			}
			sb.WriteByte(' ')
			sb.WriteString(a.data[i*a.cols+j].LaTeX())
		}
	}
	sb.WriteString(` \end{bmatrix}`)
	return sb.String()
}
