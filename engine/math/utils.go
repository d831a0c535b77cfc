package math

import (
	m "math"

	"golang.org/x/exp/constraints"
)

// RoundTo rounds `f` half away from zero to `precision` decimal places.
// Negative zero is folded into zero so rounded output never prints "-0.00".
func RoundTo[T constraints.Float](f T, precision int) T {
	ratio := m.Pow(10, float64(precision))
	r := m.Round(float64(f)*ratio) / ratio
	if r == 0 {
		return 0
	}
	return T(r)
}

// NearlyEqual compares two floats with an absolute tolerance.
func NearlyEqual[T constraints.Float](a, b, tolerance T) bool {
	return T(m.Abs(float64(a-b))) <= tolerance
}
