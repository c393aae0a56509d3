package geometry

import (
	"gonum.org/v1/gonum/floats/scalar"
)

// Epsilon is the tolerance, in scene units, under which two coordinates are
// considered the same place. Every coincidence test in the editor goes
// through this package so the tolerance stays a single tunable constant.
const Epsilon = 0.001

// Coincident returns true if a and b are within Epsilon of each other.
func Coincident(a, b Point2D) bool {
	return a.Distance(b) < Epsilon
}

// NearZero returns true if v is within Epsilon of zero.
func NearZero(v float64) bool {
	return scalar.EqualWithinAbs(v, 0, Epsilon)
}

// EqualWithin returns true if a and b differ by less than Epsilon.
func EqualWithin(a, b float64) bool {
	return scalar.EqualWithinAbs(a, b, Epsilon)
}
