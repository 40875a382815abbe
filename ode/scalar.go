package ode

import (
	"math"
	"math/cmplx"
)

// Scalar is the element type of a system: real or complex double
// precision. The constraint is exact (no approximation terms) so that
// conversion helpers can type-switch on the dynamic type.
type Scalar interface {
	float64 | complex128
}

// FromFloat converts a real coefficient to the scalar type T. Method
// coefficients and step sizes are always real; this is the single point
// where they enter complex arithmetic. The dispatch goes through a
// pointer and never boxes a value, so step routines may call it freely
// without allocating.
func FromFloat[T Scalar](v float64) T {
	var z T
	switch p := any(&z).(type) {
	case *float64:
		*p = v
	case *complex128:
		*p = complex(v, 0)
	}
	return z
}

// Abs returns the absolute value of v, the complex modulus for
// complex128 elements.
func Abs[T Scalar](v T) float64 {
	switch p := any(&v).(type) {
	case *float64:
		return math.Abs(*p)
	case *complex128:
		return cmplx.Abs(*p)
	}
	return 0
}

func isFinite[T Scalar](v T) bool {
	switch p := any(&v).(type) {
	case *float64:
		return !math.IsNaN(*p) && !math.IsInf(*p, 0)
	case *complex128:
		return !cmplx.IsNaN(*p) && !cmplx.IsInf(*p)
	}
	return false
}
