package ode

import "math"

// State holds the dependent variables of a system at one abscissa.
type State[T Scalar] []T

func (s State[T]) Clone() State[T] {
	c := make(State[T], len(s))
	copy(c, s)
	return c
}

// IsValid reports whether every component is finite.
func (s State[T]) IsValid() bool {
	for _, v := range s {
		if !isFinite(v) {
			return false
		}
	}
	return true
}

// Norm returns the Euclidean norm, using the complex modulus for
// complex elements.
func (s State[T]) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		a := Abs(v)
		sum += a * a
	}
	return math.Sqrt(sum)
}

// System is a first order ODE system dy/dx = f(x, y).
type System[T Scalar] interface {
	// Derive evaluates the derivative at abscissa x and state y into dy.
	// len(dy) equals the system dimension. Implementations must not
	// retain y or dy between calls.
	Derive(x float64, y State[T], dy State[T])
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc[T Scalar] func(x float64, y State[T], dy State[T])

func (f SystemFunc[T]) Derive(x float64, y State[T], dy State[T]) { f(x, y, dy) }
