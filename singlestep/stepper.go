// Package singlestep implements explicit fixed-step Runge-Kutta
// integrators of orders 2, 4 and 5. Each stepper preallocates its stage
// buffers for one system dimension at construction; Step performs no
// allocation.
package singlestep

import "github.com/san-kum/odestep/ode"

// Stepper advances a system by one step of fixed size.
type Stepper[T ode.Scalar] interface {
	// Order returns the classical convergence order of the scheme.
	Order() int

	// Dim returns the system dimension the stepper was built for.
	Dim() int

	// Step advances y at abscissa x by h, writing the result into
	// ynext. y and ynext must have length Dim and must not alias; y is
	// left untouched.
	Step(h, x float64, sys ode.System[T], y, ynext ode.State[T])
}

func checkDim[T ode.Scalar](n int, y, ynext ode.State[T]) {
	if len(y) != n || len(ynext) != n {
		panic(ode.ErrDimension)
	}
}
