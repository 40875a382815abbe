package singlestep

import "github.com/san-kum/odestep/ode"

// RK2 is the second order Runge-Kutta scheme (Heun's method): a full
// Euler predictor followed by a trapezoidal average of the two slopes.
type RK2[T ode.Scalar] struct {
	n       int
	k1, k2  ode.State[T]
	scratch ode.State[T]
}

func NewRK2[T ode.Scalar](dim int) *RK2[T] {
	if dim < 1 {
		panic(ode.ErrDimension)
	}
	return &RK2[T]{
		n:       dim,
		k1:      make(ode.State[T], dim),
		k2:      make(ode.State[T], dim),
		scratch: make(ode.State[T], dim),
	}
}

func (r *RK2[T]) Order() int { return 2 }

func (r *RK2[T]) Dim() int { return r.n }

func (r *RK2[T]) Step(h, x float64, sys ode.System[T], y, ynext ode.State[T]) {
	checkDim(r.n, y, ynext)
	ch := ode.FromFloat[T](h)
	ch2 := ode.FromFloat[T](0.5 * h)

	sys.Derive(x, y, r.k1)
	for i := 0; i < r.n; i++ {
		r.scratch[i] = y[i] + ch*r.k1[i]
	}
	sys.Derive(x+h, r.scratch, r.k2)
	for i := 0; i < r.n; i++ {
		ynext[i] = y[i] + ch2*(r.k1[i]+r.k2[i])
	}
}
