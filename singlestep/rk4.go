package singlestep

import "github.com/san-kum/odestep/ode"

// RK4 is the classical fourth order Runge-Kutta scheme.
type RK4[T ode.Scalar] struct {
	n              int
	k1, k2, k3, k4 ode.State[T]
	scratch        ode.State[T]
}

func NewRK4[T ode.Scalar](dim int) *RK4[T] {
	if dim < 1 {
		panic(ode.ErrDimension)
	}
	return &RK4[T]{
		n:       dim,
		k1:      make(ode.State[T], dim),
		k2:      make(ode.State[T], dim),
		k3:      make(ode.State[T], dim),
		k4:      make(ode.State[T], dim),
		scratch: make(ode.State[T], dim),
	}
}

func (r *RK4[T]) Order() int { return 4 }

func (r *RK4[T]) Dim() int { return r.n }

func (r *RK4[T]) Step(h, x float64, sys ode.System[T], y, ynext ode.State[T]) {
	checkDim(r.n, y, ynext)
	ch := ode.FromFloat[T](h)
	ch2 := ode.FromFloat[T](0.5 * h)
	ch6 := ode.FromFloat[T](h / 6)

	sys.Derive(x, y, r.k1)
	for i := 0; i < r.n; i++ {
		r.scratch[i] = y[i] + ch2*r.k1[i]
	}
	sys.Derive(x+0.5*h, r.scratch, r.k2)
	for i := 0; i < r.n; i++ {
		r.scratch[i] = y[i] + ch2*r.k2[i]
	}
	sys.Derive(x+0.5*h, r.scratch, r.k3)
	for i := 0; i < r.n; i++ {
		r.scratch[i] = y[i] + ch*r.k3[i]
	}
	sys.Derive(x+h, r.scratch, r.k4)
	for i := 0; i < r.n; i++ {
		ynext[i] = y[i] + ch6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}
}
