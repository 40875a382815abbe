package singlestep

import "github.com/san-kum/odestep/ode"

// RK5 is a six-stage fifth order Runge-Kutta scheme with final weights
// (7, 0, 32, 12, 32, 7)/90.
type RK5[T ode.Scalar] struct {
	n                      int
	k1, k2, k3, k4, k5, k6 ode.State[T]
	scratch                ode.State[T]
}

func NewRK5[T ode.Scalar](dim int) *RK5[T] {
	if dim < 1 {
		panic(ode.ErrDimension)
	}
	return &RK5[T]{
		n:       dim,
		k1:      make(ode.State[T], dim),
		k2:      make(ode.State[T], dim),
		k3:      make(ode.State[T], dim),
		k4:      make(ode.State[T], dim),
		k5:      make(ode.State[T], dim),
		k6:      make(ode.State[T], dim),
		scratch: make(ode.State[T], dim),
	}
}

func (r *RK5[T]) Order() int { return 5 }

func (r *RK5[T]) Dim() int { return r.n }

func (r *RK5[T]) Step(h, x float64, sys ode.System[T], y, ynext ode.State[T]) {
	checkDim(r.n, y, ynext)
	ch4 := ode.FromFloat[T](h / 4)
	ch8 := ode.FromFloat[T](h / 8)
	ch2 := ode.FromFloat[T](h / 2)
	ch16 := ode.FromFloat[T](h / 16)
	ch7 := ode.FromFloat[T](h / 7)
	ch90 := ode.FromFloat[T](h / 90)

	sys.Derive(x, y, r.k1)
	for i := 0; i < r.n; i++ {
		r.scratch[i] = y[i] + ch4*r.k1[i]
	}
	sys.Derive(x+0.25*h, r.scratch, r.k2)
	for i := 0; i < r.n; i++ {
		r.scratch[i] = y[i] + ch8*(r.k1[i]+r.k2[i])
	}
	sys.Derive(x+0.25*h, r.scratch, r.k3)
	for i := 0; i < r.n; i++ {
		r.scratch[i] = y[i] + ch2*r.k3[i]
	}
	sys.Derive(x+0.5*h, r.scratch, r.k4)
	for i := 0; i < r.n; i++ {
		r.scratch[i] = y[i] + ch16*(3*r.k1[i]-6*r.k2[i]+6*r.k3[i]+9*r.k4[i])
	}
	sys.Derive(x+0.75*h, r.scratch, r.k5)
	for i := 0; i < r.n; i++ {
		r.scratch[i] = y[i] + ch7*(-3*r.k1[i]+8*r.k2[i]+6*r.k3[i]-12*r.k4[i]+8*r.k5[i])
	}
	sys.Derive(x+h, r.scratch, r.k6)
	for i := 0; i < r.n; i++ {
		ynext[i] = y[i] + ch90*(7*r.k1[i]+32*r.k3[i]+12*r.k4[i]+32*r.k5[i]+7*r.k6[i])
	}
}
