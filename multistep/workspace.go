package multistep

import (
	"github.com/san-kum/odestep/ode"
	"github.com/san-kum/odestep/singlestep"
)

// Workspace holds the sliding history window of an m-step method for
// one system, together with the scratch buffers the engine needs. All
// memory is allocated at construction; Step and Advance allocate
// nothing.
//
// The history is stored newest to oldest: chunk 0 is the most recent
// grid point, chunk m-1 the oldest. The derivative buffer carries one
// extra chunk, used by the corrector for the derivative at the point
// being computed.
type Workspace[T ode.Scalar] struct {
	m, n   int
	states []T // m chunks of n
	derivs []T // m+1 chunks of n, chunk m is corrector scratch
	ca, cb []T // converted coefficients, length m+1
}

// NewWorkspace returns a workspace for an order-step method on an
// n-dimensional system. It panics if order or dim is not positive.
func NewWorkspace[T ode.Scalar](order, dim int) *Workspace[T] {
	if order < 1 {
		panic(ode.ErrOrder)
	}
	if dim < 1 {
		panic(ode.ErrDimension)
	}
	return &Workspace[T]{
		m:      order,
		n:      dim,
		states: make([]T, order*dim),
		derivs: make([]T, (order+1)*dim),
		ca:     make([]T, order+1),
		cb:     make([]T, order+1),
	}
}

// Order returns the number of previous grid points the workspace holds.
func (w *Workspace[T]) Order() int { return w.m }

// Dim returns the system dimension.
func (w *Workspace[T]) Dim() int { return w.n }

// StateChunk returns the state at history position j (0 = newest). The
// returned slice aliases the workspace; it is invalidated by Advance.
func (w *Workspace[T]) StateChunk(j int) ode.State[T] {
	if j < 0 || j >= w.m {
		panic(ode.ErrOrder)
	}
	return ode.State[T](w.states[j*w.n : (j+1)*w.n])
}

// DerivChunk returns the derivative at history position j (0 = newest).
// The returned slice aliases the workspace; it is invalidated by
// Advance.
func (w *Workspace[T]) DerivChunk(j int) ode.State[T] {
	if j < 0 || j >= w.m {
		panic(ode.ErrOrder)
	}
	return ode.State[T](w.derivs[j*w.n : (j+1)*w.n])
}

// SetChunk copies y and dy into history position j. It is the manual
// alternative to Bootstrap for callers that know previous points
// exactly.
func (w *Workspace[T]) SetChunk(j int, y, dy ode.State[T]) {
	if j < 0 || j >= w.m {
		panic(ode.ErrOrder)
	}
	if len(y) != w.n || len(dy) != w.n {
		panic(ode.ErrDimension)
	}
	copy(w.states[j*w.n:(j+1)*w.n], y)
	copy(w.derivs[j*w.n:(j+1)*w.n], dy)
}

// Advance slides the history window after a step has been accepted:
// every chunk moves one position older, the accepted state ynext
// becomes chunk 0, and its derivative is evaluated at xnext into the
// newest derivative chunk. Call exactly once per accepted step.
func (w *Workspace[T]) Advance(xnext float64, sys ode.System[T], ynext ode.State[T]) {
	if len(ynext) != w.n {
		panic(ode.ErrDimension)
	}
	n := w.n
	copy(w.states[n:w.m*n], w.states[:(w.m-1)*n])
	copy(w.derivs[n:w.m*n], w.derivs[:(w.m-1)*n])
	copy(w.states[:n], ynext)
	sys.Derive(xnext, ynext, ode.State[T](w.derivs[:n]))
}

// Bootstrap fills the history window from the single initial condition
// y0 at x0, taking exactly m-1 steps of rk with step size h. The oldest
// chunk receives y0 itself; after the call, chunk j holds the point at
// x0 + (m-1-j)·h and the window is ready for stepping from abscissa
// x0 + (m-1)·h.
//
// The accuracy of the whole integration is bounded by the accuracy of
// these first m-1 steps, so rk should have order at least that of the
// multistep method.
func (w *Workspace[T]) Bootstrap(h, x0 float64, sys ode.System[T], rk singlestep.Stepper[T], y0 ode.State[T]) {
	if len(y0) != w.n || rk.Dim() != w.n {
		panic(ode.ErrDimension)
	}
	work := y0.Clone()
	for i := 0; i < w.m; i++ {
		x := x0 + float64(i)*h
		j := w.m - 1 - i
		chunk := ode.State[T](w.states[j*w.n : (j+1)*w.n])
		copy(chunk, work)
		sys.Derive(x, chunk, ode.State[T](w.derivs[j*w.n:(j+1)*w.n]))
		if i < w.m-1 {
			rk.Step(h, x, sys, chunk, work)
		}
	}
}
