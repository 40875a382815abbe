package multistep

import "github.com/san-kum/odestep/ode"

// Coefficients defines one linear multistep formula. A has the state
// coefficients with A[0] = 1 for the point being computed, B the
// derivative coefficients. Both have length order+1. B[0] multiplies
// the derivative at the unknown point; B[0] = 0 makes the formula
// explicit. Coefficients are always real, also for complex systems.
type Coefficients struct {
	A []float64
	B []float64
}

// Step solves one step of the multistep formula against the history
// window, writing the approximation of y at x+h into ynext. x is the
// abscissa of history chunk 0.
//
// With iters = 0 the explicit formula is evaluated and B[0] is ignored.
// With iters > 0 the implicit formula is iterated that many times as a
// fixed-point corrector, starting from the prediction already in ynext:
// each pass evaluates the derivative at (x+h, ynext) into the spare
// derivative chunk and recomputes ynext. Convergence is not monitored;
// the caller chooses the iteration count.
//
// The history window is not modified. ynext must not alias workspace
// memory.
func (w *Workspace[T]) Step(h, x float64, sys ode.System[T], coef Coefficients, iters int, ynext ode.State[T]) {
	m, n := w.m, w.n
	if len(ynext) != n {
		panic(ode.ErrDimension)
	}
	if len(coef.A) != m+1 || len(coef.B) != m+1 {
		panic(ode.ErrCoefficients)
	}
	for k := 0; k <= m; k++ {
		w.ca[k] = ode.FromFloat[T](coef.A[k])
		w.cb[k] = ode.FromFloat[T](h * coef.B[k])
	}

	if iters <= 0 {
		for i := 0; i < n; i++ {
			var sum T
			for k := 1; k <= m; k++ {
				off := i + (k-1)*n
				sum += w.cb[k]*w.derivs[off] - w.ca[k]*w.states[off]
			}
			ynext[i] = sum
		}
		return
	}

	// Implicit formula as corrector; ynext carries the prediction in
	// and the refined value between passes.
	fnext := ode.State[T](w.derivs[m*n : (m+1)*n])
	for ; iters > 0; iters-- {
		sys.Derive(x+h, ynext, fnext)
		for i := 0; i < n; i++ {
			sum := w.cb[0] * fnext[i]
			for k := 1; k <= m; k++ {
				off := i + (k-1)*n
				sum += w.cb[k]*w.derivs[off] - w.ca[k]*w.states[off]
			}
			ynext[i] = sum
		}
	}
}
