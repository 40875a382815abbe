package problems

import "github.com/san-kum/odestep/ode"

// Riccati is y' = y² with exact solution y0/(1 - y0·x), which blows up
// in finite time. Useful for watching corrector iterations work against
// a genuinely nonlinear right-hand side.
type Riccati struct {
	Y0 float64
}

func NewRiccati() *Riccati {
	return &Riccati{Y0: 1}
}

func (r *Riccati) Name() string { return "riccati" }

func (r *Riccati) Dim() int { return 1 }

func (r *Riccati) Initial() ode.State[float64] {
	return ode.State[float64]{r.Y0}
}

func (r *Riccati) Derive(x float64, y, dy ode.State[float64]) {
	dy[0] = y[0] * y[0]
}

func (r *Riccati) Exact(x float64) ode.State[float64] {
	return ode.State[float64]{r.Y0 / (1 - r.Y0*x)}
}
