package problems

import (
	"math"

	"github.com/san-kum/odestep/ode"
)

// Oscillator is the harmonic oscillator y0'' = -ω²·y0 in first order
// form. Its energy 0.5·(y1² + ω²·y0²) is conserved, which makes drift a
// direct readout of integrator quality.
type Oscillator struct {
	Omega float64
}

func NewOscillator() *Oscillator {
	return &Oscillator{Omega: 1}
}

func (o *Oscillator) Name() string { return "oscillator" }

func (o *Oscillator) Dim() int { return 2 }

func (o *Oscillator) Initial() ode.State[float64] {
	return ode.State[float64]{1, 0}
}

func (o *Oscillator) Derive(x float64, y, dy ode.State[float64]) {
	dy[0] = y[1]
	dy[1] = -o.Omega * o.Omega * y[0]
}

func (o *Oscillator) Exact(x float64) ode.State[float64] {
	return ode.State[float64]{
		math.Cos(o.Omega * x),
		-o.Omega * math.Sin(o.Omega*x),
	}
}

func (o *Oscillator) Energy(y ode.State[float64]) float64 {
	return 0.5 * (y[1]*y[1] + o.Omega*o.Omega*y[0]*y[0])
}
