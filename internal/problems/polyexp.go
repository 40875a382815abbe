package problems

import (
	"math"

	"github.com/san-kum/odestep/ode"
)

// PolyExp is y' = y - x² + 1 with exact solution
// (y0 - 1)·eˣ + (1 + x)². Every integrator here should track it to many
// digits, which makes it the standard convergence benchmark.
type PolyExp struct {
	Y0 float64
}

func NewPolyExp() *PolyExp {
	return &PolyExp{Y0: 0.5}
}

func (p *PolyExp) Name() string { return "polyexp" }

func (p *PolyExp) Dim() int { return 1 }

func (p *PolyExp) Initial() ode.State[float64] {
	return ode.State[float64]{p.Y0}
}

func (p *PolyExp) Derive(x float64, y, dy ode.State[float64]) {
	dy[0] = y[0] - x*x + 1
}

func (p *PolyExp) Exact(x float64) ode.State[float64] {
	return ode.State[float64]{(p.Y0-1)*math.Exp(x) + (1+x)*(1+x)}
}
