package problems

import (
	"math"

	"github.com/san-kum/odestep/ode"
)

// Decay is y' = λy, exponential decay for negative λ.
type Decay struct {
	Lambda float64
	Y0     float64
}

func NewDecay() *Decay {
	return &Decay{Lambda: -1, Y0: 1}
}

func (d *Decay) Name() string { return "decay" }

func (d *Decay) Dim() int { return 1 }

func (d *Decay) Initial() ode.State[float64] {
	return ode.State[float64]{d.Y0}
}

func (d *Decay) Derive(x float64, y, dy ode.State[float64]) {
	dy[0] = d.Lambda * y[0]
}

func (d *Decay) Exact(x float64) ode.State[float64] {
	return ode.State[float64]{d.Y0 * math.Exp(d.Lambda*x)}
}
