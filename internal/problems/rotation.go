package problems

import (
	"math"

	"github.com/san-kum/odestep/ode"
)

// Rotation is uniform rotation in the plane, the real form of the
// complex equation y' = iω·y with y = y0 + i·y1. The squared modulus
// y0² + y1² is conserved.
type Rotation struct {
	Omega float64
}

func NewRotation() *Rotation {
	return &Rotation{Omega: 2 * math.Pi}
}

func (r *Rotation) Name() string { return "rotation" }

func (r *Rotation) Dim() int { return 2 }

func (r *Rotation) Initial() ode.State[float64] {
	return ode.State[float64]{1, 0}
}

func (r *Rotation) Derive(x float64, y, dy ode.State[float64]) {
	dy[0] = -r.Omega * y[1]
	dy[1] = r.Omega * y[0]
}

func (r *Rotation) Exact(x float64) ode.State[float64] {
	return ode.State[float64]{
		math.Cos(r.Omega * x),
		math.Sin(r.Omega * x),
	}
}

func (r *Rotation) Energy(y ode.State[float64]) float64 {
	return y[0]*y[0] + y[1]*y[1]
}
