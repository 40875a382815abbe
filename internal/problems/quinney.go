package problems

import (
	"math"

	"github.com/san-kum/odestep/ode"
)

// Quinney bundles four decoupled textbook equations into one system:
//
//	y0' = c1·y0 + x         y0(0) = 1
//	y1' = c2·y1 / (1 + x²)  y1(0) = 1
//	y2' = x·y2²             y2(0) = 1
//	y3' = c3·y3             y3(0) = 1
//
// The coefficients are receiver state, so the one derivative callback
// serves any parameter choice. Each component has a closed form, so the
// whole vector can be checked at once. Exact requires c1 nonzero.
type Quinney struct {
	Coef1 float64
	Coef2 float64
	Coef3 float64
}

func NewQuinney() *Quinney {
	return &Quinney{Coef1: 1, Coef2: 1, Coef3: -1}
}

func (q *Quinney) Name() string { return "quinney" }

func (q *Quinney) Dim() int { return 4 }

func (q *Quinney) Initial() ode.State[float64] {
	return ode.State[float64]{1, 1, 1, 1}
}

func (q *Quinney) Derive(x float64, y, dy ode.State[float64]) {
	dy[0] = q.Coef1*y[0] + x
	dy[1] = q.Coef2 * y[1] / (1 + x*x)
	dy[2] = x * y[2] * y[2]
	dy[3] = q.Coef3 * y[3]
}

func (q *Quinney) Exact(x float64) ode.State[float64] {
	c1 := q.Coef1
	return ode.State[float64]{
		(1+1/(c1*c1))*math.Exp(c1*x) - x/c1 - 1/(c1*c1),
		math.Exp(q.Coef2 * math.Atan(x)),
		2 / (2 - x*x),
		math.Exp(q.Coef3 * x),
	}
}
