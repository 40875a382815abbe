// Package problems provides the demonstration ODE systems the command
// line tool integrates.
//
// Each problem implements [ode.System] over float64, carries its own
// default initial condition, and most also implement [Analytic] so runs
// can be checked against a closed-form solution:
//
//   - [PolyExp]: y' = y - x² + 1, the classic method-comparison problem
//   - [Riccati]: y' = y², finite-time blow-up at x = 1
//   - [Decay]: y' = λy
//   - [Quinney]: four decoupled textbook equations integrated together
//   - [Oscillator]: harmonic oscillator with conserved energy
//   - [Rotation]: uniform rotation in the plane, the real form of y' = iωy
package problems

import (
	"fmt"
	"sort"

	"github.com/san-kum/odestep/ode"
)

// Problem is a demonstration system with a default initial condition.
type Problem interface {
	ode.System[float64]
	Name() string
	Dim() int
	Initial() ode.State[float64]
}

// Analytic is implemented by problems with a closed-form solution.
type Analytic interface {
	Exact(x float64) ode.State[float64]
}

// Conserved is implemented by problems with a conserved quantity.
type Conserved interface {
	Energy(y ode.State[float64]) float64
}

var catalog = map[string]func() Problem{
	"polyexp":    func() Problem { return NewPolyExp() },
	"riccati":    func() Problem { return NewRiccati() },
	"decay":      func() Problem { return NewDecay() },
	"quinney":    func() Problem { return NewQuinney() },
	"oscillator": func() Problem { return NewOscillator() },
	"rotation":   func() Problem { return NewRotation() },
}

// Lookup returns a fresh instance of the named problem.
func Lookup(name string) (Problem, error) {
	fn, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("unknown problem: %s", name)
	}
	return fn(), nil
}

// Names lists the catalog in stable order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
