package problems

import (
	"math"
	"testing"

	"github.com/san-kum/odestep/ode"
)

// Exact solutions must satisfy their own differential equation: compare
// the analytic derivative (central difference) against Derive evaluated
// on the exact trajectory.
func TestExactSolutionsSatisfyEquations(t *testing.T) {
	const (
		eps = 1e-6
		tol = 1e-5
	)
	for _, name := range Names() {
		p, err := Lookup(name)
		if err != nil {
			t.Fatalf("lookup %s: %v", name, err)
		}
		a, ok := p.(Analytic)
		if !ok {
			continue
		}
		for _, x := range []float64{0.1, 0.3, 0.7} {
			y := a.Exact(x)
			dy := make(ode.State[float64], p.Dim())
			p.Derive(x, y, dy)

			plus := a.Exact(x + eps)
			minus := a.Exact(x - eps)
			for i := 0; i < p.Dim(); i++ {
				numeric := (plus[i] - minus[i]) / (2 * eps)
				if math.Abs(numeric-dy[i]) > tol*math.Max(1, math.Abs(dy[i])) {
					t.Errorf("%s[%d] at x=%.1f: derivative %.8f, exact slope %.8f",
						name, i, x, dy[i], numeric)
				}
			}
		}
	}
}

func TestExactMatchesInitial(t *testing.T) {
	for _, name := range Names() {
		p, err := Lookup(name)
		if err != nil {
			t.Fatalf("lookup %s: %v", name, err)
		}
		a, ok := p.(Analytic)
		if !ok {
			continue
		}
		y0 := p.Initial()
		e0 := a.Exact(0)
		for i := range y0 {
			if math.Abs(y0[i]-e0[i]) > 1e-12 {
				t.Errorf("%s[%d]: initial %.12f but exact(0) = %.12f", name, i, y0[i], e0[i])
			}
		}
	}
}

func TestEnergyConservedOnExactTrajectory(t *testing.T) {
	for _, name := range []string{"oscillator", "rotation"} {
		p, err := Lookup(name)
		if err != nil {
			t.Fatalf("lookup %s: %v", name, err)
		}
		c := p.(Conserved)
		a := p.(Analytic)

		e0 := c.Energy(p.Initial())
		for _, x := range []float64{0.25, 1, 3} {
			e := c.Energy(a.Exact(x))
			if math.Abs(e-e0) > 1e-9 {
				t.Errorf("%s energy drifted on exact trajectory: %.12f vs %.12f", name, e, e0)
			}
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("lorenz"); err == nil {
		t.Error("expected error for unknown problem")
	}
}
