package multistep

import "github.com/san-kum/odestep/ode"

// Method pairs an explicit predictor table with an implicit corrector
// table of the same step count, forming a predictor-corrector scheme.
type Method struct {
	Name      string
	Steps     int
	Predictor Coefficients
	Corrector Coefficients
}

// Adams4 is the 4-step Adams-Bashforth predictor with the
// Adams-Moulton corrector, both of order 4.
var Adams4 = Method{
	Name:  "adams4",
	Steps: 4,
	Predictor: Coefficients{
		A: []float64{1, -1, 0, 0, 0},
		B: []float64{0, 55.0 / 24, -59.0 / 24, 37.0 / 24, -9.0 / 24},
	},
	Corrector: Coefficients{
		A: []float64{1, -1, 0, 0, 0},
		B: []float64{9.0 / 24, 19.0 / 24, -5.0 / 24, 1.0 / 24, 0},
	},
}

// Adams6 is the 6-step Adams-Bashforth-Moulton pair of order 6.
var Adams6 = Method{
	Name:  "adams6",
	Steps: 6,
	Predictor: Coefficients{
		A: []float64{1, -1, 0, 0, 0, 0, 0},
		B: []float64{
			0, 4277.0 / 1440, -7923.0 / 1440, 9982.0 / 1440,
			-7298.0 / 1440, 2877.0 / 1440, -475.0 / 1440,
		},
	},
	Corrector: Coefficients{
		A: []float64{1, -1, 0, 0, 0, 0, 0},
		B: []float64{
			475.0 / 1440, 1427.0 / 1440, -798.0 / 1440, 482.0 / 1440,
			-173.0 / 1440, 27.0 / 1440, 0,
		},
	},
}

// PredictCorrect advances one step with mth: one explicit pass with the
// predictor table seeds ynext, then iters corrector passes refine it.
// iters = 0 leaves the pure prediction. The workspace order must equal
// mth.Steps.
func (w *Workspace[T]) PredictCorrect(h, x float64, sys ode.System[T], mth Method, iters int, ynext ode.State[T]) {
	w.Step(h, x, sys, mth.Predictor, 0, ynext)
	if iters <= 0 {
		return
	}
	w.Step(h, x, sys, mth.Corrector, iters, ynext)
}

var methods = map[string]Method{
	Adams4.Name: Adams4,
	Adams6.Name: Adams6,
}

// Lookup returns the named preset method.
func Lookup(name string) (Method, bool) {
	m, ok := methods[name]
	return m, ok
}

// Names lists the preset methods.
func Names() []string {
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	return names
}
