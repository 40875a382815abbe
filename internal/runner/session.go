package runner

import (
	"fmt"

	"github.com/san-kum/odestep/internal/problems"
	"github.com/san-kum/odestep/multistep"
	"github.com/san-kum/odestep/ode"
	"github.com/san-kum/odestep/singlestep"
)

// Session is one integration in progress. It owns the workspace and the
// current state; each Step call advances the grid by h. The live view
// lets the TUI drive an integration incrementally, while Run consumes
// sessions whole.
type Session struct {
	spec    Spec
	problem problems.Problem

	x     float64
	y     ode.State[float64]
	ynext ode.State[float64]
	taken int

	rk  singlestep.Stepper[float64]
	ws  *multistep.Workspace[float64]
	mth multistep.Method

	seededX []float64
	seeded  []ode.State[float64]
}

// NewSession validates spec, builds the stepper or workspace, and for
// multistep methods bootstraps the history window. The points known
// after construction (the initial condition, plus the bootstrapped grid
// points for multistep methods) are available via Seeded.
func NewSession(spec Spec) (*Session, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	p, err := problems.Lookup(spec.Problem)
	if err != nil {
		return nil, err
	}
	n := p.Dim()

	s := &Session{
		spec:    spec,
		problem: p,
		ynext:   make(ode.State[float64], n),
	}

	switch spec.Method {
	case "rk2":
		s.rk = singlestep.NewRK2[float64](n)
	case "rk4":
		s.rk = singlestep.NewRK4[float64](n)
	case "rk5":
		s.rk = singlestep.NewRK5[float64](n)
	default:
		mth, ok := multistep.Lookup(spec.Method)
		if !ok {
			return nil, fmt.Errorf("unknown method: %s", spec.Method)
		}
		if spec.Steps < mth.Steps {
			return nil, fmt.Errorf("%s needs at least %d steps, got %d", mth.Name, mth.Steps, spec.Steps)
		}
		s.mth = mth
		s.ws = multistep.NewWorkspace[float64](mth.Steps, n)
	}

	y0 := p.Initial()
	if s.ws != nil {
		// Seed the history window with a bootstrap stepper of
		// comparable order.
		boot := bootstrapStepper(s.mth.Steps, n)
		s.ws.Bootstrap(spec.H, spec.X0, p, boot, y0)

		m := s.mth.Steps
		for j := m - 1; j >= 0; j-- {
			s.seededX = append(s.seededX, spec.X0+float64(m-1-j)*spec.H)
			s.seeded = append(s.seeded, s.ws.StateChunk(j).Clone())
		}
		s.x = spec.X0 + float64(m-1)*spec.H
		s.y = s.ws.StateChunk(0).Clone()
	} else {
		s.seededX = []float64{spec.X0}
		s.seeded = []ode.State[float64]{y0.Clone()}
		s.x = spec.X0
		s.y = y0.Clone()
	}
	return s, nil
}

func bootstrapStepper(order, dim int) singlestep.Stepper[float64] {
	if order >= 5 {
		return singlestep.NewRK5[float64](dim)
	}
	return singlestep.NewRK4[float64](dim)
}

// Problem returns the system being integrated.
func (s *Session) Problem() problems.Problem { return s.problem }

// X returns the abscissa of the current state.
func (s *Session) X() float64 { return s.x }

// Y returns the current state. The slice is reused across steps; clone
// it to keep a snapshot.
func (s *Session) Y() ode.State[float64] { return s.y }

// Seeded returns the grid points known after construction, oldest
// first. For single-step methods that is just the initial condition.
func (s *Session) Seeded() ([]float64, []ode.State[float64]) {
	return s.seededX, s.seeded
}

// Remaining returns how many engine steps are left before the run
// reaches X0 + Steps·h.
func (s *Session) Remaining() int {
	return s.spec.Steps - (len(s.seededX) - 1) - s.taken
}

// Step advances the integration by one grid interval. For multistep
// methods this is one predictor-corrector solve followed by exactly one
// history advance.
func (s *Session) Step() {
	if s.ws != nil {
		s.ws.PredictCorrect(s.spec.H, s.x, s.problem, s.mth, s.spec.Iterations, s.ynext)
		s.ws.Advance(s.x+s.spec.H, s.problem, s.ynext)
	} else {
		s.rk.Step(s.spec.H, s.x, s.problem, s.y, s.ynext)
	}
	s.y, s.ynext = s.ynext, s.y
	s.x += s.spec.H
	s.taken++
}
