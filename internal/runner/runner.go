// Package runner wires problems, steppers and workspaces into complete
// integration runs with recorded trajectories.
package runner

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-kit/log"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/odestep/internal/problems"
	"github.com/san-kum/odestep/ode"
)

// Spec describes one integration run. Steps counts grid intervals from
// X0, so the trajectory ends at X0 + Steps·h regardless of method; for
// multistep methods the first order-1 intervals are covered by the
// bootstrap.
type Spec struct {
	Problem    string
	Method     string
	H          float64
	Steps      int
	Iterations int
	X0         float64
}

func (s Spec) Validate() error {
	if s.H <= 0 {
		return fmt.Errorf("h must be positive, got %g", s.H)
	}
	if s.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", s.Steps)
	}
	if s.Iterations < 0 {
		return fmt.Errorf("iterations must not be negative, got %d", s.Iterations)
	}
	return nil
}

// Methods lists the supported method names.
func Methods() []string {
	return []string{"rk2", "rk4", "rk5", "adams4", "adams6"}
}

// Result holds a recorded trajectory and summary metrics.
type Result struct {
	Problem string
	Method  string
	H       float64
	Xs      []float64
	States  []ode.State[float64]
	Metrics map[string]float64
	Elapsed time.Duration
}

// Final returns the last recorded point.
func (r *Result) Final() (float64, ode.State[float64]) {
	last := len(r.Xs) - 1
	return r.Xs[last], r.States[last]
}

// Run executes spec to completion, recording every grid point. The
// trajectory includes the seeded points, so output files carry the full
// curve. Integration stops early with an error wrapping ode.ErrDiverged
// if the state leaves the range of finite values.
func Run(ctx context.Context, logger log.Logger, spec Spec) (*Result, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	sess, err := NewSession(spec)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	logger.Log("msg", "run started", "problem", spec.Problem, "method", spec.Method,
		"h", spec.H, "steps", spec.Steps, "iterations", spec.Iterations)

	res := &Result{
		Problem: spec.Problem,
		Method:  spec.Method,
		H:       spec.H,
		Xs:      make([]float64, 0, spec.Steps+1),
		States:  make([]ode.State[float64], 0, spec.Steps+1),
		Metrics: make(map[string]float64),
	}

	xs, seeded := sess.Seeded()
	for i := range seeded {
		res.Xs = append(res.Xs, xs[i])
		res.States = append(res.States, seeded[i].Clone())
	}

	var initialEnergy float64
	conserved, hasEnergy := sess.Problem().(problems.Conserved)
	if hasEnergy {
		initialEnergy = conserved.Energy(seeded[0])
	}

	for sess.Remaining() > 0 {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}
		sess.Step()
		if !sess.Y().IsValid() {
			res.Elapsed = time.Since(start)
			return res, fmt.Errorf("at x=%.4f: %w", sess.X(), ode.ErrDiverged)
		}
		res.Xs = append(res.Xs, sess.X())
		res.States = append(res.States, sess.Y().Clone())
	}

	xEnd, yEnd := res.Final()
	if a, ok := sess.Problem().(problems.Analytic); ok {
		res.Metrics["final_error"] = floats.Distance(yEnd, a.Exact(xEnd), math.Inf(1))
	}
	if hasEnergy {
		finalEnergy := conserved.Energy(yEnd)
		if initialEnergy != 0 {
			res.Metrics["energy_drift"] = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
		}
	}

	res.Elapsed = time.Since(start)
	logger.Log("msg", "run complete", "x_end", xEnd, "points", len(res.Xs),
		"elapsed", res.Elapsed)
	return res, nil
}
