package runner

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/odestep/internal/problems"
	"github.com/san-kum/odestep/ode"
	"github.com/san-kum/odestep/singlestep"
)

func TestRunRecordsWholeTrajectory(t *testing.T) {
	res, err := Run(context.Background(), nil, Spec{
		Problem: "polyexp", Method: "rk4", H: 0.01, Steps: 100,
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(res.Xs) != 101 || len(res.States) != 101 {
		t.Fatalf("expected 101 points, got %d", len(res.Xs))
	}
	if res.Xs[0] != 0 {
		t.Errorf("trajectory should start at x0, got %f", res.Xs[0])
	}
	if math.Abs(res.Xs[100]-1.0) > 1e-12 {
		t.Errorf("trajectory should end at 1.0, got %f", res.Xs[100])
	}
	if res.Metrics["final_error"] > 1e-9 {
		t.Errorf("final error too large: %g", res.Metrics["final_error"])
	}
}

func TestRunMultistepIncludesSeededPoints(t *testing.T) {
	res, err := Run(context.Background(), nil, Spec{
		Problem: "polyexp", Method: "adams4", H: 0.1, Steps: 10, Iterations: 1,
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(res.Xs) != 11 {
		t.Fatalf("expected 11 points, got %d", len(res.Xs))
	}
	for i := 1; i < len(res.Xs); i++ {
		if res.Xs[i] <= res.Xs[i-1] {
			t.Fatalf("abscissas not increasing at %d: %v", i, res.Xs[:i+1])
		}
	}

	// The seeded points come from the bootstrap and must already track
	// the exact solution.
	p, _ := problems.Lookup("polyexp")
	exact := p.(problems.Analytic)
	for i := 0; i < 4; i++ {
		want := exact.Exact(res.Xs[i])[0]
		if math.Abs(res.States[i][0]-want) > 1e-7 {
			t.Errorf("seeded point %d: got %.10f, expected %.10f", i, res.States[i][0], want)
		}
	}
}

func TestSessionMatchesDirectLoop(t *testing.T) {
	sess, err := NewSession(Spec{Problem: "oscillator", Method: "rk4", H: 0.01, Steps: 50})
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	for sess.Remaining() > 0 {
		sess.Step()
	}

	p, _ := problems.Lookup("oscillator")
	rk := singlestep.NewRK4[float64](2)
	y := p.Initial().Clone()
	ynext := make(ode.State[float64], 2)
	for i := 0; i < 50; i++ {
		rk.Step(0.01, float64(i)*0.01, p, y, ynext)
		y, ynext = ynext, y
	}

	got := sess.Y()
	for i := range y {
		if got[i] != y[i] {
			t.Errorf("component %d: session %.17g, direct %.17g", i, got[i], y[i])
		}
	}
}

func TestRunDivergenceDetected(t *testing.T) {
	res, err := Run(context.Background(), nil, Spec{
		Problem: "riccati", Method: "rk4", H: 0.2, Steps: 30,
	})
	if err == nil {
		t.Fatal("expected divergence error integrating through the blow-up")
	}
	if !errors.Is(err, ode.ErrDiverged) {
		t.Errorf("expected ErrDiverged, got %v", err)
	}
	if res == nil || len(res.Xs) == 0 {
		t.Error("expected partial trajectory up to the divergence")
	}
}

func TestRunContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, nil, Spec{Problem: "polyexp", Method: "rk4", H: 0.01, Steps: 10})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSpecValidation(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
	}{
		{"zero h", Spec{Problem: "polyexp", Method: "rk4", Steps: 10}},
		{"negative steps", Spec{Problem: "polyexp", Method: "rk4", H: 0.1, Steps: -1}},
		{"negative iterations", Spec{Problem: "polyexp", Method: "adams4", H: 0.1, Steps: 10, Iterations: -2}},
		{"unknown problem", Spec{Problem: "lorenz", Method: "rk4", H: 0.1, Steps: 10}},
		{"unknown method", Spec{Problem: "polyexp", Method: "dopri5", H: 0.1, Steps: 10}},
		{"too few steps", Spec{Problem: "polyexp", Method: "adams6", H: 0.1, Steps: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSession(tt.spec); err == nil {
				t.Error("expected error")
			}
		})
	}
}
