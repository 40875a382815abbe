package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/odestep/internal/analysis"
	"github.com/san-kum/odestep/internal/runner"
	"github.com/san-kum/odestep/internal/sweep"
	"github.com/san-kum/odestep/ode"
)

func mustExist(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected output file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output file is empty")
	}
}

func TestTrajectoryPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traj.png")

	res := &runner.Result{
		Problem: "oscillator",
		Method:  "rk4",
		H:       0.1,
		Xs:      []float64{0, 0.1, 0.2, 0.3},
		States: []ode.State[float64]{
			{1.0, 0.0},
			{0.95, -0.3},
			{0.81, -0.58},
			{0.59, -0.8},
		},
	}
	if err := Trajectory(path, res, Size{}); err != nil {
		t.Fatalf("trajectory plot failed: %v", err)
	}
	mustExist(t, path)
}

func TestTrajectoryEmpty(t *testing.T) {
	err := Trajectory(filepath.Join(t.TempDir(), "x.png"), &runner.Result{}, Size{})
	if err == nil {
		t.Error("expected error for empty trajectory")
	}
}

func TestConvergencePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conv.png")

	study := &sweep.Study{
		Problem: "polyexp",
		Method:  "rk4",
		Points: []sweep.Point{
			{H: 0.1, Steps: 10, Error: 1e-6},
			{H: 0.05, Steps: 20, Error: 6.2e-8},
			{H: 0.025, Steps: 40, Error: 3.9e-9},
		},
		Orders: []float64{4.01, 3.99},
	}
	if err := Convergence(path, study, Size{Width: 6, Height: 4}); err != nil {
		t.Fatalf("convergence plot failed: %v", err)
	}
	mustExist(t, path)
}

func TestSpectrumPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.png")

	s := &analysis.Spectrum{
		Freqs: []float64{0, 0.5, 1.0, 1.5},
		Power: []float64{0.01, 0.2, 5.0, 0.3},
	}
	if err := SpectrumPlot(path, s, Size{}); err != nil {
		t.Fatalf("spectrum plot failed: %v", err)
	}
	mustExist(t, path)
}
