package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/odestep/internal/runner"
	"github.com/san-kum/odestep/ode"
)

func sampleRun() (runner.Spec, *runner.Result) {
	spec := runner.Spec{Problem: "oscillator", Method: "rk4", H: 0.01, Steps: 2}
	result := &runner.Result{
		Problem: "oscillator",
		Method:  "rk4",
		H:       0.01,
		Xs:      []float64{0.0, 0.01, 0.02},
		States: []ode.State[float64]{
			{1.0, 0.0},
			{0.9995, -0.0314},
			{0.998, -0.0628},
		},
		Metrics: map[string]float64{"energy_drift": 1.5e-9},
	}
	return spec, result
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	spec, result := sampleRun()
	runID, err := st.Save(spec, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Problem != "oscillator" {
		t.Errorf("expected problem 'oscillator', got '%s'", meta.Problem)
	}
	if meta.Method != "rk4" {
		t.Errorf("expected method 'rk4', got '%s'", meta.Method)
	}
	if meta.Metrics["energy_drift"] != 1.5e-9 {
		t.Errorf("expected energy_drift 1.5e-9, got %g", meta.Metrics["energy_drift"])
	}

	states, xs, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}
	if len(states) != 3 || len(xs) != 3 {
		t.Fatalf("expected 3 rows, got %d states, %d xs", len(states), len(xs))
	}
	// Values must round-trip through the CSV exactly.
	if states[1][1] != -0.0314 {
		t.Errorf("state did not round-trip: got %v", states[1][1])
	}
	if xs[2] != 0.02 {
		t.Errorf("abscissa did not round-trip: got %v", xs[2])
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	spec, result := sampleRun()
	if _, err := st.Save(spec, result); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	spec, result := sampleRun()
	runID, err := st.Save(spec, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "states.csv")); os.IsNotExist(err) {
		t.Error("states.csv not created")
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")

	spec, result := sampleRun()
	if err := ExportJSON(path, spec, result); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var exported ExportData
	if err := json.Unmarshal(data, &exported); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if exported.Problem != "oscillator" {
		t.Errorf("expected problem 'oscillator', got '%s'", exported.Problem)
	}
	if len(exported.Xs) != 3 || len(exported.States) != 3 {
		t.Errorf("expected 3 points, got %d xs, %d states", len(exported.Xs), len(exported.States))
	}
	if exported.States[2][0] != 0.998 {
		t.Errorf("state did not survive export: got %v", exported.States[2][0])
	}
}
