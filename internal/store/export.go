package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/odestep/internal/runner"
)

type ExportData struct {
	Problem    string             `json:"problem"`
	Method     string             `json:"method"`
	Step       float64            `json:"step"`
	Steps      int                `json:"steps"`
	Iterations int                `json:"iterations"`
	Xs         []float64          `json:"xs"`
	States     [][]float64        `json:"states"`
	Metrics    map[string]float64 `json:"metrics"`
}

func ExportJSON(path string, spec runner.Spec, result *runner.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeJSON(file, spec, result)
}

func ExportJSONStdout(spec runner.Spec, result *runner.Result) error {
	return writeJSON(os.Stdout, spec, result)
}

func writeJSON(w io.Writer, spec runner.Spec, result *runner.Result) error {
	data := ExportData{
		Problem:    spec.Problem,
		Method:     spec.Method,
		Step:       spec.H,
		Steps:      spec.Steps,
		Iterations: spec.Iterations,
		Xs:         result.Xs,
		States:     make([][]float64, len(result.States)),
		Metrics:    result.Metrics,
	}
	for i, s := range result.States {
		data.States[i] = s
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
