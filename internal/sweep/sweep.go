// Package sweep runs step-size refinement studies. The same problem is
// integrated at successively halved steps and the endpoint error against
// the analytic solution is recorded, which makes the observed order of a
// method directly measurable as log2 of consecutive error ratios.
package sweep

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/go-kit/log"

	"github.com/san-kum/odestep/internal/problems"
	"github.com/san-kum/odestep/internal/runner"
)

type Point struct {
	H     float64
	Steps int
	Error float64
}

type Study struct {
	Problem string
	Method  string
	Points  []Point
	// Orders[i] is the observed order between Points[i] and Points[i+1].
	Orders []float64
}

// Convergence integrates problem with method at levels step sizes,
// starting from h0 over baseSteps intervals and halving from there. All
// levels cover the same span and run concurrently.
func Convergence(ctx context.Context, logger log.Logger, problem, method string, h0 float64, baseSteps, levels, iterations int) (*Study, error) {
	if levels < 2 {
		return nil, fmt.Errorf("sweep: need at least 2 levels, got %d", levels)
	}
	p, err := problems.Lookup(problem)
	if err != nil {
		return nil, fmt.Errorf("sweep: %w", err)
	}
	if _, ok := p.(problems.Analytic); !ok {
		return nil, fmt.Errorf("sweep: problem %s has no analytic solution", problem)
	}

	hs := make([]float64, levels)
	steps := make([]int, levels)
	hs[0], steps[0] = h0, baseSteps
	for i := 1; i < levels; i++ {
		hs[i] = hs[i-1] / 2
		steps[i] = steps[i-1] * 2
	}

	results := make([]*runner.Result, levels)
	errs := make([]error, levels)

	var wg sync.WaitGroup
	for i := 0; i < levels; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			spec := runner.Spec{
				Problem:    problem,
				Method:     method,
				H:          hs[idx],
				Steps:      steps[idx],
				Iterations: iterations,
			}
			results[idx], errs[idx] = runner.Run(ctx, logger, spec)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	study := &Study{
		Problem: problem,
		Method:  method,
		Points:  make([]Point, levels),
	}
	for i, res := range results {
		study.Points[i] = Point{H: hs[i], Steps: steps[i], Error: res.Metrics["final_error"]}
	}

	study.Orders = make([]float64, levels-1)
	for i := 1; i < levels; i++ {
		prev, cur := study.Points[i-1].Error, study.Points[i].Error
		if prev <= 0 || cur <= 0 {
			study.Orders[i-1] = math.NaN()
			continue
		}
		study.Orders[i-1] = math.Log2(prev / cur)
	}
	return study, nil
}
