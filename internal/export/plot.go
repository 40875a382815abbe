// Package export renders trajectories and studies to PNG files.
package export

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/odestep/internal/analysis"
	"github.com/san-kum/odestep/internal/runner"
	"github.com/san-kum/odestep/internal/sweep"
)

// Size is a plot size in inches.
type Size struct {
	Width  float64
	Height float64
}

func (s Size) lengths() (vg.Length, vg.Length) {
	w, h := s.Width, s.Height
	if w <= 0 {
		w = 8
	}
	if h <= 0 {
		h = 6
	}
	return vg.Length(w) * vg.Inch, vg.Length(h) * vg.Inch
}

// Trajectory plots every solution component against x.
func Trajectory(path string, res *runner.Result, size Size) error {
	if len(res.States) == 0 {
		return fmt.Errorf("export: empty trajectory")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (%s, h=%g)", res.Problem, res.Method, res.H)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	dim := len(res.States[0])
	args := make([]interface{}, 0, 2*dim)
	for j := 0; j < dim; j++ {
		pts := make(plotter.XYs, len(res.Xs))
		for i := range res.Xs {
			pts[i].X = res.Xs[i]
			pts[i].Y = res.States[i][j]
		}
		args = append(args, fmt.Sprintf("y%d", j), pts)
	}
	if err := plotutil.AddLines(p, args...); err != nil {
		return err
	}

	w, h := size.lengths()
	return p.Save(w, h, path)
}

// Convergence plots endpoint error against step size on log-log axes.
func Convergence(path string, study *sweep.Study, size Size) error {
	if len(study.Points) == 0 {
		return fmt.Errorf("export: empty study")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s convergence on %s", study.Method, study.Problem)
	p.X.Label.Text = "h"
	p.Y.Label.Text = "error"
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	pts := make(plotter.XYs, 0, len(study.Points))
	for _, sp := range study.Points {
		if sp.Error <= 0 {
			// Log axes cannot place exact zeros.
			continue
		}
		pts = append(pts, plotter.XY{X: sp.H, Y: sp.Error})
	}
	if len(pts) == 0 {
		return fmt.Errorf("export: no positive errors to plot")
	}
	if err := plotutil.AddLinePoints(p, study.Method, pts); err != nil {
		return err
	}

	w, h := size.lengths()
	return p.Save(w, h, path)
}

// SpectrumPlot plots a one-sided magnitude spectrum.
func SpectrumPlot(path string, s *analysis.Spectrum, size Size) error {
	if len(s.Freqs) == 0 {
		return fmt.Errorf("export: empty spectrum")
	}

	p := plot.New()
	p.Title.Text = "power spectrum"
	p.X.Label.Text = "frequency"
	p.Y.Label.Text = "magnitude"

	pts := make(plotter.XYs, len(s.Freqs))
	for i := range s.Freqs {
		pts[i].X = s.Freqs[i]
		pts[i].Y = s.Power[i]
	}
	if err := plotutil.AddLines(p, pts); err != nil {
		return err
	}

	w, h := size.lengths()
	return p.Save(w, h, path)
}
