package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	klog "github.com/go-kit/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/odestep/internal/analysis"
	"github.com/san-kum/odestep/internal/config"
	"github.com/san-kum/odestep/internal/export"
	"github.com/san-kum/odestep/internal/problems"
	"github.com/san-kum/odestep/internal/runner"
	"github.com/san-kum/odestep/internal/store"
	"github.com/san-kum/odestep/internal/sweep"
	"github.com/san-kum/odestep/internal/tui"
	"github.com/san-kum/odestep/multistep"
	"github.com/san-kum/odestep/ode"
)

var (
	dataDir    string
	step       float64
	steps      int
	iterations int
	method     string
	configFile string
	preset     string
	// plot and spectrum options
	component int
	pngOut    string
	// convergence options
	levels int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "odestep",
		Short: "fixed-step ode integration lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the interactive view when no command given
			p := tea.NewProgram(tui.NewApp())
			_, err := p.Run()
			return err
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (defaults to settings)")

	runCmd := &cobra.Command{
		Use:   "run [problem]",
		Short: "integrate a problem and store the trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  runProblem,
	}
	runCmd.Flags().Float64Var(&step, "h", 0.01, "step size")
	runCmd.Flags().IntVar(&steps, "steps", 1000, "grid intervals to integrate")
	runCmd.Flags().IntVar(&iterations, "iterations", 1, "corrector iterations (multistep)")
	runCmd.Flags().StringVar(&method, "method", "rk4", "integration method")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	problemsCmd := &cobra.Command{
		Use:   "problems",
		Short: "list problems and methods",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("problems:")
			for _, name := range problems.Names() {
				fmt.Printf("  %s\n", name)
			}
			fmt.Println("\nmethods:")
			for _, name := range runner.Methods() {
				fmt.Printf("  %s\n", name)
			}
		},
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&pngOut, "png", "", "write a PNG instead of drawing in the terminal")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [problem] [method1] [method2] ...",
		Short: "compare methods on the same problem",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareMethods,
	}
	compareCmd.Flags().Float64Var(&step, "h", 0.01, "step size")
	compareCmd.Flags().IntVar(&steps, "steps", 1000, "grid intervals to integrate")
	compareCmd.Flags().IntVar(&iterations, "iterations", 1, "corrector iterations (multistep)")

	convergenceCmd := &cobra.Command{
		Use:   "convergence [problem] [method]",
		Short: "measure observed order by halving the step",
		Args:  cobra.ExactArgs(2),
		RunE:  runConvergence,
	}
	convergenceCmd.Flags().Float64Var(&step, "h", 0.1, "coarsest step size")
	convergenceCmd.Flags().IntVar(&steps, "steps", 10, "grid intervals at the coarsest step")
	convergenceCmd.Flags().IntVar(&levels, "levels", 4, "number of halvings")
	convergenceCmd.Flags().IntVar(&iterations, "iterations", 1, "corrector iterations (multistep)")
	convergenceCmd.Flags().StringVar(&pngOut, "png", "", "also write a log-log error plot")

	quinneyCmd := &cobra.Command{
		Use:   "quinney",
		Short: "show the implicit corrector converging on y' = y²",
		RunE:  runQuinney,
	}

	spectrumCmd := &cobra.Command{
		Use:   "spectrum [run_id]",
		Short: "frequency analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  spectrumRun,
	}
	spectrumCmd.Flags().IntVar(&component, "component", 0, "state component to analyze")
	spectrumCmd.Flags().StringVar(&pngOut, "png", "", "also write the spectrum as a PNG")

	benchCmd := &cobra.Command{
		Use:   "bench [problem]",
		Short: "benchmark every method on a problem",
		Args:  cobra.ExactArgs(1),
		RunE:  benchProblem,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive live integration view",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(tui.NewApp())
			_, err := p.Run()
			return err
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [problem]",
		Short: "list available presets for a problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for problem: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, problemsCmd, plotCmd, exportCmd, exportCSVCmd,
		exportJSONCmd, compareCmd, convergenceCmd, quinneyCmd, spectrumCmd, benchCmd,
		liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func openStore() (*store.Store, error) {
	dir := dataDir
	if dir == "" {
		s, err := config.LoadSettings()
		if err != nil {
			return nil, err
		}
		dir = s.OutputDir
	}
	st := store.New(dir)
	if err := st.Init(); err != nil {
		return nil, err
	}
	return st, nil
}

func newLogger() klog.Logger {
	s, err := config.LoadSettings()
	if err != nil || !s.LogRuns {
		return nil
	}
	logger := klog.NewLogfmtLogger(klog.NewSyncWriter(os.Stderr))
	return klog.With(logger, "ts", klog.DefaultTimestampUTC)
}

func plotSize() export.Size {
	s, err := config.LoadSettings()
	if err != nil {
		return export.Size{}
	}
	return export.Size{Width: s.PlotWidth, Height: s.PlotHeight}
}

func runProblem(cmd *cobra.Command, args []string) error {
	problem := args[0]

	// Load preset if specified
	if preset != "" {
		cfg := config.GetPreset(problem, preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(problem))
		}
		step = cfg.Step
		steps = cfg.Steps
		method = cfg.Method
		iterations = cfg.Iterations
	}

	// Load config file if specified (CLI flags override config)
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if !cmd.Flags().Changed("h") {
			step = cfg.Step
		}
		if !cmd.Flags().Changed("steps") {
			steps = cfg.Steps
		}
		if !cmd.Flags().Changed("method") {
			method = cfg.Method
		}
		if !cmd.Flags().Changed("iterations") {
			iterations = cfg.Iterations
		}
	}

	st, err := openStore()
	if err != nil {
		return err
	}

	spec := runner.Spec{
		Problem:    problem,
		Method:     method,
		H:          step,
		Steps:      steps,
		Iterations: iterations,
	}

	fmt.Printf("integrating %s with %s...\n", problem, method)
	result, err := runner.Run(context.Background(), newLogger(), spec)
	if err != nil {
		return err
	}

	runID, err := st.Save(spec, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("points: %d\n", len(result.Xs))
	if len(result.Metrics) > 0 {
		fmt.Println("\nmetrics:")
		for name, val := range result.Metrics {
			fmt.Printf("  %s: %.6e\n", name, val)
		}
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPROBLEM\tMETHOD\tTIME\tH\tSTEPS\tITER")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%g\t%d\t%d\n",
			run.ID,
			run.Problem,
			run.Method,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Step,
			run.Steps,
			run.Iterations,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st, err := openStore()
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	states, xs, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	if pngOut != "" {
		result := loadedResult(meta, xs, states)
		if err := export.Trajectory(pngOut, result, plotSize()); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", pngOut)
		return nil
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("problem: %s (%s)\n", meta.Problem, meta.Method)
	fmt.Printf("samples: %d\n\n", len(states))

	numVars := len(states[0])
	if numVars > 4 {
		numVars = 4
	}

	for varIdx := 0; varIdx < numVars; varIdx++ {
		data := make([]float64, len(states))
		for i := range states {
			if varIdx < len(states[i]) {
				data[i] = states[i][varIdx]
			}
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("y%d vs x", varIdx)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func loadedResult(meta *store.RunMetadata, xs []float64, states [][]float64) *runner.Result {
	result := &runner.Result{
		Problem: meta.Problem,
		Method:  meta.Method,
		H:       meta.Step,
		Xs:      xs,
		States:  make([]ode.State[float64], len(states)),
		Metrics: meta.Metrics,
	}
	for i, s := range states {
		result.States[i] = s
	}
	return result
}

func exportRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	states, xs, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"x"}
	for i := range states[0] {
		header = append(header, fmt.Sprintf("y%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range states {
		row := []string{strconv.FormatFloat(xs[i], 'g', -1, 64)}
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, xs, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	spec := runner.Spec{
		Problem:    meta.Problem,
		Method:     meta.Method,
		H:          meta.Step,
		Steps:      meta.Steps,
		Iterations: meta.Iterations,
	}
	return store.ExportJSONStdout(spec, loadedResult(meta, xs, states))
}

func compareMethods(cmd *cobra.Command, args []string) error {
	problem := args[0]
	methods := args[1:]

	fmt.Printf("comparing methods on %s (h=%g, steps=%d)\n\n", problem, step, steps)
	fmt.Printf("%-10s  %14s  %12s  %12s  %10s\n", "method", "final_y0", "final_error", "energy_drift", "time_ms")
	fmt.Println(strings.Repeat("-", 66))

	for _, name := range methods {
		spec := runner.Spec{
			Problem:    problem,
			Method:     name,
			H:          step,
			Steps:      steps,
			Iterations: iterations,
		}
		result, err := runner.Run(context.Background(), nil, spec)
		if err != nil {
			fmt.Printf("%-10s  error: %v\n", name, err)
			continue
		}

		_, yEnd := result.Final()
		finalErr := "-"
		if v, ok := result.Metrics["final_error"]; ok {
			finalErr = fmt.Sprintf("%.3e", v)
		}
		drift := "-"
		if v, ok := result.Metrics["energy_drift"]; ok {
			drift = fmt.Sprintf("%.3e", v)
		}
		fmt.Printf("%-10s  %14.8f  %12s  %12s  %10.2f\n",
			name, yEnd[0], finalErr, drift, float64(result.Elapsed.Microseconds())/1000)
	}

	return nil
}

func runConvergence(cmd *cobra.Command, args []string) error {
	problem, mth := args[0], args[1]

	study, err := sweep.Convergence(context.Background(), nil, problem, mth, step, steps, levels, iterations)
	if err != nil {
		return err
	}

	fmt.Printf("%s on %s\n\n", mth, problem)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "H\tSTEPS\tERROR\tORDER")
	for i, p := range study.Points {
		order := "-"
		if i > 0 {
			order = fmt.Sprintf("%.3f", study.Orders[i-1])
		}
		fmt.Fprintf(w, "%g\t%d\t%.3e\t%s\n", p.H, p.Steps, p.Error, order)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if pngOut != "" {
		if err := export.Convergence(pngOut, study, plotSize()); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", pngOut)
	}
	return nil
}

// runQuinney steps y' = y² once from x = 0.1 with the trapezoidal
// corrector and shows the fixed-point iteration closing in on the
// implicit solution as the iteration count grows.
func runQuinney(cmd *cobra.Command, args []string) error {
	const h = 0.1
	trapezoid := multistep.Coefficients{A: []float64{1, -1}, B: []float64{0.5, 0.5}}

	sys := ode.SystemFunc[float64](func(x float64, y, dy ode.State[float64]) {
		dy[0] = y[0] * y[0]
	})

	y1 := 1 / (1 - h) // exact 1/(1-x) at x = 0.1
	c := y1 + 0.5*h*y1*y1
	fixed := (1 - math.Sqrt(1-2*h*c)) / h

	fmt.Printf("y' = y², y(0.1) = %.8f, h = %g\n", y1, h)
	fmt.Printf("implicit trapezoidal value at x = 0.2: %.10f\n\n", fixed)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ITERATIONS\tY(0.2)\tDISTANCE")

	ynext := make(ode.State[float64], 1)
	for iters := 0; iters <= 8; iters++ {
		ws := multistep.NewWorkspace[float64](1, 1)
		ws.SetChunk(0, ode.State[float64]{y1}, ode.State[float64]{y1 * y1})
		ws.Step(h, 0.1, sys, trapezoid, iters, ynext)
		fmt.Fprintf(w, "%d\t%.10f\t%.3e\n", iters, ynext[0], math.Abs(ynext[0]-fixed))
	}

	return w.Flush()
}

func spectrumRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st, err := openStore()
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 || len(states[0]) == 0 {
		return fmt.Errorf("no data")
	}
	if component < 0 || component >= len(states[0]) {
		return fmt.Errorf("component %d out of range (dim %d)", component, len(states[0]))
	}

	data := make([]float64, len(states))
	for i := range states {
		data[i] = states[i][component]
	}

	s, err := analysis.PowerSpectrum(data, meta.Step)
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("problem: %s (%s)\n\n", meta.Problem, meta.Method)

	plotData := s.Power
	if len(plotData) > 8 {
		plotData = plotData[:len(plotData)/4]
	}
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (y%d)", component)),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := s.DominantFrequency()
	fmt.Printf("dominant frequency: %.4f cycles per unit x\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.4f\n", 1/freq)
	}

	if pngOut != "" {
		if err := export.SpectrumPlot(pngOut, s, plotSize()); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", pngOut)
	}
	return nil
}

func benchProblem(cmd *cobra.Command, args []string) error {
	problem := args[0]

	fmt.Printf("benchmarking %s\n\n", problem)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tH\tSTEPS\tTIME\tSTEPS/SEC")

	for _, name := range runner.Methods() {
		for _, h := range []float64{0.001, 0.01} {
			n := int(10.0 / h)
			spec := runner.Spec{
				Problem:    problem,
				Method:     name,
				H:          h,
				Steps:      n,
				Iterations: 1,
			}
			result, err := runner.Run(context.Background(), nil, spec)
			if err != nil {
				fmt.Fprintf(w, "%s\t%g\t%d\terror: %v\t\n", name, h, n, err)
				continue
			}
			stepsPerSec := float64(n) / result.Elapsed.Seconds()
			fmt.Fprintf(w, "%s\t%g\t%d\t%v\t%.0f\n", name, h, n, result.Elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}
