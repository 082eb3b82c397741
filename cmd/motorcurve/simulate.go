package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/motorcurve/internal/analysis"
	"github.com/san-kum/motorcurve/internal/config"
	"github.com/san-kum/motorcurve/internal/control"
	"github.com/san-kum/motorcurve/internal/curve"
	"github.com/san-kum/motorcurve/internal/integrators"
	"github.com/san-kum/motorcurve/internal/metrics"
	"github.com/san-kum/motorcurve/internal/motor"
	"github.com/san-kum/motorcurve/internal/sim"
	"github.com/san-kum/motorcurve/internal/storage"
	"github.com/san-kum/motorcurve/internal/viz"
)

func addSimulationFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator (euler, rk4)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	cmd.Flags().Float64Var(&humidity, "humidity", config.DefaultHumidity, "soil humidity (%)")
	cmd.Flags().BoolVar(&noProtection, "no-protection", false, "disable the thermal cutoff")
	cmd.Flags().StringToStringVar(&pumpParams, "pump", nil, "pump controller parameters, e.g. Kp=4,Max=4.5")
}

// newPump builds the pump controller with any --pump overrides applied.
func newPump() (*control.Proportional, error) {
	pump := control.DefaultPump()

	names := make([]string, 0, len(pumpParams))
	for name := range pumpParams {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		v, err := strconv.ParseFloat(pumpParams[name], 64)
		if err != nil {
			return nil, fmt.Errorf("pump %s: %w", name, err)
		}
		if err := pump.SetParam(name, v); err != nil {
			return nil, err
		}
	}
	return pump, nil
}

func formatParams(params map[string]float64) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%g", name, params[name])
	}
	return strings.Join(parts, " ")
}

// resolveSimulation applies, in order, the model argument, a preset and any
// flag set on the command line over the configured simulation.
func resolveSimulation(cmd *cobra.Command, cfg *config.Config, args []string) (config.SimulationConfig, error) {
	sc := cfg.Simulation
	if len(args) > 0 {
		sc.Model = args[0]
	}

	if preset != "" {
		p := config.GetPreset(sc.Model, preset)
		if p == nil {
			return sc, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(sc.Model))
		}
		sc = *p
	}

	flags := cmd.Flags()
	if flags.Changed("integrator") {
		sc.Integrator = integrator
	}
	if flags.Changed("dt") {
		sc.Dt = dt
	}
	if flags.Changed("humidity") {
		sc.Humidity = humidity
	}
	if flags.Changed("no-protection") {
		sc.Protection = !noProtection
	}
	if flags.Changed("time") {
		sc.Duration = duration
	}
	if flags.Changed("log-interval") {
		sc.LogInterval = logInterval
	}
	if flags.Changed("demo") {
		sc.Demo = demo
	}

	if err := sc.Validate(); err != nil {
		return sc, err
	}
	return sc, nil
}

type pumpRun struct {
	model  *motor.Motor
	sup    *motor.Supervisor
	sim    *sim.Simulator
	logger *storage.DataLogger
}

func newPumpRun(sc config.SimulationConfig) (*pumpRun, error) {
	params, err := motor.ByName(sc.Model)
	if err != nil {
		return nil, err
	}
	integ, err := integrators.ByName(sc.Integrator)
	if err != nil {
		return nil, err
	}

	var src motor.HumiditySource = motor.Manual(sc.Humidity)
	if sc.Demo {
		src = motor.DemoFor(sc.Model, 0)
	}
	pump, err := newPump()
	if err != nil {
		return nil, err
	}
	sup := motor.NewSupervisor(src)
	sup.Pump = pump
	sup.Guard.SetEnabled(sc.Protection)

	m := motor.New(params)
	s := sim.New(m, integ, sup)
	for _, mt := range metrics.ForMotor() {
		s.AddMetric(mt)
	}
	logger := storage.NewDataLogger(sc.LogInterval)
	s.AddObserver(logger)

	return &pumpRun{model: m, sup: sup, sim: s, logger: logger}, nil
}

func simConfig(sc config.SimulationConfig) sim.Config {
	return sim.Config{Dt: sc.Dt, Duration: sc.Duration, ValidateState: true}
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := resolveSimulation(cmd, cfg, args)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	if compare {
		return runComparison(ctx, out, st, sc)
	}

	run, err := newPumpRun(sc)
	if err != nil {
		return err
	}

	log.Debug().Str("model", sc.Model).Str("integrator", sc.Integrator).
		Float64("humidity", sc.Humidity).Bool("demo", sc.Demo).Msg("starting simulation")
	fmt.Fprintf(out, "running %s simulation...\n", sc.Model)
	start := time.Now()

	result, err := run.sim.Run(ctx, run.model.InitialState(), simConfig(sc))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(metadataFor(sc), result, run.logger)
	if err != nil {
		return err
	}
	log.Info().Str("run_id", runID).Int("log_rows", len(run.logger.Rows())).Msg("run saved")

	fmt.Fprintf(out, "completed in %v\n", elapsed)
	fmt.Fprintf(out, "run id: %s\n", runID)
	fmt.Fprintf(out, "steps: %d\n", result.StepsTaken)
	fmt.Fprintf(out, "pump: %s\n", formatParams(run.sup.Pump.GetParams()))
	printSummary(out, sc.Model, result)
	printGraphs(out, sc.Model, result)
	return nil
}

// runComparison runs the ideal and real models concurrently under the same
// settings and saves both runs.
func runComparison(ctx context.Context, out io.Writer, st *storage.Store, sc config.SimulationConfig) error {
	models := motor.Names()
	runs := make([]*pumpRun, len(models))
	ens := sim.NewEnsemble()

	for i, name := range models {
		msc := sc
		msc.Model = name
		run, err := newPumpRun(msc)
		if err != nil {
			return err
		}
		runs[i] = run
		ens.Add(sim.Job{Name: name, Sim: run.sim, X0: run.model.InitialState(), Cfg: simConfig(msc)})
	}

	results, err := ens.Run(ctx)
	if err != nil {
		return err
	}

	for i, name := range models {
		msc := sc
		msc.Model = name
		runID, err := st.Save(metadataFor(msc), results[i], runs[i].logger)
		if err != nil {
			return err
		}
		log.Info().Str("run_id", runID).Msg("run saved")

		fmt.Fprintf(out, "\n== %s (run %s) ==\n", name, runID)
		printSummary(out, name, results[i])
	}

	rpmSeries := make([][]float64, len(results))
	for i, r := range results {
		rpmSeries[i] = r.Column(motor.RPM)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, asciigraph.PlotMany(rpmSeries,
		asciigraph.Height(12),
		asciigraph.Width(70),
		asciigraph.LowerBound(0),
		asciigraph.SeriesColors(asciigraph.Default, asciigraph.Blue),
		asciigraph.SeriesLegends(models...),
		asciigraph.Caption("rpm: ideal vs real"),
	))
	return nil
}

func metadataFor(sc config.SimulationConfig) storage.RunMetadata {
	return storage.RunMetadata{
		Model:      sc.Model,
		Dt:         sc.Dt,
		Duration:   sc.Duration,
		Integrator: sc.Integrator,
		Humidity:   sc.Humidity,
		Protection: sc.Protection,
		Demo:       sc.Demo,
	}
}

// referenceCurve names the measured curve each model is calibrated against.
func referenceCurve(model string) string {
	if model == "real" {
		return "624"
	}
	return curve.TheoreticalName
}

func printSummary(out io.Writer, model string, result *sim.Result) {
	last := result.States[len(result.States)-1]
	fmt.Fprintf(out, "final rpm: %.2f  temp: %.2f °C\n", last[motor.RPM], last[motor.Temp])

	if n := len(result.Controls); n > 0 {
		volts := result.Controls[n-1][motor.Volts]
		factor := 1.0
		ref := referenceCurve(model)
		if ref != curve.TheoreticalName {
			if c, err := curve.ConfigurationByID(ref); err == nil {
				factor = c.Factor()
			}
		}
		fmt.Fprintf(out, "at %.2f V the %s curve predicts %.2f rpm\n", volts, ref, curve.TheoreticalGain*volts*factor)
	}

	resp := analysis.Step(result.Times, result.Column(motor.RPM), 0.02)
	fmt.Fprintf(out, "rpm rise time: %s  settling (2%%): %s  overshoot: %.1f%%\n",
		formatSeconds(resp.RiseTime), formatSeconds(resp.SettlingTime), resp.Overshoot)

	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(out, "\nmetrics:")
	for _, name := range names {
		fmt.Fprintf(out, "  %s: %.6f\n", name, result.Metrics[name])
	}
}

func formatSeconds(s float64) string {
	if math.IsNaN(s) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f s", s)
}

func printGraphs(out io.Writer, model string, result *sim.Result) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, asciigraph.Plot(result.Column(motor.RPM),
		asciigraph.Height(10),
		asciigraph.Width(70),
		asciigraph.LowerBound(0),
		asciigraph.Caption(model+" rpm"),
	))
	fmt.Fprintln(out)
	fmt.Fprintln(out, asciigraph.Plot(result.Column(motor.Temp),
		asciigraph.Height(6),
		asciigraph.Width(70),
		asciigraph.SeriesColors(asciigraph.Red),
		asciigraph.Caption(model+" temperature (°C)"),
	))

	if result.Metrics["cooling_fraction"] > 0 {
		fmt.Fprintln(out, "\nrpm (x) vs temperature (y), o start, x end:")
		fmt.Fprint(out, analysis.NewPhasePortrait(result, motor.RPM, motor.Temp).ASCII(70, 16))
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := resolveSimulation(cmd, cfg, args)
	if err != nil {
		return err
	}

	params, err := motor.ByName(sc.Model)
	if err != nil {
		return err
	}
	integ, err := integrators.ByName(sc.Integrator)
	if err != nil {
		return err
	}
	pump, err := newPump()
	if err != nil {
		return err
	}

	d := viz.NewDashboard(viz.DashboardOptions{
		Model:       sc.Model,
		Params:      params,
		Integrator:  integ,
		Pump:        pump,
		Dt:          sc.Dt,
		Humidity:    sc.Humidity,
		Protection:  sc.Protection,
		LogInterval: sc.LogInterval,
		ExportPath:  exportPath,
	})

	if !verbose {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	p := tea.NewProgram(d, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
