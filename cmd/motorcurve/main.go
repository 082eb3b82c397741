package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/motorcurve/internal/chart"
	"github.com/san-kum/motorcurve/internal/config"
	"github.com/san-kum/motorcurve/internal/curve"
	"github.com/san-kum/motorcurve/internal/motor"
	"github.com/san-kum/motorcurve/internal/sim"
	"github.com/san-kum/motorcurve/internal/storage"
	"github.com/san-kum/motorcurve/internal/viewer"
	"github.com/san-kum/motorcurve/internal/viz"
)

const windowTitle = "Comparativa de Configuraciones de Motor"

var (
	configFile string
	dataDir    string
	verbose    bool

	output string
	dpi    int
	noShow bool

	previewWidth  int
	previewHeight int

	integrator   string
	dt           float64
	duration     float64
	humidity     float64
	logInterval  float64
	noProtection bool
	pumpParams   map[string]string
	demo         bool
	preset       string
	compare      bool

	exportPath string
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("motorcurve failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "motorcurve",
		Short:         "motor configuration vs theoretical RPM comparison",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
		Args: cobra.NoArgs,
		RunE: renderChart,
	}
	addRenderFlags(rootCmd)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render the comparison chart and open the viewer",
		Args:  cobra.NoArgs,
		RunE:  renderChart,
	}
	addRenderFlags(renderCmd)

	tableCmd := &cobra.Command{
		Use:   "table",
		Short: "RPM at 5 V and deviation from the theoretical model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), viz.EndpointTable(curve.Compute()))
			return nil
		},
	}

	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "plot the curves in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), viz.CurvePreview(curve.Compute(), previewWidth, previewHeight))
			return nil
		},
	}
	previewCmd.Flags().IntVar(&previewWidth, "width", 70, "graph width")
	previewCmd.Flags().IntVar(&previewHeight, "height", 20, "graph height")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [path]",
		Short: "export the sampled curves to CSV (- for stdout)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCurves,
	}

	configCmd := &cobra.Command{
		Use:   "config <path>",
		Short: "write the effective configuration to a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE:  saveConfig,
	}

	simulateCmd := &cobra.Command{
		Use:   "simulate [ideal|real]",
		Short: "run the humidity-driven pump simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulate,
	}
	addSimulationFlags(simulateCmd)
	simulateCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration (s)")
	simulateCmd.Flags().Float64Var(&logInterval, "log-interval", config.DefaultLogInterval, "data logger interval (s)")
	simulateCmd.Flags().BoolVar(&demo, "demo", false, "run the 30 s irrigation ramp")
	simulateCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	simulateCmd.Flags().BoolVar(&compare, "compare", false, "run the ideal and real models side by side")

	liveCmd := &cobra.Command{
		Use:   "live [ideal|real]",
		Short: "interactive pump dashboard",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSimulationFlags(liveCmd)
	liveCmd.Flags().StringVar(&exportPath, "export", "motor_log.csv", "data log export path")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list simulation runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "replay a saved run as terminal plots",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	logCmd := &cobra.Command{
		Use:   "log [run_id]",
		Short: "print a run's data log",
		Args:  cobra.ExactArgs(1),
		RunE:  printLog,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id] [path]",
		Short: "export a saved run and its trajectory as JSON (- for stdout)",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  exportRunJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			models := motor.Names()
			if len(args) > 0 {
				models = args
			}
			for _, model := range models {
				presets := config.ListPresets(model)
				if len(presets) == 0 {
					fmt.Fprintf(out, "no presets for model: %s\n", model)
					continue
				}
				fmt.Fprintf(out, "presets for %s:\n", model)
				for _, name := range presets {
					p := config.GetPreset(model, name)
					fmt.Fprintf(out, "  %-10s humidity=%3.0f%% protection=%-5t demo=%-5t time=%gs\n",
						name, p.Humidity, p.Protection, p.Demo, p.Duration)
				}
			}
			return nil
		},
	}

	rootCmd.AddCommand(renderCmd, tableCmd, previewCmd, exportCSVCmd, configCmd,
		simulateCmd, liveCmd, listCmd, showCmd, logCmd, exportJSONCmd, presetsCmd)
	return rootCmd
}

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&output, "output", "o", config.DefaultOutput, "output image (.png, .svg, .pdf, .jpg, .tiff)")
	cmd.Flags().IntVar(&dpi, "dpi", config.DefaultDPI, "raster resolution")
	cmd.Flags().BoolVar(&noShow, "no-show", false, "save the image without opening the viewer")
}

// loadConfig layers defaults, the config file, MOTORCURVE_* variables and
// the persistent flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("data") {
		cfg.DataDir = dataDir
	}
	return cfg, nil
}

func renderChart(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("output") {
		cfg.Chart.Output = output
	}
	if cmd.Flags().Changed("dpi") {
		cfg.Chart.DPI = dpi
	}
	if noShow {
		cfg.Chart.Show = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	cmp := curve.Compute()
	fig := chart.MotorComparison(cmp)
	fig.Width = vg.Length(cfg.Chart.Width) * vg.Inch
	fig.Height = vg.Length(cfg.Chart.Height) * vg.Inch
	fig.DPI = cfg.Chart.DPI

	if err := chart.Save(fig, cfg.Chart.Output); err != nil {
		return err
	}

	ev := log.Info().Str("path", cfg.Chart.Output)
	if fi, err := os.Stat(cfg.Chart.Output); err == nil {
		ev = ev.Int64("bytes", fi.Size())
	}
	ev.Msg("chart saved")

	if !cfg.Chart.Show {
		return nil
	}
	switch chart.FormatFromPath(cfg.Chart.Output) {
	case "png", "jpg", "jpeg":
	default:
		log.Warn().Str("path", cfg.Chart.Output).Msg("viewer only displays png and jpeg images")
		return nil
	}

	log.Debug().Msg("opening viewer")
	if err := viewer.Show(cfg.Chart.Output, windowTitle); err != nil {
		if errors.Is(err, viewer.ErrNoDisplay) {
			return fmt.Errorf("%w (use --no-show to only save the image)", err)
		}
		return err
	}
	return nil
}

func exportCurves(cmd *cobra.Command, args []string) error {
	cmp := curve.Compute()

	if len(args) == 0 || args[0] == "-" {
		return storage.WriteCurvesCSV(cmd.OutOrStdout(), cmp)
	}

	if err := storage.SaveCurvesCSV(args[0], cmp); err != nil {
		return fmt.Errorf("export %s: %w", args[0], err)
	}
	log.Info().Str("path", args[0]).Int("rows", len(cmp.Domain)).Msg("curves exported")
	return nil
}

func saveConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	log.Info().Str("path", args[0]).Msg("config written")
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	runs, err := storage.New(cfg.DataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tINTEGRATOR\tHUMIDITY\tDEMO\tTIMESTAMP")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f%%\t%t\t%s\n",
			run.ID, run.Model, run.Integrator, run.Humidity, run.Demo,
			run.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func printLog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	f, err := os.Open(storage.New(cfg.DataDir).LogPath(args[0]))
	if err != nil {
		return fmt.Errorf("run %s: %w", args[0], err)
	}
	defer f.Close()

	_, err = io.Copy(cmd.OutOrStdout(), f)
	return err
}

// loadRun reads a saved run's metadata and trajectory.
func loadRun(cmd *cobra.Command, runID string) (*storage.RunMetadata, *sim.Result, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	st := storage.New(cfg.DataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, fmt.Errorf("run %s: %w", runID, err)
	}
	result, err := st.LoadStates(runID)
	if err != nil {
		return nil, nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(result.States) == 0 {
		return nil, nil, fmt.Errorf("run %s: no states recorded", runID)
	}
	result.Metrics = meta.Metrics
	return meta, result, nil
}

func showRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "model: %s  integrator: %s  humidity: %.0f%%  protection: %t  demo: %t\n",
		meta.Model, meta.Integrator, meta.Humidity, meta.Protection, meta.Demo)
	fmt.Fprintf(out, "samples: %d\n", len(result.States))
	printSummary(out, meta.Model, result)
	printGraphs(out, meta.Model, result)

	if len(result.Controls) > 1 {
		volts := make([]float64, len(result.Controls))
		for i, u := range result.Controls {
			volts[i] = u[motor.Volts]
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(volts,
			asciigraph.Height(6),
			asciigraph.Width(70),
			asciigraph.LowerBound(0),
			asciigraph.SeriesColors(asciigraph.Green),
			asciigraph.Caption(meta.Model+" pump voltage (V)"),
		))
	}
	return nil
}

func exportRunJSON(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}

	if len(args) < 2 || args[1] == "-" {
		return storage.ExportJSON(cmd.OutOrStdout(), *meta, result)
	}
	if err := storage.SaveExportJSON(args[1], *meta, result); err != nil {
		return fmt.Errorf("export %s: %w", args[1], err)
	}
	log.Info().Str("path", args[1]).Int("steps", result.StepsTaken).Msg("run exported")
	return nil
}
