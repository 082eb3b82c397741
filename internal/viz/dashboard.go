package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog/log"
	"github.com/san-kum/motorcurve/internal/control"
	"github.com/san-kum/motorcurve/internal/motor"
	"github.com/san-kum/motorcurve/internal/sim"
	"github.com/san-kum/motorcurve/internal/storage"
)

const (
	historyCapacity = 300
	humidityStep    = 5.0
	gainStep        = 0.5
	barWidth        = 30
)

type TickMsg time.Time

type DashboardOptions struct {
	Model       string
	Params      motor.Params
	Integrator  sim.Integrator
	Pump        *control.Proportional // nil for control.DefaultPump
	Dt          float64
	Humidity    float64
	Protection  bool
	LogInterval float64
	ExportPath  string
}

// Dashboard steps the pump loop once per tick of Dt wall-clock seconds.
type Dashboard struct {
	opts    DashboardOptions
	motor   *motor.Motor
	sup     *motor.Supervisor
	logger  *storage.DataLogger
	sim     *sim.Simulator
	x       sim.State
	t       float64
	steps   int
	running bool

	manual  float64
	demo    *motor.Ramp
	tel     motor.Telemetry
	status  string
	failure error

	rpmHistory  []float64
	tempHistory []float64
}

func NewDashboard(opts DashboardOptions) Dashboard {
	m := motor.New(opts.Params)
	sup := motor.NewSupervisor(motor.Manual(opts.Humidity))
	if opts.Pump != nil {
		sup.Pump = opts.Pump
	}
	sup.Guard.SetEnabled(opts.Protection)
	logger := storage.NewDataLogger(opts.LogInterval)

	s := sim.New(m, opts.Integrator, sup)
	s.AddObserver(logger)

	return Dashboard{
		opts:        opts,
		motor:       m,
		sup:         sup,
		logger:      logger,
		sim:         s,
		x:           m.InitialState(),
		running:     true,
		manual:      opts.Humidity,
		rpmHistory:  make([]float64, 0, historyCapacity),
		tempHistory: make([]float64, 0, historyCapacity),
	}
}

func (d Dashboard) tick() tea.Cmd {
	return tea.Tick(time.Duration(d.opts.Dt*float64(time.Second)), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (d Dashboard) Init() tea.Cmd {
	return d.tick()
}

func (d Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return d, tea.Quit
		case " ":
			d.running = !d.running
		case "up", "k":
			d.setHumidity(d.manual + humidityStep)
		case "down", "j":
			d.setHumidity(d.manual - humidityStep)
		case "p":
			d.sup.Guard.SetEnabled(!d.sup.Guard.Enabled)
			d.status = "protection " + onOff(d.sup.Guard.Enabled)
		case "d":
			d.demo = motor.DemoFor(d.opts.Model, d.t)
			d.sup.Source = d.demo
			d.status = "demo started"
		case "+", "=":
			d.tuneGain(gainStep)
		case "-":
			d.tuneGain(-gainStep)
		case "r":
			d.reset()
		case "e":
			d.export()
		}
	case TickMsg:
		if d.running && d.failure == nil {
			d.step()
		}
		return d, d.tick()
	}
	return d, nil
}

func (d *Dashboard) setHumidity(h float64) {
	if h < 0 {
		h = 0
	}
	if h > 100 {
		h = 100
	}
	d.manual = h
	d.demo = nil
	d.sup.Source = motor.Manual(h)
}

func (d *Dashboard) tuneGain(delta float64) {
	kp := d.sup.Pump.GetParams()["Kp"] + delta
	if kp < 0 {
		kp = 0
	}
	if err := d.sup.Pump.SetParam("Kp", kp); err != nil {
		d.status = err.Error()
		return
	}
	d.status = fmt.Sprintf("pump gain %.1f", kp)
}

func (d *Dashboard) step() {
	_, next := d.sim.Step(d.x, d.t, d.opts.Dt)
	d.tel = d.sup.Last()
	if !next.IsValid() {
		d.failure = sim.SimError{Step: d.steps, Time: d.t, Err: sim.ErrInvalidState}
		log.Error().Err(d.failure).Msg("dashboard stopped")
		return
	}

	d.x = next
	d.steps++
	d.t = float64(d.steps) * d.opts.Dt

	if d.demo != nil && d.demo.Done(d.t) {
		d.setHumidity(100)
		d.status = "demo finished"
	}

	d.rpmHistory = appendCapped(d.rpmHistory, d.x[motor.RPM])
	d.tempHistory = appendCapped(d.tempHistory, d.x[motor.Temp])
}

func appendCapped(xs []float64, v float64) []float64 {
	xs = append(xs, v)
	if len(xs) > historyCapacity {
		xs = xs[1:]
	}
	return xs
}

func (d *Dashboard) reset() {
	d.x = d.motor.InitialState()
	d.t = 0
	d.steps = 0
	d.failure = nil
	d.sup.Reset()
	d.logger.Reset()
	d.setHumidity(d.opts.Humidity)
	d.rpmHistory = d.rpmHistory[:0]
	d.tempHistory = d.tempHistory[:0]
	d.status = "reset"
}

func (d *Dashboard) export() {
	path := d.opts.ExportPath
	if err := d.logger.Save(path); err != nil {
		d.status = "export failed: " + err.Error()
		return
	}
	d.status = fmt.Sprintf("exported %d rows to %s", len(d.logger.Rows()), path)
	log.Info().Str("path", path).Int("rows", len(d.logger.Rows())).Msg("data log exported")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (d Dashboard) View() string {
	var s strings.Builder

	s.WriteString(GradientText(fmt.Sprintf("PUMP MOTOR · %s model", strings.ToUpper(d.opts.Model)), GradientStart, GradientEnd) + "\n")
	switch {
	case d.failure != nil:
		s.WriteString(Alert.Render("STOPPED: "+d.failure.Error()) + "\n\n")
	case d.running:
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	rpm, temp := d.x[motor.RPM], d.x[motor.Temp]
	maxRPM := d.opts.Params.SteadyRPM(d.sup.Pump.Max)
	g := d.sup.Guard

	s.WriteString(MetricLabel.Render("Time") + MetricValue.Render(fmt.Sprintf("%.1f s", d.t)) + "\n")
	s.WriteString(MetricLabel.Render("Humidity") + MetricValue.Render(fmt.Sprintf("%.0f %%", d.tel.Humidity)) + "\n")
	s.WriteString(MetricLabel.Render("Voltage") + MetricValue.Render(fmt.Sprintf("%.2f V", d.tel.Volts)) + "\n")
	s.WriteString(MetricLabel.Render("RPM") + ProgressBar(rpm/maxRPM, barWidth) + " " + MetricValue.Render(fmt.Sprintf("%.1f", rpm)) + "\n")
	s.WriteString(MetricLabel.Render("Temp") + HeatBar((temp-d.opts.Params.Ambient)/(g.Critical-d.opts.Params.Ambient), barWidth) + " " + MetricValue.Render(fmt.Sprintf("%.1f °C", temp)) + "\n")
	pump := d.sup.Pump.GetParams()
	s.WriteString(MetricLabel.Render("Pump") + MetricValue.Render(fmt.Sprintf("Kp %.1f  max %.1f V", pump["Kp"], pump["Max"])) + "\n")
	s.WriteString(MetricLabel.Render("Protection") + MetricValue.Render(onOff(g.Enabled)) + "\n")
	s.WriteString(MetricLabel.Render("Log rows") + MetricValue.Render(fmt.Sprintf("%d", len(d.logger.Rows()))) + "\n")

	if d.tel.Cooling {
		s.WriteString("\n" + Alert.Render(fmt.Sprintf("THERMAL CUTOFF · cooling, restart in %d s (below %.0f °C)", d.tel.CoolRemaining, g.Restart)) + "\n")
	}
	if d.tel.Message != "" {
		s.WriteString("\n" + Subtle.Render(d.tel.Message) + "\n")
	}

	stats := Panel.Render(s.String())

	var graphs strings.Builder
	if len(d.rpmHistory) > 1 {
		graphs.WriteString(asciigraph.Plot(d.rpmHistory,
			asciigraph.Height(8),
			asciigraph.Width(50),
			asciigraph.LowerBound(0),
			asciigraph.Precision(0),
			asciigraph.SeriesColors(asciigraph.Blue),
			asciigraph.Caption("RPM"),
		))
		graphs.WriteString("\n\n")
	}
	graphs.WriteString(MetricLabel.Render("Temp trend") + SparklineChart(d.tempHistory, 50))

	view := lipgloss.JoinHorizontal(lipgloss.Top, stats, Panel.Render(graphs.String()))

	footer := "\n"
	if d.status != "" {
		footer += Subtle.Render(d.status) + "\n"
	}
	footer += KeyHint.Render("↑↓:Humidity +-:Gain P:Protection D:Demo R:Reset SP:Pause E:Export Q:Quit")

	return view + footer
}
