package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/san-kum/motorcurve/internal/integrators"
	"github.com/san-kum/motorcurve/internal/motor"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("config: invalid")

const (
	DefaultOutput      = "comparativa_configuraciones_motor.png"
	DefaultWidth       = 12.0
	DefaultHeight      = 7.0
	DefaultDPI         = 100
	DefaultModel       = "real"
	DefaultIntegrator  = "euler"
	DefaultDt          = 0.1
	DefaultDuration    = 30.0
	DefaultHumidity    = 50.0
	DefaultLogInterval = 2.0
	DefaultDataDir     = ".motorcurve"
)

type Config struct {
	Chart      ChartConfig      `yaml:"chart"`
	Simulation SimulationConfig `yaml:"simulation"`
	DataDir    string           `yaml:"data_dir"`
}

// ChartConfig sizes are in inches.
type ChartConfig struct {
	Output string  `yaml:"output"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	DPI    int     `yaml:"dpi"`
	Show   bool    `yaml:"show"`
}

type SimulationConfig struct {
	Model       string  `yaml:"model"`
	Integrator  string  `yaml:"integrator"`
	Dt          float64 `yaml:"dt"`
	Duration    float64 `yaml:"duration"`
	Humidity    float64 `yaml:"humidity"`
	Protection  bool    `yaml:"protection"`
	Demo        bool    `yaml:"demo"`
	LogInterval float64 `yaml:"log_interval"`
}

func DefaultConfig() *Config {
	return &Config{
		Chart: ChartConfig{
			Output: DefaultOutput,
			Width:  DefaultWidth,
			Height: DefaultHeight,
			DPI:    DefaultDPI,
			Show:   true,
		},
		Simulation: DefaultSimulation(),
		DataDir:    DefaultDataDir,
	}
}

func DefaultSimulation() SimulationConfig {
	return SimulationConfig{
		Model:       DefaultModel,
		Integrator:  DefaultIntegrator,
		Dt:          DefaultDt,
		Duration:    DefaultDuration,
		Humidity:    DefaultHumidity,
		Protection:  true,
		LogInterval: DefaultLogInterval,
	}
}

// Load reads a YAML file over the defaults, so omitted keys keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Chart.Output == "" {
		return fmt.Errorf("%w: empty chart output path", ErrInvalid)
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("%w: chart size must be positive, got %gx%g", ErrInvalid, c.Chart.Width, c.Chart.Height)
	}
	if c.Chart.DPI <= 0 {
		return fmt.Errorf("%w: dpi must be positive, got %d", ErrInvalid, c.Chart.DPI)
	}
	return c.Simulation.Validate()
}

func (s SimulationConfig) Validate() error {
	if !slices.Contains(motor.Names(), s.Model) {
		return fmt.Errorf("%w: unknown model %q", ErrInvalid, s.Model)
	}
	if !slices.Contains(integrators.Names(), s.Integrator) {
		return fmt.Errorf("%w: unknown integrator %q", ErrInvalid, s.Integrator)
	}
	if s.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalid, s.Dt)
	}
	if s.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalid, s.Duration)
	}
	if s.Humidity < 0 || s.Humidity > 100 {
		return fmt.Errorf("%w: humidity must be within [0, 100], got %g", ErrInvalid, s.Humidity)
	}
	if s.LogInterval <= 0 {
		return fmt.Errorf("%w: log interval must be positive, got %g", ErrInvalid, s.LogInterval)
	}
	return nil
}
