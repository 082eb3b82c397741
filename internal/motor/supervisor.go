package motor

import (
	"github.com/san-kum/motorcurve/internal/control"
	"github.com/san-kum/motorcurve/internal/sim"
)

// Telemetry is a snapshot of the closed loop.
type Telemetry struct {
	Time          float64
	RPM           float64
	Temp          float64
	Volts         float64
	Humidity      float64
	Cooling       bool
	CoolRemaining int
	Message       string
}

// Supervisor implements sim.Controller for the pump.
type Supervisor struct {
	Source HumiditySource
	Pump   *control.Proportional
	Guard  *control.ThermalGuard

	last Telemetry
}

func NewSupervisor(src HumiditySource) *Supervisor {
	return &Supervisor{
		Source: src,
		Pump:   control.DefaultPump(),
		Guard:  control.NewThermalGuard(),
	}
}

func (s *Supervisor) Compute(x sim.State, t float64) sim.Control {
	h, msg := s.Source.Humidity(t)

	u := sim.Control{0, 0, h}
	cooling := s.Guard.Update(x[Temp], t)
	if cooling {
		u[Brake] = 1
	} else {
		u[Volts] = s.Pump.Output(h)
	}

	s.last = Telemetry{
		Time:          t,
		RPM:           x[RPM],
		Temp:          x[Temp],
		Volts:         u[Volts],
		Humidity:      h,
		Cooling:       cooling,
		CoolRemaining: s.Guard.Remaining(t),
		Message:       msg,
	}
	return u
}

// Last returns the telemetry recorded by the most recent Compute.
func (s *Supervisor) Last() Telemetry {
	return s.last
}

func (s *Supervisor) Reset() {
	s.Guard.Reset()
	s.last = Telemetry{}
}
