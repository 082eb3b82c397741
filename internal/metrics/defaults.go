package metrics

import (
	"github.com/san-kum/motorcurve/internal/motor"
	"github.com/san-kum/motorcurve/internal/sim"
)

// ForMotor returns the metrics reported for every pump simulation.
func ForMotor() []sim.Metric {
	return []sim.Metric{
		NewControlEffort(motor.Volts),
		NewPeak("peak_rpm", motor.RPM),
		NewPeak("peak_temp", motor.Temp),
		NewCoolingFraction(motor.Brake),
	}
}
