package control

import (
	"errors"
	"fmt"
)

var ErrUnknownParam = errors.New("control: unknown parameter")

// Proportional drives the pump harder the drier the soil is. The error is
// normalised to [0, 1] over the setpoint, so Kp is the output at zero
// humidity.
type Proportional struct {
	Kp       float64
	Setpoint float64
	Min      float64
	Max      float64
}

func NewProportional(kp, setpoint, min, max float64) *Proportional {
	return &Proportional{
		Kp:       kp,
		Setpoint: setpoint,
		Min:      min,
		Max:      max,
	}
}

// DefaultPump is the 0-5 V pump driver aiming at saturated soil.
func DefaultPump() *Proportional {
	return NewProportional(5.0, 100.0, 0, 5.0)
}

func (p *Proportional) Output(measured float64) float64 {
	if p.Setpoint == 0 {
		return p.Min
	}
	err := (p.Setpoint - measured) / p.Setpoint
	return clamp(p.Kp*err, p.Min, p.Max)
}

// GetParams returns the tunable parameters by name.
func (p *Proportional) GetParams() map[string]float64 {
	return map[string]float64{
		"Kp":       p.Kp,
		"Setpoint": p.Setpoint,
		"Max":      p.Max,
	}
}

func (p *Proportional) SetParam(name string, value float64) error {
	switch name {
	case "Kp":
		p.Kp = value
	case "Setpoint":
		if value <= 0 {
			return fmt.Errorf("control: setpoint must be positive, got %g", value)
		}
		p.Setpoint = value
	case "Max":
		if value < p.Min {
			return fmt.Errorf("control: max %g below min %g", value, p.Min)
		}
		p.Max = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return nil
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
