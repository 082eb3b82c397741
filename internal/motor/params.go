package motor

import (
	"errors"
	"fmt"
)

var ErrUnknownModel = errors.New("motor: unknown model")

type Params struct {
	Alpha       float64 // friction
	Beta        float64 // rpm gain per volt
	HeatGain    float64 // k1
	Dissipation float64 // gamma
	Ambient     float64 // degC
}

// Ideal is the design model.
func Ideal() Params {
	return Params{
		Alpha:       0.5,
		Beta:        20.0,
		HeatGain:    0.02,
		Dissipation: 0.05,
		Ambient:     20.0,
	}
}

// Real is calibrated against the 624 configuration (~93% of the ideal gain).
func Real() Params {
	p := Ideal()
	p.Beta = 18.66
	return p
}

var models = map[string]func() Params{
	"ideal": Ideal,
	"real":  Real,
}

func ByName(name string) (Params, error) {
	fn, ok := models[name]
	if !ok {
		return Params{}, fmt.Errorf("%w: %s", ErrUnknownModel, name)
	}
	return fn(), nil
}

func Names() []string {
	return []string{"ideal", "real"}
}

// SteadyRPM is the equilibrium speed for a constant voltage.
func (p Params) SteadyRPM(volts float64) float64 {
	return p.Beta / p.Alpha * volts
}

// SteadyTemp is the equilibrium winding temperature at a constant speed.
func (p Params) SteadyTemp(rpm float64) float64 {
	return p.Ambient + p.HeatGain*rpm/p.Dissipation
}
