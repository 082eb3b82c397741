package curve

import (
	"fmt"
	"image/color"
)

// Op says whether a gear ratio slows the motor down or speeds it up.
type Op int

const (
	Divide Op = iota
	Multiply
)

func (o Op) String() string {
	if o == Multiply {
		return "multiply"
	}
	return "divide"
}

// Configuration is a real motor/gear setup whose output deviates from the
// theoretical curve by a fixed ratio.
type Configuration struct {
	ID    string
	Ratio float64
	Op    Op
	Color color.Color
}

// Factor is the multiplier applied to the theoretical curve.
func (c Configuration) Factor() float64 {
	if c.Op == Divide {
		return 1 / c.Ratio
	}
	return c.Ratio
}

func (c Configuration) Label() string {
	return fmt.Sprintf("Motor Config %s (Real)", c.ID)
}

// GearRatio renders the ratio the way it is written on the datasheet, "1.36 : 1".
func (c Configuration) GearRatio() string {
	return fmt.Sprintf("%g : 1", c.Ratio)
}

var (
	ColorBlack  = color.RGBA{A: 255}
	ColorRed    = color.RGBA{R: 255, A: 255}
	ColorGreen  = color.RGBA{G: 128, A: 255}
	ColorBlue   = color.RGBA{B: 255, A: 255}
	ColorPurple = color.RGBA{R: 128, B: 128, A: 255}
)

// Configurations lists the measured setups in chart order.
var Configurations = []Configuration{
	{ID: "416", Ratio: 1.36, Op: Divide, Color: ColorRed},
	{ID: "520", Ratio: 1.08, Op: Divide, Color: ColorGreen},
	{ID: "624", Ratio: 1.07, Op: Divide, Color: ColorBlue},
	{ID: "730", Ratio: 1.267, Op: Multiply, Color: ColorPurple},
}

// ConfigurationByID finds a built-in configuration.
func ConfigurationByID(id string) (Configuration, error) {
	for _, c := range Configurations {
		if c.ID == id {
			return c, nil
		}
	}
	return Configuration{}, fmt.Errorf("%w: %q", ErrUnknownConfiguration, id)
}
