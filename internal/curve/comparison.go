package curve

import (
	"fmt"
	"image/color"
)

const TheoreticalName = "theoretical"

// Series is one evaluated curve over the voltage domain.
type Series struct {
	Name   string
	Label  string
	Factor float64
	Color  color.Color
	Dashed bool
	X, Y   []float64
}

// Last returns the final sample.
func (s Series) Last() (x, y float64) {
	if len(s.Y) == 0 {
		return 0, 0
	}
	n := len(s.Y) - 1
	return s.X[n], s.Y[n]
}

// DeviationPercent compares the final sample against another series,
// usually the theoretical one. Positive means faster.
func (s Series) DeviationPercent(ref Series) float64 {
	_, y := s.Last()
	_, r := ref.Last()
	if r == 0 {
		return 0
	}
	return (y/r - 1) * 100
}

// Comparison holds the theoretical curve and every configuration curve over
// a shared domain.
type Comparison struct {
	Domain         []float64
	Theoretical    Series
	Configurations []Series
}

// Compute evaluates all curves over the default domain.
func Compute() *Comparison {
	return ComputeOver(Domain())
}

func ComputeOver(domain []float64) *Comparison {
	theo := Theoretical(domain)
	cmp := &Comparison{
		Domain: domain,
		Theoretical: Series{
			Name:   TheoreticalName,
			Label:  "Modelo Teórico (Ideal)",
			Factor: 1,
			Color:  ColorBlack,
			Dashed: true,
			X:      domain,
			Y:      theo,
		},
		Configurations: make([]Series, 0, len(Configurations)),
	}
	for _, c := range Configurations {
		cmp.Configurations = append(cmp.Configurations, Series{
			Name:   c.ID,
			Label:  c.Label(),
			Factor: c.Factor(),
			Color:  c.Color,
			X:      domain,
			Y:      Apply(theo, c),
		})
	}
	return cmp
}

// All returns the theoretical series followed by the configurations.
func (c *Comparison) All() []Series {
	out := make([]Series, 0, len(c.Configurations)+1)
	out = append(out, c.Theoretical)
	return append(out, c.Configurations...)
}

// Lookup finds a series by configuration ID or "theoretical".
func (c *Comparison) Lookup(id string) (Series, error) {
	if id == TheoreticalName {
		return c.Theoretical, nil
	}
	for _, s := range c.Configurations {
		if s.Name == id {
			return s, nil
		}
	}
	return Series{}, fmt.Errorf("%w: %q", ErrUnknownConfiguration, id)
}
