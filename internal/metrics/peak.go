package metrics

import (
	"math"

	"github.com/san-kum/motorcurve/internal/sim"
)

// Peak tracks the maximum of one state component.
type Peak struct {
	name  string
	index int
	max   float64
}

func NewPeak(name string, index int) *Peak {
	p := &Peak{name: name, index: index}
	p.Reset()
	return p
}

func (p *Peak) Name() string {
	return p.name
}

func (p *Peak) Observe(x sim.State, u sim.Control, t float64) {
	if p.index < len(x) && x[p.index] > p.max {
		p.max = x[p.index]
	}
}

func (p *Peak) Value() float64 {
	if math.IsInf(p.max, -1) {
		return 0
	}
	return p.max
}

func (p *Peak) Reset() {
	p.max = math.Inf(-1)
}
