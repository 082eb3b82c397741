package metrics

import "github.com/san-kum/motorcurve/internal/sim"

// CoolingFraction is the share of steps where the given control channel
// (the brake flag) was engaged.
type CoolingFraction struct {
	channel int
	engaged int
	samples int
}

func NewCoolingFraction(channel int) *CoolingFraction {
	return &CoolingFraction{channel: channel}
}

func (c *CoolingFraction) Name() string {
	return "cooling_fraction"
}

func (c *CoolingFraction) Observe(x sim.State, u sim.Control, t float64) {
	c.samples++
	if c.channel < len(u) && u[c.channel] > 0.5 {
		c.engaged++
	}
}

func (c *CoolingFraction) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.engaged) / float64(c.samples)
}

func (c *CoolingFraction) Reset() {
	c.engaged = 0
	c.samples = 0
}
