package control

import "math"

const (
	DefaultCritical = 80.0
	DefaultRestart  = 60.0
	DefaultCoolTime = 3.0
)

// ThermalGuard cuts motor power once the winding reaches Critical degrees.
// Power comes back only after CoolTime seconds AND once the temperature has
// dropped below Restart.
type ThermalGuard struct {
	Enabled  bool
	Critical float64
	Restart  float64
	CoolTime float64

	cooling bool
	since   float64
}

func NewThermalGuard() *ThermalGuard {
	return &ThermalGuard{
		Enabled:  true,
		Critical: DefaultCritical,
		Restart:  DefaultRestart,
		CoolTime: DefaultCoolTime,
	}
}

// Update feeds the current temperature at time t and reports whether power
// must be cut for this step. A release decided here takes effect on the next
// call.
func (g *ThermalGuard) Update(temp, t float64) bool {
	if g.Enabled && !g.cooling && temp >= g.Critical {
		g.cooling = true
		g.since = t
	}
	if !g.cooling {
		return false
	}
	if t-g.since > g.CoolTime && temp < g.Restart {
		g.cooling = false
	}
	return true
}

func (g *ThermalGuard) Cooling() bool { return g.cooling }

// Remaining is the whole number of seconds left in the minimum cool-down.
func (g *ThermalGuard) Remaining(t float64) int {
	if !g.cooling {
		return 0
	}
	left := math.Ceil(g.CoolTime - (t - g.since))
	if left < 0 {
		return 0
	}
	return int(left)
}

// SetEnabled toggles protection; disabling it also aborts a cool-down.
func (g *ThermalGuard) SetEnabled(on bool) {
	g.Enabled = on
	if !on {
		g.cooling = false
	}
}

func (g *ThermalGuard) Reset() {
	g.cooling = false
	g.since = 0
}
