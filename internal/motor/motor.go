package motor

import "github.com/san-kum/motorcurve/internal/sim"

// State and control vector layout.
const (
	RPM = iota
	Temp
)

const (
	Volts = iota
	Brake
	Humidity
)

const brakeFriction = 5.0

type Motor struct {
	Params
}

func New(p Params) *Motor {
	return &Motor{Params: p}
}

func (m *Motor) StateDim() int {
	return 2
}

// ControlDim counts volts, brake flag and the reported humidity input.
func (m *Motor) ControlDim() int {
	return 3
}

func (m *Motor) InitialState() sim.State {
	return sim.State{0, m.Ambient}
}

func (m *Motor) Derivative(x sim.State, u sim.Control, t float64) sim.State {
	rpm := x[RPM]
	heat := m.Dissipation * (x[Temp] - m.Ambient)

	if braking(u) {
		return sim.State{-brakeFriction * m.Alpha * rpm, -heat}
	}

	volts := 0.0
	if len(u) > Volts {
		volts = u[Volts]
	}
	return sim.State{
		-m.Alpha*rpm + m.Beta*volts,
		m.HeatGain*rpm - heat,
	}
}

// Constrain keeps speed non-negative and the winding no colder than ambient.
func (m *Motor) Constrain(x sim.State) sim.State {
	if x[RPM] < 0 {
		x[RPM] = 0
	}
	if x[Temp] < m.Ambient {
		x[Temp] = m.Ambient
	}
	return x
}

func braking(u sim.Control) bool {
	return len(u) > Brake && u[Brake] > 0.5
}
