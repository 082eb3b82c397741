package motor

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/motorcurve/internal/curve"
	"github.com/san-kum/motorcurve/internal/integrators"
	"github.com/san-kum/motorcurve/internal/sim"
)

func TestMotorDimensions(t *testing.T) {
	m := New(Ideal())

	if m.StateDim() != 2 {
		t.Errorf("expected state dim 2, got %d", m.StateDim())
	}
	if m.ControlDim() != 3 {
		t.Errorf("expected control dim 3, got %d", m.ControlDim())
	}
	x0 := m.InitialState()
	if x0[RPM] != 0 || x0[Temp] != 20 {
		t.Errorf("unexpected initial state %v", x0)
	}
}

func TestMotorDerivative(t *testing.T) {
	m := New(Ideal())
	x := sim.State{100, 30}

	dx := m.Derivative(x, sim.Control{2, 0, 50}, 0)
	// -0.5*100 + 20*2, 0.02*100 - 0.05*10
	if math.Abs(dx[RPM]-(-10)) > 1e-12 || math.Abs(dx[Temp]-1.5) > 1e-12 {
		t.Errorf("normal derivative = %v", dx)
	}

	dx = m.Derivative(x, sim.Control{2, 1, 50}, 0)
	if math.Abs(dx[RPM]-(-250)) > 1e-12 || math.Abs(dx[Temp]-(-0.5)) > 1e-12 {
		t.Errorf("braking derivative = %v", dx)
	}
}

func TestMotorConstrain(t *testing.T) {
	m := New(Real())
	x := m.Constrain(sim.State{-3, 10})
	if x[RPM] != 0 || x[Temp] != m.Ambient {
		t.Errorf("constrain = %v", x)
	}
}

func TestSteadyStateMatchesCurves(t *testing.T) {
	cmp := curve.Compute()
	s624, err := cmp.Lookup("624")
	if err != nil {
		t.Fatal(err)
	}

	ideal, real := Ideal(), Real()
	for i, v := range cmp.Domain {
		if got, want := ideal.SteadyRPM(v), cmp.Theoretical.Y[i]; math.Abs(got-want) > 1e-9 {
			t.Fatalf("ideal steady rpm at %vV = %v, want %v", v, got, want)
		}
		if want := s624.Y[i]; want > 0 && math.Abs(real.SteadyRPM(v)/want-1) > 0.005 {
			t.Fatalf("real steady rpm at %vV = %v, config 624 = %v", v, real.SteadyRPM(v), want)
		}
	}
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		if _, err := ByName(name); err != nil {
			t.Errorf("ByName(%q): %v", name, err)
		}
	}
	if _, err := ByName("turbo"); !errors.Is(err, ErrUnknownModel) {
		t.Errorf("expected ErrUnknownModel, got %v", err)
	}
}

func TestRampProfiles(t *testing.T) {
	tests := []struct {
		name string
		ramp *Ramp
		t    float64
		want float64
		msg  string
	}{
		{"linear before start", LinearRamp(5), 0, 0, "start (0%)"},
		{"linear midway", LinearRamp(0), 15, 50, "saturating"},
		{"linear early", LinearRamp(0), 6, 20, "irrigating"},
		{"linear hold", LinearRamp(0), 45, 100, "target reached (100%)"},
		{"power midway", PowerRamp(0), 15, 57, "saturating"},
		{"power end", PowerRamp(0), 30, 100, "irrigation finished"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, msg := tt.ramp.Humidity(tt.t)
			if h != tt.want || msg != tt.msg {
				t.Errorf("Humidity(%v) = %v %q, want %v %q", tt.t, h, msg, tt.want, tt.msg)
			}
		})
	}

	r := LinearRamp(10)
	if r.Done(40) || !r.Done(41.5) {
		t.Error("Done should fire one second after the ramp ends")
	}
	if DemoFor("real", 0).Exponent != 0.8 || DemoFor("ideal", 0).Exponent != 1 {
		t.Error("DemoFor picked the wrong profile")
	}
}

func runLoop(t *testing.T, p Params, sup *Supervisor, duration float64) *sim.Result {
	t.Helper()
	m := New(p)
	s := sim.New(m, integrators.NewEuler(), sup)
	res, err := s.Run(context.Background(), m.InitialState(), sim.Config{Dt: 0.1, Duration: duration, ValidateState: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return res
}

func maxOf(xs []float64) float64 {
	m := math.Inf(-1)
	for _, x := range xs {
		if x > m {
			m = x
		}
	}
	return m
}

func TestSupervisorSettles(t *testing.T) {
	sup := NewSupervisor(Manual(50))
	res := runLoop(t, Ideal(), sup, 30)

	final := res.States[len(res.States)-1]
	// 2.5 V -> 100 rpm
	if math.Abs(final[RPM]-100) > 0.5 {
		t.Errorf("expected ~100 rpm, got %v", final[RPM])
	}
	last := sup.Last()
	if last.Volts != 2.5 || last.Humidity != 50 || last.Cooling {
		t.Errorf("unexpected telemetry %+v", last)
	}
}

func TestSupervisorThermalCutoff(t *testing.T) {
	sup := NewSupervisor(Manual(0))
	res := runLoop(t, Real(), sup, 120)

	if peak := maxOf(res.Column(Temp)); peak > 81 {
		t.Errorf("protected motor peaked at %v degC", peak)
	}
	braked := 0
	for _, u := range res.Controls {
		if u[Brake] > 0 {
			braked++
			if u[Volts] != 0 {
				t.Fatal("power applied while braking")
			}
		}
	}
	if braked == 0 {
		t.Error("thermal guard never engaged")
	}
}

func TestSupervisorUnprotected(t *testing.T) {
	sup := NewSupervisor(Manual(0))
	sup.Guard.SetEnabled(false)
	res := runLoop(t, Real(), sup, 120)

	if peak := maxOf(res.Column(Temp)); peak < 90 {
		t.Errorf("unprotected motor should overheat, peaked at %v degC", peak)
	}
}
