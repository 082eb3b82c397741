package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/motorcurve/internal/sim"
)

func TestControlEffort(t *testing.T) {
	c := NewControlEffort(0)

	if c.Value() != 0 {
		t.Error("expected zero before observations")
	}

	c.Observe(nil, sim.Control{2, 1}, 0)
	c.Observe(nil, sim.Control{-4, 1}, 0.1)
	if math.Abs(c.Value()-3) > 1e-12 {
		t.Errorf("expected mean 3, got %v", c.Value())
	}

	c.Reset()
	if c.Value() != 0 {
		t.Error("reset did not clear effort")
	}
}

func TestPeak(t *testing.T) {
	p := NewPeak("peak_temp", 1)

	if p.Value() != 0 {
		t.Errorf("expected 0 without samples, got %v", p.Value())
	}

	p.Observe(sim.State{0, 25}, nil, 0)
	p.Observe(sim.State{0, 81}, nil, 1)
	p.Observe(sim.State{0, 60}, nil, 2)
	if p.Value() != 81 {
		t.Errorf("expected 81, got %v", p.Value())
	}
	if p.Name() != "peak_temp" {
		t.Errorf("unexpected name %s", p.Name())
	}
}

func TestCoolingFraction(t *testing.T) {
	c := NewCoolingFraction(1)
	c.Observe(nil, sim.Control{5, 0}, 0)
	c.Observe(nil, sim.Control{0, 1}, 0.1)
	c.Observe(nil, sim.Control{0, 1}, 0.2)
	c.Observe(nil, sim.Control{5}, 0.3)

	if math.Abs(c.Value()-0.5) > 1e-12 {
		t.Errorf("expected 0.5, got %v", c.Value())
	}
}

func TestForMotor(t *testing.T) {
	names := map[string]bool{}
	for _, m := range ForMotor() {
		names[m.Name()] = true
	}
	for _, want := range []string{"control_effort", "peak_rpm", "peak_temp", "cooling_fraction"} {
		if !names[want] {
			t.Errorf("missing metric %s", want)
		}
	}
}
