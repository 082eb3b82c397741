package sim

import (
	"context"
	"errors"
	"math"
	"testing"
)

type testDynamics struct{}

func (t *testDynamics) Derivative(x State, u Control, time float64) State {
	return State{-x[0]}
}

func (t *testDynamics) StateDim() int   { return 1 }
func (t *testDynamics) ControlDim() int { return 0 }

type floorDynamics struct{ testDynamics }

func (f *floorDynamics) Constrain(x State) State {
	if x[0] < 0.5 {
		x[0] = 0.5
	}
	return x
}

type nanDynamics struct{ testDynamics }

func (n *nanDynamics) Derivative(x State, u Control, time float64) State {
	return State{math.NaN()}
}

type testIntegrator struct{}

func (t *testIntegrator) Step(dyn Dynamics, x State, u Control, time float64, dt float64) State {
	dx := dyn.Derivative(x, u, time)
	return State{x[0] + dt*dx[0]}
}

type testController struct{}

func (t *testController) Compute(x State, time float64) Control {
	return Control{}
}

type recorder struct{ times []float64 }

func (r *recorder) OnStep(x State, u Control, t float64) { r.times = append(r.times, t) }

func TestSimulatorRun(t *testing.T) {
	sim := New(&testDynamics{}, &testIntegrator{}, &testController{})

	cfg := Config{
		Dt:       0.1,
		Duration: 1.0,
	}

	x0 := State{1.0}
	result, err := sim.Run(context.Background(), x0, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.States) != 11 {
		t.Errorf("expected 11 states, got %d", len(result.States))
	}

	if len(result.Times) != 11 {
		t.Errorf("expected 11 times, got %d", len(result.Times))
	}

	if result.Times[10] != 1.0 {
		t.Errorf("expected final time 1.0, got %v", result.Times[10])
	}

	finalState := result.States[len(result.States)-1][0]
	expected := 1.0 * math.Exp(-1.0)
	if math.Abs(finalState-expected) > 0.2 {
		t.Errorf("expected final state ~%.4f, got %.4f", expected, finalState)
	}

	if x0[0] != 1.0 {
		t.Error("run mutated the initial state")
	}
}

func TestSteps(t *testing.T) {
	if got := Steps(Config{Dt: 0.1, Duration: 30}); got != 300 {
		t.Errorf("expected 300 steps, got %d", got)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	sim := New(&testDynamics{}, &testIntegrator{}, &testController{})

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Duration: 1.0}},
		{"negative dt", Config{Dt: -0.1, Duration: 1.0}},
		{"zero duration", Config{Dt: 0.1, Duration: 0}},
		{"negative duration", Config{Dt: 0.1, Duration: -1.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x0 := State{1.0}
			_, err := sim.Run(context.Background(), x0, tt.cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSimulatorConstrain(t *testing.T) {
	sim := New(&floorDynamics{}, &testIntegrator{}, &testController{})
	result, err := sim.Run(context.Background(), State{1.0}, Config{Dt: 0.1, Duration: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for i, s := range result.States {
		if s[0] < 0.5 {
			t.Fatalf("state %d below floor: %v", i, s[0])
		}
	}
}

func TestSimulatorInvalidState(t *testing.T) {
	sim := New(&nanDynamics{}, &testIntegrator{}, &testController{})
	_, err := sim.Run(context.Background(), State{1.0}, Config{Dt: 0.1, Duration: 1, ValidateState: true})
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	var se SimError
	if !errors.As(err, &se) || se.Step != 0 {
		t.Errorf("expected SimError at step 0, got %v", err)
	}
}

func TestSimulatorCanceled(t *testing.T) {
	sim := New(&testDynamics{}, &testIntegrator{}, &testController{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := sim.Run(ctx, State{1.0}, Config{Dt: 0.1, Duration: 1})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(result.States) != 1 {
		t.Errorf("expected only the initial state, got %d", len(result.States))
	}
}

type testMetric struct {
	count int
	sum   float64
}

func (t *testMetric) Name() string { return "test" }
func (t *testMetric) Observe(x State, u Control, time float64) {
	t.count++
	t.sum += x[0]
}
func (t *testMetric) Value() float64 {
	if t.count == 0 {
		return 0
	}
	return t.sum / float64(t.count)
}
func (t *testMetric) Reset() {
	t.count = 0
	t.sum = 0
}

func TestSimulatorMetrics(t *testing.T) {
	sim := New(&testDynamics{}, &testIntegrator{}, &testController{})

	metric := &testMetric{}
	sim.AddMetric(metric)
	obs := &recorder{}
	sim.AddObserver(obs)

	cfg := Config{Dt: 0.1, Duration: 1.0}
	x0 := State{1.0}

	result, err := sim.Run(context.Background(), x0, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, ok := result.Metrics["test"]; !ok {
		t.Error("metric not found in result")
	}

	if metric.count != 10 {
		t.Errorf("expected 10 observations, got %d", metric.count)
	}

	if len(obs.times) != 10 || obs.times[0] != 0 {
		t.Errorf("unexpected observer times: %v", obs.times)
	}
}

func TestEnsemble(t *testing.T) {
	e := NewEnsemble(
		Job{Name: "a", Sim: New(&testDynamics{}, &testIntegrator{}, &testController{}), X0: State{1}, Cfg: Config{Dt: 0.1, Duration: 1}},
		Job{Name: "b", Sim: New(&testDynamics{}, &testIntegrator{}, &testController{}), X0: State{2}, Cfg: Config{Dt: 0.1, Duration: 2}},
	)

	results, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if len(results[0].States) != 11 || len(results[1].States) != 21 {
		t.Errorf("results out of order: %d, %d", len(results[0].States), len(results[1].States))
	}

	e.Add(Job{Name: "bad", Sim: New(&testDynamics{}, &testIntegrator{}, &testController{}), X0: State{1}, Cfg: Config{}})
	if _, err := e.Run(context.Background()); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
