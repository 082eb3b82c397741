package analysis

import "math"

// StepResponse summarizes how a signal approaches its final value.
// Times are in the units of the input; NaN means the event never happened.
type StepResponse struct {
	Initial      float64
	Final        float64
	Peak         float64
	Overshoot    float64 // percent of the step
	RiseTime     float64 // 10% to 90% of the step
	SettlingTime float64 // last entry into the tol band around Final
}

// Step analyzes values sampled at times. tol is the settling band as a
// fraction of the step size.
func Step(times, values []float64, tol float64) StepResponse {
	resp := StepResponse{RiseTime: math.NaN(), SettlingTime: math.NaN()}
	n := len(values)
	if n == 0 || len(times) < n {
		return resp
	}

	resp.Initial = values[0]
	resp.Final = values[n-1]
	resp.Peak = values[0]
	for _, v := range values {
		if v > resp.Peak {
			resp.Peak = v
		}
	}

	step := resp.Final - resp.Initial
	if step == 0 {
		resp.SettlingTime = times[0]
		return resp
	}

	if step > 0 && resp.Peak > resp.Final {
		resp.Overshoot = (resp.Peak - resp.Final) / step * 100
	}

	lo := resp.Initial + 0.1*step
	hi := resp.Initial + 0.9*step
	t10, t90 := math.NaN(), math.NaN()
	for i, v := range values {
		reached := (v - lo) * math.Copysign(1, step)
		if math.IsNaN(t10) && reached >= 0 {
			t10 = times[i]
		}
		if (v-hi)*math.Copysign(1, step) >= 0 {
			t90 = times[i]
			break
		}
	}
	if !math.IsNaN(t10) && !math.IsNaN(t90) {
		resp.RiseTime = t90 - t10
	}

	band := math.Abs(step) * tol
	resp.SettlingTime = times[0]
	for i := n - 1; i >= 0; i-- {
		if math.Abs(values[i]-resp.Final) > band {
			if i+1 < n {
				resp.SettlingTime = times[i+1]
			}
			break
		}
	}

	return resp
}
