package curve

const (
	VoltageMin      = 0.0
	VoltageMax      = 5.0
	Samples         = 100
	TheoreticalGain = 40.0
)

// Linspace returns n evenly spaced values over [start, stop]. Both endpoints
// are included and hit exactly.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := 0; i < n-1; i++ {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

// Domain is the voltage sweep used by the comparison chart.
func Domain() []float64 {
	return Linspace(VoltageMin, VoltageMax, Samples)
}

// Theoretical evaluates rpm = 40 * v for every sample.
func Theoretical(domain []float64) []float64 {
	out := make([]float64, len(domain))
	for i, v := range domain {
		out[i] = TheoreticalGain * v
	}
	return out
}

// Apply scales a theoretical curve by the configuration's gear ratio.
func Apply(theoretical []float64, cfg Configuration) []float64 {
	out := make([]float64, len(theoretical))
	for i, rpm := range theoretical {
		if cfg.Op == Divide {
			out[i] = rpm / cfg.Ratio
		} else {
			out[i] = rpm * cfg.Ratio
		}
	}
	return out
}
