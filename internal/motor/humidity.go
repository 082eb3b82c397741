package motor

import "math"

const DemoDuration = 30.0

// HumiditySource supplies soil humidity (percent) over time along with a
// short status line.
type HumiditySource interface {
	Humidity(t float64) (float64, string)
}

// Manual is a fixed humidity reading.
type Manual float64

func (m Manual) Humidity(float64) (float64, string) {
	return float64(m), ""
}

// Ramp sweeps humidity from 0 to 100% over Duration seconds starting at
// Start, shaped by Exponent (1 is linear), then holds at 100%.
type Ramp struct {
	Start    float64
	Duration float64
	Exponent float64
	Messages [4]string
}

// LinearRamp is the ideal irrigation profile.
func LinearRamp(start float64) *Ramp {
	return &Ramp{
		Start:    start,
		Duration: DemoDuration,
		Exponent: 1,
		Messages: [4]string{"start (0%)", "irrigating", "saturating", "target reached (100%)"},
	}
}

// PowerRamp follows t^0.8, the faster early rise of real soil.
func PowerRamp(start float64) *Ramp {
	return &Ramp{
		Start:    start,
		Duration: DemoDuration,
		Exponent: 0.8,
		Messages: [4]string{"start: full load", "warming up", "saturating", "irrigation finished"},
	}
}

// DemoFor picks the ramp matching a model name.
func DemoFor(model string, start float64) *Ramp {
	if model == "real" {
		return PowerRamp(start)
	}
	return LinearRamp(start)
}

func (r *Ramp) Humidity(t float64) (float64, string) {
	progress := (t - r.Start) / r.Duration
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	h := math.Round(math.Pow(progress, r.Exponent) * 100)

	var msg string
	switch {
	case h < 10:
		msg = r.Messages[0]
	case h < 50:
		msg = r.Messages[1]
	case h < 90:
		msg = r.Messages[2]
	default:
		msg = r.Messages[3]
	}
	return h, msg
}

// Done reports whether the ramp has finished, allowing one second at 100%.
func (r *Ramp) Done(t float64) bool {
	return t > r.Start+r.Duration+1
}
