// Package control provides the irrigation pump's control laws.
//
//   - [Proportional]: saturated P controller mapping soil humidity to volts
//   - [ThermalGuard]: over-temperature cut-off with timed, hysteretic restart
//
// # Usage
//
//	p := control.NewProportional(5.0, 100.0, 0, 5.0) // Kp, setpoint, min, max
//	volts := p.Output(humidity)
//
// Both types support live tuning through GetParams/SetParam.
package control
