// Package analysis characterizes simulated pump runs.
//
//   - [Step]: rise time, settling time and overshoot of a response
//   - [NewPhasePortrait]: one state component against another, e.g. the
//     rpm/temperature loop traced by the thermal cutoff
//
// # Step Response
//
//	resp := analysis.Step(result.Times, result.Column(motor.RPM), 0.02)
//	fmt.Printf("settled after %.1f s\n", resp.SettlingTime)
package analysis
