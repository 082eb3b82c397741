// Package viz renders the motor curves and the pump simulation in the
// terminal.
//
//   - [CurvePreview]: the five RPM curves as an asciigraph plot
//   - [EndpointTable]: RPM at the top of the voltage range and the deviation
//     of each configuration from the theoretical model
//   - [Dashboard]: a Bubble Tea model that steps the humidity-driven pump
//     loop in real time
//
// # Key Bindings
//
//	Up/Down - Humidity +/-5%
//	+/-     - Pump gain +/-0.5
//	P       - Toggle thermal protection
//	D       - Start the 30 s irrigation demo
//	R       - Reset the simulation
//	Space   - Pause/Resume
//	E       - Export the data log as CSV
//	Q       - Quit
package viz
