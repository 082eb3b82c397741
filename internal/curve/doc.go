// Package curve samples the input-voltage domain and evaluates the
// voltage-to-RPM model for the theoretical motor and each gear configuration.
//
// The theoretical model is linear:
//
//	rpm = 40 * volts
//
// Each [Configuration] scales the theoretical curve by a fixed gear ratio,
// dividing for the slower setups (416, 520, 624) and multiplying for the
// faster one (730).
//
// # Example
//
//	cmp := curve.Compute()
//	s, _ := cmp.Lookup("624")
//	_, rpm := s.Last() // ~186.92 at 5 V
//
// Everything here is a pure function of package constants; repeated calls
// return identical sequences.
package curve
