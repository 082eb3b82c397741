// Package motor models the irrigation pump motor as a two-state system:
// shaft speed (rpm) and winding temperature.
//
//	normal:   drpm/dt  = -alpha*rpm + beta*volts
//	          dtemp/dt = k1*rpm - gamma*(temp - ambient)
//	braking:  drpm/dt  = -5*alpha*rpm
//	          dtemp/dt = -gamma*(temp - ambient)
//
// With the ideal parameters the steady-state speed is 40 rpm per volt, the
// theoretical curve of package curve. The real parameters are calibrated to
// gear configuration 624.
//
// A [Supervisor] closes the loop: it reads soil humidity from a
// [HumiditySource], drives the pump through a proportional controller and
// hands control to the thermal guard when the winding overheats.
package motor
