package curve

import "errors"

// ErrUnknownConfiguration is returned when a configuration ID is not one of
// the built-in gear setups.
var ErrUnknownConfiguration = errors.New("curve: unknown configuration")
