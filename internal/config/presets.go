package config

import "sort"

var Presets = map[string]map[string]*SimulationConfig{
	"ideal": {
		"dry": {
			Model: "ideal", Integrator: "euler", Dt: 0.1, Duration: 30.0,
			Humidity: 0, Protection: true, LogInterval: 2.0,
		},
		"saturated": {
			Model: "ideal", Integrator: "euler", Dt: 0.1, Duration: 30.0,
			Humidity: 100, Protection: true, LogInterval: 2.0,
		},
		"demo": {
			Model: "ideal", Integrator: "euler", Dt: 0.1, Duration: 32.0,
			Protection: true, Demo: true, LogInterval: 2.0,
		},
		"overheat": {
			Model: "ideal", Integrator: "euler", Dt: 0.1, Duration: 120.0,
			Humidity: 0, Protection: false, LogInterval: 2.0,
		},
	},
	"real": {
		"dry": {
			Model: "real", Integrator: "euler", Dt: 0.1, Duration: 30.0,
			Humidity: 0, Protection: true, LogInterval: 2.0,
		},
		"saturated": {
			Model: "real", Integrator: "euler", Dt: 0.1, Duration: 30.0,
			Humidity: 100, Protection: true, LogInterval: 2.0,
		},
		"demo": {
			Model: "real", Integrator: "euler", Dt: 0.1, Duration: 32.0,
			Protection: true, Demo: true, LogInterval: 2.0,
		},
		"overheat": {
			Model: "real", Integrator: "rk4", Dt: 0.1, Duration: 120.0,
			Humidity: 0, Protection: false, LogInterval: 2.0,
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(model, preset string) *SimulationConfig {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
