package config

import (
	"fmt"

	"github.com/spf13/viper"
)

const EnvPrefix = "MOTORCURVE"

var envKeys = []string{"output", "show", "dpi", "data_dir"}

// ApplyEnv overrides cfg with any MOTORCURVE_OUTPUT, MOTORCURVE_SHOW,
// MOTORCURVE_DPI and MOTORCURVE_DATA_DIR variables that are set.
func ApplyEnv(cfg *Config) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if v.IsSet("output") {
		cfg.Chart.Output = v.GetString("output")
	}
	if v.IsSet("show") {
		cfg.Chart.Show = v.GetBool("show")
	}
	if v.IsSet("dpi") {
		cfg.Chart.DPI = v.GetInt("dpi")
	}
	if v.IsSet("data_dir") {
		cfg.DataDir = v.GetString("data_dir")
	}
	return nil
}
