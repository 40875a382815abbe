package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

var (
	settingsLoaded = false
	settings       Settings
)

// Settings are process-wide options resolved from the environment and an
// optional settings file, as opposed to per-run parameters which travel
// in Config. Every key can be overridden with an ODESTEP_* environment
// variable, e.g. ODESTEP_OUTPUT_DIR=/tmp/runs.
type Settings struct {
	OutputDir  string
	PlotWidth  float64 // inches
	PlotHeight float64 // inches
	LogRuns    bool
}

// LoadSettings reads odestep.yaml from the directory named by
// ODESTEP_CONFIG, if set, and caches the result for the process.
func LoadSettings() (Settings, error) {
	if settingsLoaded {
		return settings, nil
	}

	v := viper.New()
	v.SetDefault("output.dir", "runs")
	v.SetDefault("plot.width", 8.0)
	v.SetDefault("plot.height", 6.0)
	v.SetDefault("log.runs", true)
	v.SetEnvPrefix("odestep")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if dir := os.Getenv("ODESTEP_CONFIG"); dir != "" {
		v.SetConfigName("odestep")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return Settings{}, err
			}
		}
	}

	settings = Settings{
		OutputDir:  v.GetString("output.dir"),
		PlotWidth:  v.GetFloat64("plot.width"),
		PlotHeight: v.GetFloat64("plot.height"),
		LogRuns:    v.GetBool("log.runs"),
	}
	settingsLoaded = true
	return settings, nil
}
