// Package config loads tool settings from an optional settings.toml,
// providing defaults for every key. Settings cover the analysis sweep, plot
// output and the websocket service; motor parameters come from presets, not
// from here.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"motorbench/internal/consts"
)

type Settings struct {
	Analysis AnalysisSettings `mapstructure:"analysis" validate:"required"`
	Plot     PlotSettings     `mapstructure:"plot" validate:"required"`
	Server   ServerSettings   `mapstructure:"server" validate:"required"`
}

type AnalysisSettings struct {
	GridPoints           int     `mapstructure:"grid_points" validate:"gte=2"`
	RPMSafetyMargin      float64 `mapstructure:"rpm_safety_margin" validate:"gte=1"`
	MaxIterations        int     `mapstructure:"max_iterations" validate:"gte=1"`
	RelaxationFactor     float64 `mapstructure:"relaxation_factor" validate:"gt=0,lte=1"`
	ConvergenceThreshold float64 `mapstructure:"convergence_threshold" validate:"gt=0"`
}

type PlotSettings struct {
	Width  float64 `mapstructure:"width" validate:"gt=0"`  // inches
	Height float64 `mapstructure:"height" validate:"gt=0"` // inches
}

type ServerSettings struct {
	Addr string `mapstructure:"addr" validate:"required"`
}

var validate = validator.New()

// Load reads settings from path ("" selects ./settings.toml). A missing file
// is not an error; the defaults apply.
func Load(path string) (*Settings, error) {
	v := viper.New()

	v.SetDefault("analysis.grid_points", 50)
	v.SetDefault("analysis.rpm_safety_margin", 1.1)
	v.SetDefault("analysis.max_iterations", consts.MaxIterations)
	v.SetDefault("analysis.relaxation_factor", consts.RelaxationFactor)
	v.SetDefault("analysis.convergence_threshold", consts.ConvergenceThreshold)
	v.SetDefault("plot.width", 6.0)
	v.SetDefault("plot.height", 6.0)
	v.SetDefault("server.addr", ":9000")

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("settings")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("reading settings: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshaling settings: %w", err)
	}
	if err := validate.Struct(&s); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}
	return &s, nil
}
