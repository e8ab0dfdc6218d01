package main

import (
	"strconv"

	"github.com/spf13/viper"

	"github.com/ezoic/regdiag/pkg/errors"
)

// config holds the run parameters. The cleaning and recoding tables are fixed
// in-process literals; only these knobs are configurable.
//
// Precedence: flags > environment (REGDIAG_*) > config file > defaults.
type config struct {
	Input     string  `mapstructure:"input"`
	Delimiter string  `mapstructure:"delimiter"`
	Alpha     float64 `mapstructure:"alpha"`
	LogLevel  string  `mapstructure:"log_level"`
}

func defaultConfig() *config {
	return &config{
		Alpha:    0.05,
		LogLevel: "info",
	}
}

// loadConfig loads configuration from file, env, and defaults. A cfgFile given
// explicitly must load; the implicit ./regdiag.yaml is optional.
func loadConfig(cfgFile string) (*config, error) {
	v := viper.New()
	v.SetEnvPrefix("REGDIAG")
	v.AutomaticEnv()

	v.SetDefault("input", "")
	v.SetDefault("delimiter", "")
	v.SetDefault("alpha", 0.05)
	v.SetDefault("log_level", "info")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "cmd: read config")
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("regdiag")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "cmd: unmarshal config")
	}
	return &c, nil
}

// validate rejects parameter values no command can run with.
func (c *config) validate() error {
	if c.Input == "" {
		return errors.NewValueError("cmd",
			"no input file: set --input, REGDIAG_INPUT, or \"input\" in the config file")
	}
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return errors.NewValueError("cmd",
			"alpha must be strictly between 0 and 1, got "+strconv.FormatFloat(c.Alpha, 'g', -1, 64))
	}
	return nil
}

// parseDelimiter maps a delimiter spelling to its rune. "tab" and "\t" name
// the tab character; any other single-character string is used as-is.
func parseDelimiter(s string) (rune, error) {
	switch s {
	case "tab", "\\t", "\t":
		return '\t', nil
	}
	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], nil
	}
	return 0, errors.NewValueError("cmd",
		"unsupported delimiter "+strconv.Quote(s)+" (use a single character or \"tab\")")
}
