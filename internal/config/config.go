// Package config loads the defaults used by the command line tools.
// Values come from an optional jxtmpl.env file and the environment,
// the latter taking precedence.
package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	keyEncoding      = "JXTMPL_ENCODING"
	keyHTMLEntities  = "JXTMPL_HTML_ENTITIES"
	keyStrictNesting = "JXTMPL_STRICT_NESTING"
	keyCheckExpr     = "JXTMPL_CHECK_EXPR"
	keyOutput        = "JXTMPL_OUTPUT"
)

// Output formats understood by jxtmpl-lint.
const (
	OutputEvents = "events"
	OutputTree   = "tree"
)

type Config struct {
	Encoding      string `mapstructure:"JXTMPL_ENCODING"`
	HTMLEntities  bool   `mapstructure:"JXTMPL_HTML_ENTITIES"`
	StrictNesting bool   `mapstructure:"JXTMPL_STRICT_NESTING"`
	CheckExpr     bool   `mapstructure:"JXTMPL_CHECK_EXPR"`
	Output        string `mapstructure:"JXTMPL_OUTPUT"`
}

// Load reads path/jxtmpl.env if it exists. A missing file is not an
// error; the defaults and the environment still apply.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetDefault(keyEncoding, "")
	v.SetDefault(keyHTMLEntities, false)
	v.SetDefault(keyStrictNesting, false)
	v.SetDefault(keyCheckExpr, false)
	v.SetDefault(keyOutput, OutputEvents)

	if path != "" {
		v.AddConfigPath(path)
	}
	v.SetConfigName("jxtmpl")
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, errors.Wrap(err, "failed to read configuration")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode configuration")
	}

	switch cfg.Output {
	case OutputEvents, OutputTree:
	default:
		return Config{}, errors.Errorf("unknown output format %q", cfg.Output)
	}
	return cfg, nil
}
