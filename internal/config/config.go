// Package config loads qroute's runtime configuration via viper: a
// config file plus environment variable overrides, the shape
// internal/app/app.go already expects (ServerOptions.C,
// options.C.GetBool("debug")) but that the teacher repo never
// committed alongside its viper dependency.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config wraps a *viper.Viper so callers keep using the familiar
// GetBool/GetInt/GetString accessors viper already provides.
type Config struct {
	*viper.Viper
}

// Options controls how Load locates configuration.
type Options struct {
	// Path is a directory to search for a "qroute" config file (any
	// format viper supports: yaml, json, toml, ...). Empty skips file
	// loading entirely.
	Path string
	// EnvPrefix namespaces environment variable overrides, e.g.
	// QROUTE_DEBUG for the "debug" key. Defaults to "QROUTE".
	EnvPrefix string
}

// Defaults applied before any file/env override is consulted.
var defaults = map[string]any{
	"debug":                 false,
	"port":                  8080,
	"expander":              "default",
	"k":                     8,
	"cost":                  "critical-path",
	"latency":               "uniform-1-2-6",
	"initialMappingRounds":  0,
}

// Load builds a Config from defaults, an optional config file, and
// environment variables, in that increasing order of precedence.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	prefix := opts.EnvPrefix
	if prefix == "" {
		prefix = "QROUTE"
	}
	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Path != "" {
		v.SetConfigName("qroute")
		v.AddConfigPath(opts.Path)
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, err
			}
		}
	}

	return &Config{Viper: v}, nil
}
