// Package config loads runtime settings from flags, environment variables
// and an optional config file. Engine tables are compiled in and are not
// configurable here.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g.
// NUMBERNEXUS_LOG_LEVEL.
const EnvPrefix = "NUMBERNEXUS"

// Keys shared by flags, env and config files.
const (
	KeyAddr        = "addr"
	KeyDB          = "db"
	KeyLogLevel    = "log-level"
	KeyLogFormat   = "log-format"
	KeyLogFile     = "log-file"
	KeyLang        = "lang"
	KeyCORSOrigins = "cors-origins"
	KeyRateLimit   = "rate-limit"
	KeyRateWindow  = "rate-window"
)

// Config holds all runtime settings.
type Config struct {
	Addr        string        `mapstructure:"addr"`
	DB          string        `mapstructure:"db"`
	LogLevel    string        `mapstructure:"log-level"`
	LogFormat   string        `mapstructure:"log-format"`
	LogFile     string        `mapstructure:"log-file"`
	Lang        string        `mapstructure:"lang"`
	CORSOrigins []string      `mapstructure:"cors-origins"`
	RateLimit   int           `mapstructure:"rate-limit"`  // requests per window and IP, 0 disables
	RateWindow  time.Duration `mapstructure:"rate-window"`
}

// New returns a viper instance with defaults and environment binding.
// Callers bind their flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyAddr, ":8080")
	v.SetDefault(KeyDB, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLang, "en")
	v.SetDefault(KeyCORSOrigins, []string{"*"})
	v.SetDefault(KeyRateLimit, 120)
	v.SetDefault(KeyRateWindow, time.Minute)
}

// Load reads the config file (explicit path, or numbernexus.{yaml,toml,json}
// in the search paths) and unmarshals the merged settings. A missing
// optional file is not an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("numbernexus")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/numbernexus")
		v.AddConfigPath("/etc/numbernexus")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail later at startup.
func (c *Config) Validate() error {
	var errs []error
	switch c.LogFormat {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log-format must be console or json, got %q", c.LogFormat))
	}
	if c.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("rate-limit must not be negative, got %d", c.RateLimit))
	}
	if c.RateLimit > 0 && c.RateWindow <= 0 {
		errs = append(errs, fmt.Errorf("rate-window must be positive, got %s", c.RateWindow))
	}
	return errors.Join(errs...)
}
