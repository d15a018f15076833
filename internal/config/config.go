// Package config loads docmapper settings from an optional config file and
// DOCMAPPER_ environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by Load, e.g.
// DOCMAPPER_LOG_LEVEL for log.level.
const EnvPrefix = "DOCMAPPER_"

// Config holds the settings of the command line tool.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Schema string       `mapstructure:"schema"` // Default entity schema file
	Output OutputConfig `mapstructure:"output"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // DEBUG, INFO, WARN, ERROR
	Format string `mapstructure:"format"` // json, text
	Source bool   `mapstructure:"source"`
}

// OutputConfig configures how documents are printed.
type OutputConfig struct {
	Canonical bool `mapstructure:"canonical"` // Canonical instead of relaxed Extended JSON
	Indent    bool `mapstructure:"indent"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "WARN", Format: "text"},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.source", d.Log.Source)
	v.SetDefault("schema", d.Schema)
	v.SetDefault("output.canonical", d.Output.Canonical)
	v.SetDefault("output.indent", d.Output.Indent)
}

// Load reads path, if given, then applies environment overrides. Without a
// path, docmapper.yaml in the working directory is used when present.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("docmapper")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// DOCMAPPER_LOG_LEVEL -> log.level
	for _, env := range os.Environ() {
		key, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}

		prop := strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(key, EnvPrefix), "_", "."))
		v.Set(prop, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
