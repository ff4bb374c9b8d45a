package config

import (
	"os"
	"time"

	"github.com/draftpush/cli/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is a single configuration value with its provenance.
type ResolvedValue struct {
	Key    string
	Value  string
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// resolveString applies flag > env > config > default precedence.
func resolveString(key, flagValue, envVar, configValue, defaultValue string) ResolvedValue {
	rv := ResolvedValue{Key: key, Shadowed: make(map[ConfigSource]string)}

	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, flagValue},
		{SourceEnv, os.Getenv(envVar)},
		{SourceConfig, configValue},
		{SourceDefault, defaultValue},
	}

	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if rv.Source == "" {
			rv.Value = c.value
			rv.Source = c.source
			continue
		}
		rv.Shadowed[c.source] = c.value
	}

	return rv
}

// ResolveAllOptions holds the inputs for ResolveAll.
type ResolveAllOptions struct {
	ConfigFlag   string
	EndpointFlag string
	// Config is the loaded config file; nil when none could be loaded.
	Config *Config
}

// ResolvedConfig is the effective configuration for a command run.
type ResolvedConfig struct {
	ConfigPath ResolvedValue
	Endpoint   ResolvedValue
	Token      string
	Timeout    time.Duration
}

// ResolveAll resolves every configuration value with its source.
// Token and timeout are taken from the loaded config, which already merges the
// environment.
func ResolveAll(opts ResolveAllOptions) (*ResolvedConfig, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = &Config{}
	}
	cfg = cfg.WithDefaults()

	// The config file value already includes DRAFTPUSH_ENDPOINT through viper,
	// so look at the environment separately to report the true source.
	fileEndpoint := cfg.Service.Endpoint
	if env := os.Getenv("DRAFTPUSH_ENDPOINT"); env != "" && env == fileEndpoint {
		fileEndpoint = ""
	}
	if fileEndpoint == DefaultEndpoint {
		fileEndpoint = ""
	}

	return &ResolvedConfig{
		ConfigPath: resolveString("config", opts.ConfigFlag, "DRAFTPUSH_CONFIG", "", paths.ConfigFile),
		Endpoint:   resolveString("endpoint", opts.EndpointFlag, "DRAFTPUSH_ENDPOINT", fileEndpoint, DefaultEndpoint),
		Token:      cfg.Service.Token,
		Timeout:    cfg.Service.Timeout,
	}, nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values ...ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
