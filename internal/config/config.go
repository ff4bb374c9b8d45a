// Package config provides configuration loading and management.
package config

import "time"

// DefaultEndpoint is the management service endpoint used when none is configured.
const DefaultEndpoint = "https://partners.draftpush.dev/api/graphql"

// DefaultTimeout bounds a single request to the management service.
const DefaultTimeout = 60 * time.Second

// ServiceConfig contains management service settings.
type ServiceConfig struct {
	// Endpoint is the URL drafts are pushed to.
	// Env: DRAFTPUSH_ENDPOINT
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint,omitempty"`

	// Token is sent as a bearer token when set.
	// Env: DRAFTPUSH_TOKEN
	Token string `mapstructure:"token" yaml:"token,omitempty"`

	// Timeout bounds each request. Zero means DefaultTimeout.
	// Env: DRAFTPUSH_TIMEOUT
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout,omitempty"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// Config represents the draftpush CLI configuration loaded from
// ~/.draftpush/config.yaml.
type Config struct {
	Service ServiceConfig `mapstructure:"service" yaml:"service"`
	Log     LogConfig     `mapstructure:"log" yaml:"log,omitempty"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `draftpush config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			Endpoint: DefaultEndpoint,
			Timeout:  DefaultTimeout,
		},
	}
}

// WithDefaults returns a copy of c with unset fields filled from DefaultConfig.
func (c *Config) WithDefaults() *Config {
	out := *c
	if out.Service.Endpoint == "" {
		out.Service.Endpoint = DefaultEndpoint
	}
	if out.Service.Timeout <= 0 {
		out.Service.Timeout = DefaultTimeout
	}
	return &out
}
