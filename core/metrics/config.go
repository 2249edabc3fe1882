package metrics

import (
	"fmt"

	"github.com/kilianp07/tollfee/core/factory"
)

// Config defines settings for fee recorders and the metrics endpoint.
type Config struct {
	Sinks             []factory.ModuleConfig `json:"sinks" yaml:"sinks"`
	PrometheusEnabled bool                   `json:"prometheus_enabled" yaml:"prometheus_enabled"`
	PrometheusPort    string                 `json:"prometheus_port" yaml:"prometheus_port"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.PrometheusPort == "" {
		c.PrometheusPort = ":9090"
	}
}

// Validate checks that every sink names a type.
func (c Config) Validate() error {
	for i, s := range c.Sinks {
		if s.Type == "" {
			return fmt.Errorf("metrics sink %d: type is required", i)
		}
	}
	return nil
}
