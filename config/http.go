package config

import "fmt"

// HTTPConfig defines the API listener.
type HTTPConfig struct {
	Address string `json:"address"`
	// Token, when set, is required as a bearer token on fee requests.
	Token string `json:"token"`
	// ShutdownTimeoutSeconds bounds graceful shutdown.
	ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *HTTPConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
	if c.ShutdownTimeoutSeconds == 0 {
		c.ShutdownTimeoutSeconds = 5
	}
}

// Validate checks mandatory fields.
func (c HTTPConfig) Validate() error {
	if c.ShutdownTimeoutSeconds < 0 {
		return fmt.Errorf("shutdown_timeout_seconds must not be negative")
	}
	return nil
}
