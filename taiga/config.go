package taiga

import (
	"time"
)

// AuthType selects how the auth token is presented to the API.
type AuthType string

// Authentication schemes understood by the Taiga API.
const (
	// AuthBearer sends "Authorization: Bearer <token>" (user auth token).
	AuthBearer AuthType = "bearer"

	// AuthApplication sends "Authorization: Application <token>"
	// (application token issued for external integrations).
	AuthApplication AuthType = "application"
)

// Config holds the configuration for the Taiga client.
type Config struct {
	// URL is the base URL of the Taiga instance, without the /api/v1
	// prefix. For the hosted service: https://api.taiga.io
	URL string `yaml:"url"`

	// Auth contains authentication configuration. Obtaining and refreshing
	// the token is the caller's concern; the client only presents it.
	Auth AuthConfig `yaml:"auth"`

	// HTTP contains HTTP client configuration.
	HTTP HTTPConfig `yaml:"http"`

	// MaxPages bounds pagination traversal for listing operations.
	// Zero selects the default bound of 100 pages.
	MaxPages int `yaml:"max_pages"`
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	// Type is the authentication scheme. Defaults to bearer.
	Type AuthType `yaml:"type"`

	// Token is a ready-to-use auth token.
	Token string `yaml:"token"`
}

// HTTPConfig holds HTTP client configuration.
type HTTPConfig struct {
	// Timeout is the request timeout. Zero selects the transport default.
	Timeout time.Duration `yaml:"timeout"`

	// MaxRetries is the maximum number of retry attempts for transient
	// failures. Zero selects the transport default.
	MaxRetries int `yaml:"max_retries"`

	// RetryWait is the initial wait between retries.
	RetryWait time.Duration `yaml:"retry_wait"`
}

// Validate checks the configuration for required fields.
func (c *Config) Validate() error {
	if c.URL == "" {
		return ErrConfigURLRequired
	}
	if c.Auth.Token == "" {
		return ErrConfigTokenRequired
	}
	return nil
}

// authType returns the configured auth scheme, defaulting to bearer.
func (c *Config) authType() AuthType {
	if c.Auth.Type == "" {
		return AuthBearer
	}
	return c.Auth.Type
}
