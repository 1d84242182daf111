package config

import (
	"fmt"
	"time"
)

// DefaultJWTLeeway absorbs clock skew between token issuer and server.
const DefaultJWTLeeway = 30 * time.Second

// minSecretLength keeps HS256 keys from being trivially guessable.
const minSecretLength = 16

// JWTConfig holds what the server needs to verify bearer tokens.
type JWTConfig struct {
	Secret string
	Leeway time.Duration
}

// JWT returns the token settings. A nil result means authentication is disabled.
func (c *Config) JWT() (*JWTConfig, error) {
	if c.JWTSecret == "" {
		return nil, nil
	}
	cfg := &JWTConfig{Secret: c.JWTSecret, Leeway: DefaultJWTLeeway}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if len(c.Secret) < minSecretLength {
		return &ValidationError{
			Field:   "jwt_secret",
			Message: fmt.Sprintf("must be at least %d characters, got %d", minSecretLength, len(c.Secret)),
		}
	}
	if c.Leeway < 0 {
		c.Leeway = 0
	}
	return nil
}
