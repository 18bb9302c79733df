package ratelimiter

import (
	"context"
	"time"
)

const (
	// DefaultMaxRequests is the admission quota per window when the
	// config does not set one.
	DefaultMaxRequests = 100

	// DefaultWindow is the sliding window length when the config does
	// not set one.
	DefaultWindow = time.Minute
)

// Limiter decides whether a request from the given key should be admitted.
// The returned duration is a backoff hint for rejected requests, zero on
// admission.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration)
	Config() Config
}

type Config struct {
	// MaxRequests is the number of admissions allowed per Window.
	MaxRequests int

	// Window is the length of the trailing time window.
	Window time.Duration

	Enabled   bool
	KeyPrefix string
}

// WithDefaults returns a copy of the config with zero values replaced by
// the package defaults. The limiter constructors call this, so a zero
// MaxRequests/Window config is valid.
func (c Config) WithDefaults() Config {
	if c.MaxRequests <= 0 {
		c.MaxRequests = DefaultMaxRequests
	}
	if c.Window <= 0 {
		c.Window = DefaultWindow
	}
	return c
}
