package session

import (
	"log/slog"
	"time"

	"github.com/incomeclarity/clientstate/pkg/validator"
)

// Option is a functional option for configuring the Gateway
type Option func(*Gateway)

// WithConfig sets custom configuration
func WithConfig(config Config) Option {
	return func(g *Gateway) {
		g.config = config
	}
}

// WithKeys replaces the key set derived from Config.KeyPrefix
func WithKeys(keys KeySet) Option {
	return func(g *Gateway) {
		g.keys = keys
	}
}

// WithMaxSize sets the largest stored value accepted, in bytes
func WithMaxSize(n int) Option {
	return func(g *Gateway) {
		g.config.MaxSize = n
	}
}

// WithClearOnCorruption toggles clearing the session keys when a corrupted session is read
func WithClearOnCorruption(enabled bool) Option {
	return func(g *Gateway) {
		g.config.ClearOnCorruption = enabled
	}
}

// WithLogger sets the logger used for corruption and storage diagnostics
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithClock sets the time source used for expiry checks
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) {
		if now != nil {
			g.now = now
		}
	}
}

// WithRegistry sets the validator registry
func WithRegistry(r *validator.Registry) Option {
	return func(g *Gateway) {
		if r != nil {
			g.registry = r
		}
	}
}
