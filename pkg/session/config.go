package session

import "github.com/incomeclarity/clientstate/pkg/kvstore"

// Config holds gateway configuration
type Config struct {
	// KeyPrefix namespaces the default key set (default: "income_clarity_")
	KeyPrefix string `env:"CLIENTSTATE_KEY_PREFIX" envDefault:"income_clarity_"`

	// MaxSize caps a stored value in bytes before decoding
	MaxSize int `env:"CLIENTSTATE_MAX_SIZE" envDefault:"65536"`

	// ClearOnCorruption removes the session keys once a corrupted session is observed
	ClearOnCorruption bool `env:"CLIENTSTATE_CLEAR_ON_CORRUPTION" envDefault:"true"`
}

// DefaultConfig returns default gateway configuration
func DefaultConfig() Config {
	return Config{
		KeyPrefix:         DefaultKeyPrefix,
		MaxSize:           64 << 10,
		ClearOnCorruption: true,
	}
}

// NewFromConfig creates a new Gateway from the provided Config.
func NewFromConfig(cfg Config, store kvstore.Storage, opts ...Option) *Gateway {
	configOpts := []Option{
		WithConfig(cfg),
	}

	configOpts = append(configOpts, opts...)

	return New(store, configOpts...)
}
