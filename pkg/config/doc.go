// Package config loads typed configuration from the process environment.
//
// It combines github.com/joho/godotenv for .env files with
// github.com/caarlos0/env/v11 for struct tag parsing, and caches one parsed
// value per configuration type for the life of the process.
//
// # Usage
//
//	type Config struct {
//	    KeyPrefix string `env:"CLIENTSTATE_KEY_PREFIX" envDefault:"income_clarity_"`
//	    MaxSize   int    `env:"CLIENTSTATE_MAX_SIZE" envDefault:"65536"`
//	}
//
//	// Optional: merge extra .env files into the environment first.
//	if err := config.LoadEnv("deploy/.env"); err != nil {
//	    return err
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// MustLoad and MustLoadEnv panic instead of returning an error.
//
// # Errors
//
//   - ErrParsingConfig  – the environment does not satisfy the struct tags
//   - ErrNilPointer     – Load was given a nil pointer
//   - ErrLoadingEnvFile – a .env file could not be read
//
// # Testing
//
// ResetCache clears every cached type; ForceReload re-parses a single one
// after the environment changed.
package config
