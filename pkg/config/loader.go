package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// entry holds the parsed value of one configuration type.
type entry struct {
	once  sync.Once
	value any
	err   error
}

var (
	mu    sync.Mutex
	cache = make(map[reflect.Type]*entry)

	dotenv sync.Once
)

// Load parses the process environment into v using `env` struct tags.
// Each configuration type is parsed once; later calls copy the cached value.
// A failed parse is not cached, so the next call tries again.
//
// The default .env file in the working directory is read, if present,
// before the first parse.
//
//	type StoreConfig struct {
//		Prefix  string `env:"CLIENTSTATE_KEY_PREFIX" envDefault:"income_clarity_"`
//		MaxSize int    `env:"CLIENTSTATE_MAX_SIZE" envDefault:"65536"`
//	}
//
//	var cfg StoreConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	dotenv.Do(func() { _ = godotenv.Load() })

	t := reflect.TypeFor[T]()

	mu.Lock()
	e, ok := cache[t]
	if !ok {
		e = &entry{}
		cache[t] = e
	}
	mu.Unlock()

	e.once.Do(func() {
		var cfg T
		if err := env.Parse(&cfg); err != nil {
			e.err = errors.Join(ErrParsingConfig, err)
			return
		}
		e.value = cfg
	})

	if e.err != nil {
		mu.Lock()
		if cache[t] == e {
			delete(cache, t)
		}
		mu.Unlock()
		return e.err
	}

	*v = e.value.(T)
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

// LoadEnv loads variables from the given .env files into the process
// environment, later files overriding earlier ones and the existing
// environment. With no paths the default .env file is used.
func LoadEnv(paths ...string) error {
	if err := godotenv.Overload(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// MustLoadEnv works like LoadEnv but panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

// ResetCache forgets every cached configuration.
func ResetCache() {
	mu.Lock()
	defer mu.Unlock()
	clear(cache)
}

// ForceReload drops the cached value for T and parses it again.
func ForceReload[T any](v *T) error {
	mu.Lock()
	delete(cache, reflect.TypeFor[T]())
	mu.Unlock()

	return Load(v)
}
