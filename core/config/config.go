package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrNilConfig is returned when Load is called with a nil pointer.
var ErrNilConfig = errors.New("config: destination must be a non-nil pointer")

var (
	envOnce sync.Once
	cache   sync.Map // map[reflect.Type]any
	mu      sync.Mutex
)

// loadDotEnv reads .env from the working directory once.
// A missing file is not an error.
func loadDotEnv() {
	envOnce.Do(func() {
		_ = godotenv.Load()
	})
}

// Load parses environment variables into cfg.
// The first successful load of a type is cached and copied into later calls.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilConfig
	}

	loadDotEnv()

	typ := reflect.TypeFor[T]()
	if cached, ok := cache.Load(typ); ok {
		*cfg = cached.(T)
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	// Another goroutine may have populated it while we waited.
	if cached, ok := cache.Load(typ); ok {
		*cfg = cached.(T)
		return nil
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", typ, err)
	}

	cache.Store(typ, parsed)
	*cfg = parsed
	return nil
}

// MustLoad is like Load but panics on failure.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Reset drops every cached configuration. Intended for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	cache.Range(func(key, _ any) bool {
		cache.Delete(key)
		return true
	})
}
