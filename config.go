package docuware

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	// CacheKey is the cache entry holding the session cookie.
	CacheKey = "docuware_cookie"
	// CookieTTL is how long a session cookie stays cached after login.
	CookieTTL = 24 * time.Hour
	// DefaultStoragePath is where downloads land unless overridden.
	DefaultStoragePath = "storage/app/docuware/"
)

// Config is the complete client configuration. The client never reads the
// environment; use core/config.Load to fill it from DOCUWARE_* variables.
type Config struct {
	URLRoot     string        `env:"DOCUWARE_URL_ROOT"`
	User        string        `env:"DOCUWARE_USER"`
	Password    string        `env:"DOCUWARE_PASSWORD"`
	StoragePath string        `env:"DOCUWARE_STORAGE_PATH" envDefault:"storage/app/docuware/"`
	Timeout     time.Duration `env:"DOCUWARE_TIMEOUT" envDefault:"0s"` // 0 disables the client timeout
}

// Validate checks that the required fields are present.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.URLRoot, validation.Required, is.URL),
		validation.Field(&c.User, validation.Required),
		validation.Field(&c.Password, validation.Required),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
	if err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) withDefaults() Config {
	c.URLRoot = strings.TrimRight(c.URLRoot, "/")
	if c.StoragePath == "" {
		c.StoragePath = DefaultStoragePath
	}
	return c
}
