package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by Get when a key is absent or expired.
	ErrNotFound = errors.New("cache: key not found")
	// ErrEmptyKey is returned when an operation is called with an empty key.
	ErrEmptyKey = errors.New("cache: empty key")
)

// Cache is a keyed string store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value stored under key or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key for ttl. A non-positive ttl means no expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
