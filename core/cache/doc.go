// Package cache defines the key/value store that holds shared session state
// and ships a thread-safe in-memory implementation.
//
// The Cache interface is deliberately small: string keys, string values and a
// per-entry time-to-live. Any process-wide or fleet-wide backend can satisfy it;
// integration/database/redis provides one backed by Redis.
//
//	import "github.com/dmitrymomot/docuware/core/cache"
//
//	c := cache.NewMemory()
//
//	if err := c.Set(ctx, "docuware_cookie", "dwauth=abc; ", 24*time.Hour); err != nil {
//		return err
//	}
//
//	v, err := c.Get(ctx, "docuware_cookie")
//	if errors.Is(err, cache.ErrNotFound) {
//		// absent or expired
//	}
//
// Writers do not coordinate: the last Set on a key wins for every reader.
package cache
