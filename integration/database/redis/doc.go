// Package redis connects to Redis and exposes it as a cache.Cache so the
// DocuWare session cookie can be shared by every process pointing at the same
// instance.
//
// Connect validates the URL, retries the initial ping, and returns a ready
// client. Healthcheck wraps a ping for readiness probes. NewCache adapts a
// client to cache.Cache with an optional key prefix.
//
//	cfg := redis.Config{
//		ConnectionURL:  "redis://localhost:6379/0",
//		RetryAttempts:  3,
//		RetryInterval:  5 * time.Second,
//		ConnectTimeout: 30 * time.Second,
//	}
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	store := redis.NewCache(client, redis.WithKeyPrefix("myapp:"))
//	dw, err := docuware.New(ctx, dwCfg, docuware.WithCache(store))
//
// All instances sharing a key see one session: a login or logout by any of
// them replaces the value for everyone.
package redis
