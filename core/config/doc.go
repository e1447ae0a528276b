// Package config loads environment variables into typed structs with
// caarlos0/env. A .env file in the working directory is read once on first
// use, and each struct type is parsed once and cached for the process.
//
//	import "github.com/dmitrymomot/docuware/core/config"
//
//	var cfg docuware.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	// Or panic on failure (useful at startup)
//	config.MustLoad(&cfg)
//
// Different types are cached independently, so docuware.Config and
// redis.Config can be loaded side by side. Reset clears the cache in tests.
package config
