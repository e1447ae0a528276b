package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrymomot/docuware"
	"github.com/dmitrymomot/docuware/core/config"
	"github.com/dmitrymomot/docuware/core/logger"
	"github.com/dmitrymomot/docuware/integration/database/redis"
	"github.com/dmitrymomot/docuware/integration/storage/s3"
)

// session bundles the client with the resources to release after a command.
type session struct {
	client *docuware.Client
	log    *slog.Logger
	closer func()
}

func newLogger() *slog.Logger {
	opts := []logger.Option{
		logger.WithOutput(os.Stderr),
		logger.WithAttr(slog.String("service", "docuware-cli")),
		logger.WithLevel(slog.LevelWarn),
	}
	if debug {
		opts = append(opts, logger.WithLevel(slog.LevelDebug))
	}
	if jsonLogs {
		opts = append(opts, logger.WithJSONFormatter())
	}
	return logger.New(opts...)
}

// loadConfig reads DOCUWARE_* variables and lets flags override them.
func loadConfig() (docuware.Config, error) {
	var cfg docuware.Config
	if err := config.Load(&cfg); err != nil {
		return cfg, err
	}
	if urlRoot != "" {
		cfg.URLRoot = urlRoot
	}
	if user != "" {
		cfg.User = user
	}
	if password != "" {
		cfg.Password = password
	}
	if storagePath != "" {
		cfg.StoragePath = storagePath
	}
	return cfg, nil
}

func openSession(ctx context.Context) (*session, error) {
	log := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	opts := []docuware.Option{docuware.WithLogger(log)}
	closer := func() {}

	if redisURL != "" {
		var rcfg redis.Config
		if err := config.Load(&rcfg); err != nil {
			return nil, err
		}
		rcfg.ConnectionURL = redisURL

		rdb, err := redis.Connect(ctx, rcfg)
		if err != nil {
			return nil, err
		}
		closer = func() { _ = rdb.Close() }
		opts = append(opts, docuware.WithCache(redis.NewCache(rdb, redis.WithKeyPrefix("docuware:"))))
	}

	if s3Bucket != "" {
		var scfg s3.S3Config
		if err := config.Load(&scfg); err != nil {
			closer()
			return nil, err
		}
		scfg.Bucket, scfg.Region = s3Bucket, s3Region

		store, err := s3.New(ctx, scfg)
		if err != nil {
			closer()
			return nil, fmt.Errorf("s3 storage: %w", err)
		}
		opts = append(opts, docuware.WithStorage(store))
	}

	client, err := docuware.New(ctx, cfg, opts...)
	if err != nil {
		closer()
		return nil, err
	}

	return &session{client: client, log: log, closer: closer}, nil
}
