package docuware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/docuware/core/cache"
	"github.com/dmitrymomot/docuware/core/storage"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. Its Timeout overrides Config.Timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithCache sets the session store. Clients sharing a cache share a session.
func WithCache(store cache.Cache) Option {
	return func(c *Client) {
		if store != nil {
			c.cache = store
		}
	}
}

// WithStorage sets where downloaded documents are written.
func WithStorage(s storage.Storage) Option {
	return func(c *Client) {
		if s != nil {
			c.storage = s
		}
	}
}

// WithLogger sets the logger. Records are discarded by default.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithClock overrides the time source used for download file names.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

type downloadOptions struct {
	dir string
}

// DownloadOption configures a single DownloadDocument call.
type DownloadOption func(*downloadOptions)

// WithStoragePath writes the download into dir instead of Config.StoragePath.
func WithStoragePath(dir string) DownloadOption {
	return func(o *downloadOptions) {
		if dir != "" {
			o.dir = dir
		}
	}
}
