package docuware

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/docuware/core/cache"
	"github.com/dmitrymomot/docuware/core/logger"
	"github.com/dmitrymomot/docuware/core/storage"
)

// defaultCache backs clients created without WithCache, so every such client
// in the process shares one session.
var defaultCache = cache.NewMemory()

// Client talks to a single DocuWare Platform endpoint as a single user.
type Client struct {
	cfg     Config
	http    *http.Client
	cache   cache.Cache
	storage storage.Storage
	log     *slog.Logger
	now     func() time.Time

	mu     sync.RWMutex
	cookie string
}

// New validates cfg, wires the collaborators and makes sure a session exists,
// logging in when the cache holds no cookie.
func New(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	c := &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		cache:   defaultCache,
		storage: storage.NewLocal(),
		log:     logger.Discard(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(logger.Component("docuware"))

	if err := c.EnsureSession(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Config returns the effective configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// Cookie returns the session cookie currently held by the client.
func (c *Client) Cookie() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cookie
}

// request describes one call to the API.
type request struct {
	method string
	path   string // appended verbatim to URLRoot, query included
	body   io.Reader
	header http.Header
}

// do sends req with the current cookie attached. The caller owns resp.Body.
func (c *Client) do(ctx context.Context, req request) (*http.Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.cfg.URLRoot+req.path, req.body)
	if err != nil {
		return nil, fmt.Errorf("%w: build %s %s: %w", ErrTransport, req.method, req.path, err)
	}

	for k, vs := range req.header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if cookie := c.Cookie(); cookie != "" {
		httpReq.Header.Set("Cookie", cookie)
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.ErrorContext(ctx, "request failed",
			logger.Method(req.method),
			logger.Path(httpReq.URL.Path),
			logger.RequestID(requestID),
			logger.Elapsed(start),
			logger.Error(err),
		)
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, req.method, httpReq.URL.Path, err)
	}

	c.log.DebugContext(ctx, "request completed",
		logger.Method(req.method),
		logger.Path(httpReq.URL.Path),
		logger.RequestID(requestID),
		logger.StatusCode(resp.StatusCode),
		logger.Elapsed(start),
	)
	return resp, nil
}

func successful(resp *http.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// drain discards the rest of the body so the connection can be reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
