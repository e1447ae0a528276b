package docuware

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/docuware/core/cache"
	"github.com/dmitrymomot/docuware/core/logger"
)

// EnsureSession loads the cached cookie and logs in when there is none.
// Every document operation calls it first, so a cookie purged by a 401 is
// replaced on the next call.
func (c *Client) EnsureSession(ctx context.Context) error {
	cookie, err := c.cache.Get(ctx, CacheKey)
	if err != nil && !errors.Is(err, cache.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrSessionStore, err)
	}

	if cookie != "" {
		c.mu.Lock()
		c.cookie = cookie
		c.mu.Unlock()
		return nil
	}

	_, err = c.Login(ctx)
	return err
}

// Login ends any existing session and opens a new one. The new cookie is
// cached for CookieTTL. It reports whether the logon response was 2xx.
func (c *Client) Login(ctx context.Context) (bool, error) {
	if _, err := c.Logout(ctx); err != nil {
		c.log.WarnContext(ctx, "logout before login failed", logger.Error(err))
	}

	form := url.Values{
		"LicenseType":                   {""},
		"Password":                      {c.cfg.Password},
		"RedirectToMyselfInCaseOfError": {"false"},
		"RememberMe":                    {"false"},
		"UserName":                      {c.cfg.User},
	}

	resp, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/Account/Logon",
		body:   strings.NewReader(form.Encode()),
		header: http.Header{
			"Accept":       {"application/json"},
			"Content-Type": {"application/x-www-form-urlencoded"},
		},
	})
	if err != nil {
		return false, err
	}
	defer drain(resp)

	if err := c.checkResponse(ctx, resp); err != nil {
		return false, err
	}

	if err := c.setCookie(ctx, resp.Cookies()); err != nil {
		return false, err
	}

	c.log.InfoContext(ctx, "session established", logger.Event("login"))
	return successful(resp), nil
}

// Logout ends the session on the server and clears the cookie locally and
// in the cache whatever the server answers. The logoff call is always made.
// When no cookie was held a failed logoff reports false without an error,
// so calling Logout twice never fails on the second call.
func (c *Client) Logout(ctx context.Context) (ok bool, err error) {
	held := c.Cookie() != ""

	defer func() {
		if derr := c.deleteCookie(ctx); derr != nil {
			err = errors.Join(err, derr)
		}
		c.log.InfoContext(ctx, "session closed", logger.Event("logout"), logger.Error(err))
	}()

	resp, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/Account/Logoff",
	})
	if err == nil {
		defer drain(resp)
		err = c.checkResponse(ctx, resp)
	}
	if err != nil {
		if !held {
			c.log.DebugContext(ctx, "logoff without session failed", logger.Error(err))
			return false, nil
		}
		return false, err
	}
	return successful(resp), nil
}

// checkResponse is the single place responses are judged. A 401 purges the
// session before the error is returned; the call that saw it is not retried.
func (c *Client) checkResponse(ctx context.Context, resp *http.Response) error {
	if resp.StatusCode == http.StatusUnauthorized {
		var path string
		if resp.Request != nil {
			path = resp.Request.URL.Path
		}
		c.log.WarnContext(ctx, "session rejected, purging cookie",
			logger.Path(path),
			logger.StatusCode(resp.StatusCode),
		)
		if err := c.deleteCookie(ctx); err != nil {
			c.log.ErrorContext(ctx, "failed to purge cookie", logger.Error(err))
		}
	}

	if successful(resp) {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.WarnContext(ctx, "failed to read error body", logger.Error(err))
	}
	return &ResponseError{Status: resp.StatusCode, Body: string(body)}
}

// BuildCookieHeader joins cookies as "Name=Value; " pairs, skipping empty values.
func BuildCookieHeader(cookies []*http.Cookie) string {
	var b strings.Builder
	for _, ck := range cookies {
		if ck == nil || ck.Value == "" {
			continue
		}
		b.WriteString(ck.Name)
		b.WriteByte('=')
		b.WriteString(ck.Value)
		b.WriteString("; ")
	}
	return b.String()
}

func (c *Client) setCookie(ctx context.Context, cookies []*http.Cookie) error {
	header := BuildCookieHeader(cookies)
	if header == "" {
		return ErrEmptySessionCookie
	}

	c.mu.Lock()
	c.cookie = header
	c.mu.Unlock()

	if err := c.cache.Set(ctx, CacheKey, header, CookieTTL); err != nil {
		return fmt.Errorf("%w: %w", ErrSessionStore, err)
	}
	return nil
}

func (c *Client) deleteCookie(ctx context.Context) error {
	c.mu.Lock()
	c.cookie = ""
	c.mu.Unlock()

	if err := c.cache.Delete(ctx, CacheKey); err != nil {
		return fmt.Errorf("%w: %w", ErrSessionStore, err)
	}
	return nil
}
