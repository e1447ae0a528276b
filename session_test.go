package docuware_test

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/docuware"
	"github.com/dmitrymomot/docuware/core/cache"
)

// sentCookie is testCookie as the server sees it: header values are trimmed.
const sentCookie = "DWPLATFORMAUTH=token-1;"

// mockCache implements cache.Cache for testing
type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("logs in when cache is empty", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		c := env.newClient(t)

		assert.Equal(t, testCookie, c.Cookie())
		assert.Equal(t, 1, env.server.count(http.MethodPost, "/Account/Logon"))
		logoff, found := env.server.last(http.MethodGet, "/Account/Logoff")
		require.True(t, found, "login always logs off first")
		assert.Empty(t, logoff.Cookie)

		cached, err := env.cache.Get(context.Background(), docuware.CacheKey)
		require.NoError(t, err)
		assert.Equal(t, testCookie, cached)

		exp, ok := env.cache.ExpiresAt(docuware.CacheKey)
		require.True(t, ok)
		assert.Equal(t, testNow.Add(24*time.Hour), exp)
	})

	t.Run("sends credentials as form", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		env.newClient(t)

		req, ok := env.server.last(http.MethodPost, "/Account/Logon")
		require.True(t, ok)
		assert.Equal(t, "application/json", req.Accept)
		assert.Equal(t, "application/x-www-form-urlencoded", req.ContentType)
		assert.Empty(t, req.Cookie)

		form, err := url.ParseQuery(string(req.Body))
		require.NoError(t, err)
		assert.Equal(t, url.Values{
			"LicenseType":                   {""},
			"Password":                      {"s3cret&pass"},
			"RedirectToMyselfInCaseOfError": {"false"},
			"RememberMe":                    {"false"},
			"UserName":                      {"api-user"},
		}, form)
	})

	t.Run("reuses cached cookie", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		require.NoError(t, env.cache.Set(context.Background(), docuware.CacheKey, "DWPLATFORMAUTH=cached; ", time.Hour))

		c := env.newClient(t)

		assert.Equal(t, "DWPLATFORMAUTH=cached; ", c.Cookie())
		assert.Empty(t, env.server.recorded())
	})

	t.Run("clients sharing a cache share the session", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		first := env.newClient(t)
		second := env.newClient(t)

		assert.Equal(t, first.Cookie(), second.Cookie())
		assert.Equal(t, 1, env.server.count(http.MethodPost, "/Account/Logon"))
	})

	t.Run("rejected credentials", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		env.server.setLogon(http.StatusUnauthorized)

		_, err := docuware.New(context.Background(), env.server.config(), env.options()...)
		require.Error(t, err)
		assert.ErrorIs(t, err, docuware.ErrUnauthorized)
		assert.Contains(t, err.Error(), "401")
		assert.Contains(t, err.Error(), "Invalid user name or password")

		_, err = env.cache.Get(context.Background(), docuware.CacheKey)
		assert.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("invalid config", func(t *testing.T) {
		t.Parallel()

		_, err := docuware.New(context.Background(), docuware.Config{URLRoot: "not a url"})
		assert.ErrorIs(t, err, docuware.ErrInvalidConfig)
	})

	t.Run("cache failure", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		store := &mockCache{}
		store.On("Get", mock.Anything, docuware.CacheKey).Return("", errors.New("connection refused"))

		_, err := docuware.New(context.Background(), env.server.config(), docuware.WithCache(store))
		assert.ErrorIs(t, err, docuware.ErrSessionStore)
		assert.Empty(t, env.server.recorded())
	})
}

func TestClient_Login(t *testing.T) {
	t.Parallel()

	t.Run("logs off the previous session first", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		c := env.newClient(t)
		env.server.reset()
		env.server.setLogon(http.StatusOK, &http.Cookie{Name: "DWPLATFORMAUTH", Value: "token-2"})

		ok, err := c.Login(context.Background())
		require.NoError(t, err)
		assert.True(t, ok)

		reqs := env.server.recorded()
		require.Len(t, reqs, 2)
		assert.Equal(t, "/Account/Logoff", reqs[0].Path)
		assert.Equal(t, sentCookie, reqs[0].Cookie)
		assert.Equal(t, "/Account/Logon", reqs[1].Path)
		assert.Empty(t, reqs[1].Cookie, "logon must not carry the old cookie")

		assert.Equal(t, "DWPLATFORMAUTH=token-2; ", c.Cookie())
	})

	t.Run("logs in even when logoff fails", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		c := env.newClient(t)
		env.server.setLogoff(http.StatusInternalServerError)

		ok, err := c.Login(context.Background())
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, testCookie, c.Cookie())
	})

	t.Run("logon without cookies", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		env.server.setLogon(http.StatusOK, &http.Cookie{Name: "DWPLATFORMBROWSERID", Value: ""})

		_, err := docuware.New(context.Background(), env.server.config(), env.options()...)
		assert.ErrorIs(t, err, docuware.ErrEmptySessionCookie)
	})

	t.Run("stores cookie for exactly one day", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		store := &mockCache{}
		store.On("Get", mock.Anything, docuware.CacheKey).Return("", cache.ErrNotFound)
		store.On("Delete", mock.Anything, docuware.CacheKey).Return(nil)
		store.On("Set", mock.Anything, docuware.CacheKey, testCookie, 24*time.Hour).Return(nil)

		_, err := docuware.New(context.Background(), env.server.config(), docuware.WithCache(store))
		require.NoError(t, err)
		store.AssertExpectations(t)
	})
}

func TestClient_Logout(t *testing.T) {
	t.Parallel()

	t.Run("clears cookie on success", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		c := env.newClient(t)

		ok, err := c.Logout(context.Background())
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, c.Cookie())

		req, found := env.server.last(http.MethodGet, "/Account/Logoff")
		require.True(t, found)
		assert.Equal(t, sentCookie, req.Cookie)

		_, err = env.cache.Get(context.Background(), docuware.CacheKey)
		assert.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("clears cookie when server fails", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		c := env.newClient(t)
		env.server.setLogoff(http.StatusInternalServerError)

		ok, err := c.Logout(context.Background())
		require.Error(t, err)
		assert.False(t, ok)
		assert.Equal(t, http.StatusInternalServerError, docuware.StatusCode(err))
		assert.Empty(t, c.Cookie())

		_, err = env.cache.Get(context.Background(), docuware.CacheKey)
		assert.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("clears cookie when server is unreachable", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		c := env.newClient(t)
		env.server.Close()

		ok, err := c.Logout(context.Background())
		assert.ErrorIs(t, err, docuware.ErrTransport)
		assert.False(t, ok)
		assert.Empty(t, c.Cookie())

		_, err = env.cache.Get(context.Background(), docuware.CacheKey)
		assert.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		c := env.newClient(t)

		_, err := c.Logout(context.Background())
		require.NoError(t, err)

		env.server.reset()
		ok, err := c.Logout(context.Background())
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, c.Cookie())

		req, found := env.server.last(http.MethodGet, "/Account/Logoff")
		require.True(t, found, "logoff is sent even without a session")
		assert.Empty(t, req.Cookie)

		_, err = env.cache.Get(context.Background(), docuware.CacheKey)
		assert.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("second logout tolerates rejection", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		c := env.newClient(t)

		_, err := c.Logout(context.Background())
		require.NoError(t, err)

		env.server.setLogoff(http.StatusUnauthorized)
		ok, err := c.Logout(context.Background())
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, c.Cookie())
		assert.Equal(t, 3, env.server.count(http.MethodGet, "/Account/Logoff"))
	})
}

func TestClient_UnauthorizedPurgesSession(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	var rejected atomic.Bool
	rejected.Store(true)
	env.server.handle("GET /FileCabinets/{id}/Documents", func(w http.ResponseWriter, r *http.Request) {
		if rejected.Load() {
			http.Error(w, "Session expired", http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Items":[]}`))
	})

	c := env.newClient(t)

	_, err := c.DocumentsList(context.Background(), testCabinet)
	require.Error(t, err)
	assert.ErrorIs(t, err, docuware.ErrUnauthorized)
	assert.ErrorIs(t, err, docuware.ErrRequestFailed)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "Session expired")

	assert.Empty(t, c.Cookie())
	_, err = env.cache.Get(context.Background(), docuware.CacheKey)
	assert.ErrorIs(t, err, cache.ErrNotFound)
	assert.Equal(t, 1, env.server.count(http.MethodPost, "/Account/Logon"), "the failing call is not retried")

	rejected.Store(false)
	list, err := c.DocumentsList(context.Background(), testCabinet)
	require.NoError(t, err)
	require.NotNil(t, list)
	assert.Equal(t, 2, env.server.count(http.MethodPost, "/Account/Logon"), "next call logs in again")
	assert.Equal(t, testCookie, c.Cookie())
}

func TestBuildCookieHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cookies []*http.Cookie
		want    string
	}{
		{
			name: "skips empty values",
			cookies: []*http.Cookie{
				{Name: "DWPLATFORMBROWSERID", Value: ""},
				{Name: "DWPLATFORMAUTH", Value: "abc"},
			},
			want: "DWPLATFORMAUTH=abc; ",
		},
		{
			name: "keeps order",
			cookies: []*http.Cookie{
				{Name: "a", Value: "1"},
				{Name: "b", Value: "2"},
			},
			want: "a=1; b=2; ",
		},
		{
			name:    "nothing usable",
			cookies: []*http.Cookie{{Name: "a", Value: ""}, nil},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, docuware.BuildCookieHeader(tt.cookies))
		})
	}
}
