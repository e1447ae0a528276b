package docuware_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/docuware"
	"github.com/dmitrymomot/docuware/core/cache"
	"github.com/dmitrymomot/docuware/core/storage"
)

const (
	testCabinet = "f5b6c8a1-2d3e-4f5a-9b8c-7d6e5f4a3b2c"
	testCookie  = "DWPLATFORMAUTH=token-1; "
)

var testNow = time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)

type recordedRequest struct {
	Method      string
	Path        string
	RawQuery    string
	Cookie      string
	Accept      string
	ContentType string
	Body        []byte
}

// fakeDocuWare is an httptest server speaking the subset of the Platform API
// the client uses. Document routes are registered per test.
type fakeDocuWare struct {
	*httptest.Server
	t   *testing.T
	mux *http.ServeMux

	mu           sync.Mutex
	requests     []recordedRequest
	logonStatus  int
	logonCookies []*http.Cookie
	logoffStatus int
}

func newFakeDocuWare(t *testing.T) *fakeDocuWare {
	t.Helper()

	f := &fakeDocuWare{
		t:            t,
		mux:          http.NewServeMux(),
		logonStatus:  http.StatusOK,
		logoffStatus: http.StatusOK,
		logonCookies: []*http.Cookie{
			{Name: "DWPLATFORMAUTH", Value: "token-1"},
			{Name: "DWPLATFORMBROWSERID", Value: ""},
		},
	}

	f.mux.HandleFunc("POST /Account/Logon", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		status, cookies := f.logonStatus, f.logonCookies
		f.mu.Unlock()

		if status != http.StatusOK {
			http.Error(w, "Invalid user name or password", status)
			return
		}
		for _, c := range cookies {
			http.SetCookie(w, c)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"Organization":"Peters Engineering"}`)
	})

	f.mux.HandleFunc("GET /Account/Logoff", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		status := f.logoffStatus
		f.mu.Unlock()

		if status != http.StatusOK {
			http.Error(w, "logoff failed", status)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.requests = append(f.requests, recordedRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			RawQuery:    r.URL.RawQuery,
			Cookie:      r.Header.Get("Cookie"),
			Accept:      r.Header.Get("Accept"),
			ContentType: r.Header.Get("Content-Type"),
			Body:        body,
		})
		f.mu.Unlock()

		r.Body = io.NopCloser(bytes.NewReader(body))
		f.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.Close)

	return f
}

func (f *fakeDocuWare) handle(pattern string, h http.HandlerFunc) {
	f.mux.HandleFunc(pattern, h)
}

func (f *fakeDocuWare) setLogon(status int, cookies ...*http.Cookie) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logonStatus = status
	if cookies != nil {
		f.logonCookies = cookies
	}
}

func (f *fakeDocuWare) setLogoff(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoffStatus = status
}

func (f *fakeDocuWare) recorded() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func (f *fakeDocuWare) count(method, path string) int {
	n := 0
	for _, r := range f.recorded() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (f *fakeDocuWare) last(method, path string) (recordedRequest, bool) {
	reqs := f.recorded()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Method == method && reqs[i].Path == path {
			return reqs[i], true
		}
	}
	return recordedRequest{}, false
}

func (f *fakeDocuWare) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = nil
}

func (f *fakeDocuWare) config() docuware.Config {
	return docuware.Config{
		URLRoot:  f.URL,
		User:     "api-user",
		Password: "s3cret&pass",
	}
}

type testEnv struct {
	server *fakeDocuWare
	cache  *cache.Memory
	fs     afero.Fs
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{
		server: newFakeDocuWare(t),
		cache:  cache.NewMemory(cache.WithClock(func() time.Time { return testNow })),
		fs:     afero.NewMemMapFs(),
	}
}

func (e *testEnv) options(extra ...docuware.Option) []docuware.Option {
	opts := []docuware.Option{
		docuware.WithCache(e.cache),
		docuware.WithStorage(storage.NewLocal(storage.WithFs(e.fs))),
		docuware.WithClock(func() time.Time { return testNow }),
	}
	return append(opts, extra...)
}

func (e *testEnv) newClient(t *testing.T, extra ...docuware.Option) *docuware.Client {
	t.Helper()
	c, err := docuware.New(context.Background(), e.server.config(), e.options(extra...)...)
	require.NoError(t, err)
	return c
}
