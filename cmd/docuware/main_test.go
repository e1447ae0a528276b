package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests share the package-level flag variables, so they do not run in parallel.

func newPlatform(t *testing.T, extra ...func(*http.ServeMux)) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /Account/Logon", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "DWPLATFORMAUTH", Value: "cli-token"})
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /Account/Logoff", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /FileCabinets/{id}/Documents", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Cookie") == "" {
			http.Error(w, "no session", http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"Items":[{"Id":5,"Title":"Contract"}]}`))
	})
	mux.HandleFunc("GET /FileCabinets/{id}/Documents/{doc}/FileDownload", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("%PDF-cli"))
	})

	for _, register := range extra {
		register(mux)
	}

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func globalArgs(srv *httptest.Server) []string {
	return []string{"docuware", "--url", srv.URL, "--user", "cli", "--password", "secret"}
}

func TestExecute_List(t *testing.T) {
	srv := newPlatform(t)

	var out bytes.Buffer
	err := Execute(append(globalArgs(srv), "list", "cabinet-1"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"Title": "Contract"`)
}

func TestExecute_Download(t *testing.T) {
	srv := newPlatform(t)
	dir := t.TempDir()

	var out bytes.Buffer
	err := Execute(append(globalArgs(srv), "download", "--dir", dir, "cabinet-1", "5"), &out)
	require.NoError(t, err)

	name := bytes.TrimSpace(out.Bytes())
	assert.Regexp(t, regexp.MustCompile(`^5-\d{8}\.pdf$`), string(name))

	got, err := os.ReadFile(filepath.Join(dir, string(name)))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-cli"), got)
}

func TestExecute_MissingArguments(t *testing.T) {
	srv := newPlatform(t)

	err := Execute(append(globalArgs(srv), "search", "cabinet-1"), &bytes.Buffer{})
	assert.ErrorIs(t, err, errUsage)
}

func TestExecute_InvalidDocumentID(t *testing.T) {
	srv := newPlatform(t)

	err := Execute(append(globalArgs(srv), "download", "cabinet-1", "abc"), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid document id "abc"`)
}

func TestExecute_UpdateFieldsDoNotAccumulate(t *testing.T) {
	var (
		mu     sync.Mutex
		bodies [][]byte
	)
	srv := newPlatform(t, func(mux *http.ServeMux) {
		mux.HandleFunc("PUT /FileCabinets/{id}/Documents/{doc}/Fields", func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			mu.Lock()
			bodies = append(bodies, body)
			mu.Unlock()
			w.WriteHeader(http.StatusOK)
		})
	})

	var out bytes.Buffer
	require.NoError(t, Execute(append(globalArgs(srv), "update", "--field", "STATUS=Paid", "cabinet-1", "5"), &out))
	require.NoError(t, Execute(append(globalArgs(srv), "update", "--field", "AMOUNT=12.5:Decimal", "cabinet-1", "5"), &out))
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, bodies, 2)

	var second struct {
		Field []struct {
			FieldName string
		}
	}
	require.NoError(t, json.Unmarshal(bodies[1], &second))
	require.Len(t, second.Field, 1)
	assert.Equal(t, "AMOUNT", second.Field[0].FieldName)
	assert.Equal(t, "true\ntrue\n", out.String())
}
