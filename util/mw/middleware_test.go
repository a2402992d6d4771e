package mw_test

import (
	"bytes"
	"context"
	glog "log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wkalt/tileland/util/log"
	"github.com/wkalt/tileland/util/mw"
)

func TestWithRequestID(t *testing.T) {
	ctx := context.Background()
	buf := &bytes.Buffer{}
	glog.SetOutput(buf)
	defer glog.SetOutput(os.Stderr)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Infof(r.Context(), "test")
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "/", nil)
	require.NoError(t, err)
	recorder := httptest.NewRecorder()
	mw.WithRequestID(handler).ServeHTTP(recorder, req)
	require.Contains(t, buf.String(), "request_id")
}

func TestWithAccount(t *testing.T) {
	ctx := context.Background()
	var seen string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = mw.Account(r.Context())
	})
	t.Run("header present", func(t *testing.T) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/merge", nil)
		require.NoError(t, err)
		req.Header.Set(mw.AccountHeader, "alice")
		mw.WithAccount(handler).ServeHTTP(httptest.NewRecorder(), req)
		require.Equal(t, "alice", seen)
	})
	t.Run("header absent", func(t *testing.T) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/merge", nil)
		require.NoError(t, err)
		mw.WithAccount(handler).ServeHTTP(httptest.NewRecorder(), req)
		require.Empty(t, seen)
	})
}

func TestWithCORSAllowedOrigins(t *testing.T) {
	ctx := context.Background()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte("ok"))
		require.NoError(t, err)
	})

	t.Run("allowed", func(t *testing.T) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, "/", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", "http://example.com")
		recorder := httptest.NewRecorder()
		mw.WithCORSAllowedOrigins([]string{"http://example.com"})(handler).ServeHTTP(recorder, req)
		require.Equal(t, http.StatusOK, recorder.Code)
		require.Equal(t, "ok", recorder.Body.String())
		require.Equal(t, "http://example.com", recorder.Header().Get("Access-Control-Allow-Origin"))
	})
	t.Run("origin not allowed (still processes request)", func(t *testing.T) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, "/", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", "http://example.com")
		recorder := httptest.NewRecorder()
		mw.WithCORSAllowedOrigins([]string{"http://example.org"})(handler).ServeHTTP(recorder, req)
		require.Equal(t, "ok", recorder.Body.String())
		require.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
	})
	t.Run("options request skips request processing", func(t *testing.T) {
		req, err := http.NewRequestWithContext(ctx, http.MethodOptions, "/", nil)
		require.NoError(t, err)
		recorder := httptest.NewRecorder()
		mw.WithCORSAllowedOrigins([]string{"http://example.org"})(handler).ServeHTTP(recorder, req)
		require.Equal(t, http.StatusOK, recorder.Code)
		require.Empty(t, recorder.Body.String())
	})
}

func TestWithSharedKeyAuth(t *testing.T) {
	ctx := context.Background()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	cases := []struct {
		assertion string
		key       string
		header    string
		code      int
	}{
		{"no key configured", "", "", http.StatusOK},
		{"matching key", "secret", "Bearer secret", http.StatusOK},
		{"wrong key", "secret", "Bearer nope", http.StatusUnauthorized},
		{"wrong scheme", "secret", "Basic secret", http.StatusUnauthorized},
		{"missing header", "secret", "", http.StatusUnauthorized},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, "/", nil)
			require.NoError(t, err)
			if c.header != "" {
				req.Header.Set("Authorization", c.header)
			}
			recorder := httptest.NewRecorder()
			mw.WithSharedKeyAuth(c.key)(handler).ServeHTTP(recorder, req)
			require.Equal(t, c.code, recorder.Code)
		})
	}
}
