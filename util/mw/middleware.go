package mw

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/wkalt/tileland/util/httputil"
	"github.com/wkalt/tileland/util/log"
)

/*
mw contains http middlewares.
*/

////////////////////////////////////////////////////////////////////////////////

// AccountHeader carries the identity of the account making a request.
const AccountHeader = "X-Account-ID"

type contextKey int

const (
	accountKey contextKey = iota
)

// WithRequestID is a middleware that adds a request ID to the context of each
// request.
func WithRequestID(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := log.AddTags(r.Context(), "request_id", uuid.NewString())
		h.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithAccount records the requesting account from the X-Account-ID header in
// the request context and log tags.
func WithAccount(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account := strings.TrimSpace(r.Header.Get(AccountHeader))
		if account == "" {
			h.ServeHTTP(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), accountKey, account)
		ctx = log.AddTags(ctx, "account", account)
		h.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Account returns the requesting account, or the empty string if the request
// did not identify one.
func Account(ctx context.Context) string {
	account, _ := ctx.Value(accountKey).(string)
	return account
}

// WithCORSAllowedOrigins is a middleware that allows requests from specified
// origins.
func WithCORSAllowedOrigins(origins []string) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			for _, o := range origins {
				if o == origin {
					w.Header().Set("Access-Control-Allow-Origin", o)
					w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
					w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, "+AccountHeader)
					break
				}
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			h.ServeHTTP(w, r)
		})
	}
}

func parseBearerToken(authHeader string) string {
	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || scheme != "Bearer" {
		return ""
	}
	return token
}

// WithSharedKeyAuth is a middleware that requires a shared key to be present in
// the Authorization header. An empty key disables the check.
func WithSharedKeyAuth(key string) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key != "" {
				if token := parseBearerToken(r.Header.Get("Authorization")); token != key {
					httputil.Unauthorized(r.Context(), w, "invalid token")
					return
				}
			}
			h.ServeHTTP(w, r)
		})
	}
}
