package httputil_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wkalt/tileland/util/httputil"
)

type detailedError struct{}

func (detailedError) Error() string  { return "tile 9 is covered" }
func (detailedError) Detail() string { return "covered by 7" }

func TestErrorResponses(t *testing.T) {
	cases := []struct {
		assertion string
		f         func(context.Context, http.ResponseWriter, string, ...any)
		code      int
		body      string
	}{
		{"bad request", httputil.BadRequest, http.StatusBadRequest, `{"error":"bad tile"}`},
		{"not found", httputil.NotFound, http.StatusNotFound, `{"error":"bad tile"}`},
		{"forbidden", httputil.Forbidden, http.StatusForbidden, `{"error":"bad tile"}`},
		{"conflict", httputil.Conflict, http.StatusConflict, `{"error":"bad tile"}`},
		{"unauthorized", httputil.Unauthorized, http.StatusUnauthorized, `{"error":"bad tile"}`},
		{"internal server error", httputil.InternalServerError, http.StatusInternalServerError, `{"error":"internal server error"}`},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "http://example.com/tiles", nil)
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				c.f(r.Context(), w, "bad %s", "tile")
			})
			recorder := httptest.NewRecorder()
			handler(recorder, req)
			require.Equal(t, c.code, recorder.Code)
			require.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
			require.JSONEq(t, c.body, recorder.Body.String())
		})
	}
}

func TestDetail(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com/tiles", nil)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httputil.Conflict(r.Context(), w, "merge failed: %w", detailedError{})
	})
	recorder := httptest.NewRecorder()
	handler(recorder, req)
	require.JSONEq(t, `{"error":"merge failed: tile 9 is covered","detail":"covered by 7"}`, recorder.Body.String())
}

func TestWriteJSON(t *testing.T) {
	recorder := httptest.NewRecorder()
	httputil.WriteJSON(context.Background(), recorder, map[string]int{"width": 2})
	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, `{"width":2}`, recorder.Body.String())
}
