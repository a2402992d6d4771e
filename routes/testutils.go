package routes

import (
	"net/http/httptest"
	"testing"

	"github.com/wkalt/tileland/landmgr"
)

// MakeTestRoutes serves the routes on a test server and returns its URL.
func MakeTestRoutes(t *testing.T, lm *landmgr.LandManager, sharedKey string) string {
	t.Helper()
	srv := httptest.NewServer(MakeRoutes(lm, []string{"http://localhost:5173"}, sharedKey))
	t.Cleanup(srv.Close)
	return srv.URL
}
