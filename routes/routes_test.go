package routes_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"github.com/wkalt/tileland/coverage"
	"github.com/wkalt/tileland/landmgr"
	"github.com/wkalt/tileland/routes"
	"github.com/wkalt/tileland/spiral"
	"github.com/wkalt/tileland/util/httputil"
	"github.com/wkalt/tileland/util/mw"
)

func do(
	ctx context.Context,
	t *testing.T,
	method string,
	url string,
	account string,
	body any,
) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	require.NoError(t, err)
	if account != "" {
		req.Header.Set(mw.AccountHeader, account)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func u8(v uint8) *uint8 {
	return &v
}

func TestCodecRoutes(t *testing.T) {
	ctx := context.Background()
	url := routes.MakeTestRoutes(t, landmgr.TestLandManager(ctx, t), "")
	cases := []struct {
		assertion string
		path      string
		status    int
		expected  string
	}{
		{"coordinates", "/tokens/7/coordinates", http.StatusOK, `{"x":-1,"y":-2}`},
		{"malformed coordinates", "/tokens/x7/coordinates", http.StatusBadRequest, ""},
		{"token id", "/coordinates/-2/-1", http.StatusOK, `{"id":"5"}`},
		{"token id out of range", "/coordinates/2147483648/0", http.StatusBadRequest, ""},
		{"area", "/tokens/7/area?width=2&height=3", http.StatusOK, `{"ids":["7","0","3","8","1","2"]}`},
		{"area defaults to one tile", "/tokens/7/area", http.StatusOK, `{"ids":["7"]}`},
		{"area with invalid width", "/tokens/7/area?width=256", http.StatusBadRequest, ""},
		{"area out of bounds", "/tokens/18446744073709551615/area?height=2", http.StatusBadRequest, ""},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			status, body := do(ctx, t, http.MethodGet, url+c.path, "", nil)
			require.Equal(t, c.status, status, string(body))
			if c.expected != "" {
				require.JSONEq(t, c.expected, string(body))
			}
		})
	}
}

func TestTileRoutes(t *testing.T) {
	ctx := context.Background()
	url := routes.MakeTestRoutes(t, landmgr.TestLandManager(ctx, t), "")

	t.Run("mint area", func(t *testing.T) {
		status, body := do(ctx, t, http.MethodPost, url+"/mint", "", routes.MintRequest{
			ID: "7", Width: u8(3), Height: u8(2), Owner: "alice",
		})
		require.Equal(t, http.StatusOK, status, string(body))
		resp := routes.MintResponse{}
		require.NoError(t, json.Unmarshal(body, &resp))
		require.Equal(t, []string{"7", "0", "8", "1", "9", "10"}, resp.IDs)
	})

	t.Run("mint defaults owner to the account header", func(t *testing.T) {
		status, body := do(ctx, t, http.MethodPost, url+"/mint", "bob", routes.MintRequest{ID: "6"})
		require.Equal(t, http.StatusOK, status, string(body))
		_, body = do(ctx, t, http.MethodGet, url+"/tokens/6", "", nil)
		info := landmgr.TokenInfo{}
		require.NoError(t, json.Unmarshal(body, &info))
		require.Equal(t, "bob", info.Owner)
	})

	cases := []struct {
		assertion string
		method    string
		path      string
		account   string
		body      any
		status    int
	}{
		{
			"mint existing tile",
			http.MethodPost, "/mint", "", routes.MintRequest{ID: "0", Owner: "carol"},
			http.StatusConflict,
		},
		{
			"mint without owner",
			http.MethodPost, "/mint", "", routes.MintRequest{ID: "100"},
			http.StatusBadRequest,
		},
		{
			"mint malformed id",
			http.MethodPost, "/mint", "", routes.MintRequest{ID: "-1", Owner: "carol"},
			http.StatusBadRequest,
		},
		{
			"merge as non-owner",
			http.MethodPost, "/merge", "bob", routes.MergeRequest{ID: "7", Width: 2, Height: 2},
			http.StatusForbidden,
		},
		{
			"merge missing tiles",
			http.MethodPost, "/merge", "alice", routes.MergeRequest{ID: "7", Width: 4, Height: 2},
			http.StatusNotFound,
		},
		{
			"merge zero extent",
			http.MethodPost, "/merge", "alice", routes.MergeRequest{ID: "7", Width: 0, Height: 2},
			http.StatusBadRequest,
		},
		{
			"merge without actor",
			http.MethodPost, "/merge", "", routes.MergeRequest{ID: "7", Width: 2, Height: 2},
			http.StatusBadRequest,
		},
		{
			"merge",
			http.MethodPost, "/merge", "alice", routes.MergeRequest{ID: "7", Width: 2, Height: 2},
			http.StatusOK,
		},
		{
			"merge with explicit actor",
			http.MethodPost, "/merge", "", routes.MergeRequest{ID: "9", Width: 1, Height: 2, Actor: "alice"},
			http.StatusOK,
		},
		{
			"transfer from non-owner",
			http.MethodPost, "/transfer", "bob", routes.TransferRequest{ID: "7", To: "bob"},
			http.StatusForbidden,
		},
		{
			"transfer unminted tile",
			http.MethodPost, "/transfer", "bob", routes.TransferRequest{ID: "1000", To: "alice"},
			http.StatusNotFound,
		},
		{
			"transfer",
			http.MethodPost, "/transfer", "bob", routes.TransferRequest{ID: "6", To: "alice"},
			http.StatusOK,
		},
		{
			"unminted token",
			http.MethodGet, "/tokens/1000", "", nil,
			http.StatusNotFound,
		},
		{
			"invalid json",
			http.MethodPost, "/merge", "alice", "not an object",
			http.StatusBadRequest,
		},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			status, body := do(ctx, t, c.method, url+c.path, c.account, c.body)
			require.Equal(t, c.status, status, string(body))
			if status >= 400 {
				resp := httputil.ErrorResponse{}
				require.NoError(t, json.Unmarshal(body, &resp))
				require.NotEmpty(t, resp.Error)
			}
		})
	}

	t.Run("uncovered", func(t *testing.T) {
		status, body := do(ctx, t, http.MethodGet, url+"/uncovered", "", nil)
		require.Equal(t, http.StatusOK, status)
		resp := routes.UncoveredResponse{}
		require.NoError(t, json.Unmarshal(body, &resp))
		require.Equal(t, []coverage.Tile{
			{ID: 6, Width: 1, Height: 1},
			{ID: 7, Width: 2, Height: 2},
			{ID: 9, Width: 1, Height: 2},
		}, resp.Tiles)
	})

	t.Run("token with size", func(t *testing.T) {
		status, body := do(ctx, t, http.MethodGet, url+"/tokens/7", "", nil)
		require.Equal(t, http.StatusOK, status)
		info := landmgr.TokenInfo{}
		require.NoError(t, json.Unmarshal(body, &info))
		require.Equal(t, landmgr.TokenInfo{
			ID:     7,
			Owner:  "alice",
			Coord:  spiral.Coord{X: -1, Y: -2},
			Width:  2,
			Height: 2,
		}, info)
	})
}

func TestEmptyUncovered(t *testing.T) {
	ctx := context.Background()
	url := routes.MakeTestRoutes(t, landmgr.TestLandManager(ctx, t), "")
	status, body := do(ctx, t, http.MethodGet, url+"/uncovered", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"tiles":[]}`, string(body))
}

func TestSharedKeyAuth(t *testing.T) {
	ctx := context.Background()
	url := routes.MakeTestRoutes(t, landmgr.TestLandManager(ctx, t), "secret")

	status, _ := do(ctx, t, http.MethodGet, url+"/tokens/7/coordinates", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url+"/tokens/7/coordinates", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer secret")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
