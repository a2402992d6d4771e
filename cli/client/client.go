package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"
	"github.com/wkalt/tileland/cli/util"
	"github.com/wkalt/tileland/coverage"
	"github.com/wkalt/tileland/landmgr"
	"github.com/wkalt/tileland/routes"
	"github.com/wkalt/tileland/util/mw"
)

// Client calls the tileland HTTP API on behalf of one account.
type Client struct {
	serverURL string
	account   string
	httpc     *http.Client
}

// New returns a client for the server at serverURL. Requests carry sharedKey
// as a bearer token and account in the account header.
func New(serverURL, sharedKey, account string) *Client {
	return &Client{
		serverURL: serverURL,
		account:   account,
		httpc:     NewHTTPClient(sharedKey),
	}
}

// Mint mints the width x height rectangle anchored at id to owner and
// returns the minted identifiers.
func (c *Client) Mint(ctx context.Context, id string, width, height uint8, owner string) ([]string, error) {
	req := routes.MintRequest{ID: id, Width: &width, Height: &height, Owner: owner}
	resp := routes.MintResponse{}
	if err := c.do(ctx, http.MethodPost, "/mint", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to mint: %w", err)
	}
	return resp.IDs, nil
}

// Merge merges the width x height rectangle anchored at id.
func (c *Client) Merge(ctx context.Context, id string, width, height uint8) error {
	req := routes.MergeRequest{ID: id, Width: width, Height: height}
	if err := c.do(ctx, http.MethodPost, "/merge", req, nil); err != nil {
		return fmt.Errorf("failed to merge: %w", err)
	}
	return nil
}

// Transfer sends the tile id to another account.
func (c *Client) Transfer(ctx context.Context, id string, to string) error {
	req := routes.TransferRequest{ID: id, To: to}
	if err := c.do(ctx, http.MethodPost, "/transfer", req, nil); err != nil {
		return fmt.Errorf("failed to transfer: %w", err)
	}
	return nil
}

// Token returns a minted tile and its extents.
func (c *Client) Token(ctx context.Context, id string) (landmgr.TokenInfo, error) {
	info := landmgr.TokenInfo{}
	if err := c.do(ctx, http.MethodGet, "/tokens/"+url.PathEscape(id), nil, &info); err != nil {
		return info, fmt.Errorf("failed to get token: %w", err)
	}
	return info, nil
}

// Uncovered returns the uncovered tiles sorted by identifier.
func (c *Client) Uncovered(ctx context.Context) ([]coverage.Tile, error) {
	resp := routes.UncoveredResponse{}
	if err := c.do(ctx, http.MethodGet, "/uncovered", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list uncovered tiles: %w", err)
	}
	return resp.Tiles, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.serverURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.account != "" {
		req.Header.Set(mw.AccountHeader, c.account)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("error calling %s: %w", path, err)
	}
	defer resp.Body.Close()
	if err := util.CheckResponse(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

type transport struct {
	key string
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.key != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+t.key)
	}
	return http.DefaultTransport.RoundTrip(req)
}

// NewHTTPClient returns an HTTP client that authenticates with sharedKey.
func NewHTTPClient(sharedKey string) *http.Client {
	return &http.Client{
		Transport: &transport{key: sharedKey},
	}
}
