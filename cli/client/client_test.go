package client_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wkalt/tileland/cli/client"
	"github.com/wkalt/tileland/cli/util"
	"github.com/wkalt/tileland/coverage"
	"github.com/wkalt/tileland/landmgr"
	"github.com/wkalt/tileland/routes"
)

func TestClient(t *testing.T) {
	ctx := context.Background()
	url := routes.MakeTestRoutes(t, landmgr.TestLandManager(ctx, t), "key")
	alice := client.New(url, "key", "alice")
	bob := client.New(url, "key", "bob")

	ids, err := alice.Mint(ctx, "7", 3, 2, "alice")
	require.NoError(t, err)
	require.Equal(t, []string{"7", "0", "8", "1", "9", "10"}, ids)

	require.NoError(t, alice.Merge(ctx, "7", 2, 2))

	err = bob.Merge(ctx, "9", 1, 2)
	apiErr := util.APIError{}
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusForbidden, apiErr.StatusCode())

	require.NoError(t, alice.Transfer(ctx, "9", "bob"))
	require.NoError(t, alice.Transfer(ctx, "10", "bob"))
	require.NoError(t, bob.Merge(ctx, "9", 1, 2))

	info, err := bob.Token(ctx, "9")
	require.NoError(t, err)
	require.Equal(t, "bob", info.Owner)
	require.Equal(t, uint8(2), info.Height)

	tiles, err := alice.Uncovered(ctx)
	require.NoError(t, err)
	require.Equal(t, []coverage.Tile{
		{ID: 7, Width: 2, Height: 2},
		{ID: 9, Width: 1, Height: 2},
	}, tiles)
}

func TestClientRequiresSharedKey(t *testing.T) {
	ctx := context.Background()
	url := routes.MakeTestRoutes(t, landmgr.TestLandManager(ctx, t), "key")
	c := client.New(url, "wrong", "alice")
	_, err := c.Uncovered(ctx)
	apiErr := util.APIError{}
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode())
}
