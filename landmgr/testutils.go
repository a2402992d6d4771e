package landmgr

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wkalt/tileland/kvstore"
	"github.com/wkalt/tileland/tokens"
	"github.com/wkalt/tileland/util/testutils"
)

// TestLandManager returns a land manager over an in-memory sqlite database.
func TestLandManager(ctx context.Context, t *testing.T, opts ...Option) *LandManager {
	t.Helper()
	db := testutils.NewSQLiteDB(t)
	registry, err := tokens.NewSQLRegistry(ctx, db)
	require.NoError(t, err)
	records, err := kvstore.NewSQLStore(ctx, db, "merge_records")
	require.NoError(t, err)
	links, err := kvstore.NewSQLStore(ctx, db, "coverage_links")
	require.NoError(t, err)
	return NewLandManager(registry, records, links, opts...)
}
