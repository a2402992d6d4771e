package coverage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wkalt/tileland/area"
	"github.com/wkalt/tileland/coverage"
	"github.com/wkalt/tileland/kvstore"
	"github.com/wkalt/tileland/merge"
	"github.com/wkalt/tileland/spiral"
	"github.com/wkalt/tileland/tokens"
	"github.com/wkalt/tileland/util/testutils"
)

func mintArea(t *testing.T, registry tokens.Registry, anchor uint64, width, height uint8, owner string) {
	t.Helper()
	ids, err := area.Collect(anchor, width, height)
	require.NoError(t, err)
	for _, id := range ids {
		require.NoError(t, registry.Mint(context.Background(), id, owner))
	}
}

func TestUncovered(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		assertion string
		f         func(*testing.T) (tokens.Registry, kvstore.Store, kvstore.Store)
	}{
		{
			"memory",
			func(*testing.T) (tokens.Registry, kvstore.Store, kvstore.Store) {
				return tokens.NewMemRegistry(), kvstore.NewMemStore(), kvstore.NewMemStore()
			},
		},
		{
			"sqlite",
			func(t *testing.T) (tokens.Registry, kvstore.Store, kvstore.Store) {
				t.Helper()
				db := testutils.NewSQLiteDB(t)
				registry, err := tokens.NewSQLRegistry(ctx, db)
				require.NoError(t, err)
				records, err := kvstore.NewSQLStore(ctx, db, "merge_records")
				require.NoError(t, err)
				links, err := kvstore.NewSQLStore(ctx, db, "coverage_links")
				require.NoError(t, err)
				return registry, records, links
			},
		},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			registry, records, links := c.f(t)
			merges := merge.NewRegistry(registry, records, links)
			query := coverage.NewQuery(registry, merges)

			t.Run("empty registry", func(t *testing.T) {
				tiles, err := query.Uncovered(ctx)
				require.NoError(t, err)
				require.Empty(t, tiles)
			})

			mintArea(t, registry, 19, 2, 3, "bob")
			require.NoError(t, merges.Merge(ctx, 18, 2, 2, "bob"))

			mintArea(t, registry, 7, 3, 2, "alice")
			require.NoError(t, merges.Merge(ctx, 7, 2, 2, "alice"))
			require.NoError(t, merges.Merge(ctx, 9, 1, 2, "alice"))

			tiles, err := query.Uncovered(ctx)
			require.NoError(t, err)
			coverage.SortByID(tiles)
			require.Equal(t, []coverage.Tile{
				{ID: 6, Width: 1, Height: 1},
				{ID: 7, Width: 2, Height: 2},
				{ID: 9, Width: 1, Height: 2},
				{ID: 18, Width: 2, Height: 2},
				{ID: 19, Width: 1, Height: 1},
			}, tiles)
		})
	}
}

func TestCoverageInvariant(t *testing.T) {
	ctx := context.Background()
	registry := tokens.NewMemRegistry()
	merges := merge.NewRegistry(registry, kvstore.NewMemStore(), kvstore.NewMemStore())
	query := coverage.NewQuery(registry, merges)

	mintArea(t, registry, 100, 6, 6, "carol")
	origin := spiral.Decode(100)
	steps := []struct {
		dx, dy int64
		width  uint8
		height uint8
	}{
		{0, 0, 2, 2},
		{0, 0, 3, 1},
		{1, 1, 4, 4},
		{0, 0, 1, 6},
		{5, 5, 1, 1},
	}
	for _, step := range steps {
		corner, ok := origin.Add(step.dx, step.dy)
		require.True(t, ok)
		anchor := spiral.Encode(corner)
		require.NoError(t, merges.Merge(ctx, anchor, step.width, step.height, "carol"))

		tiles, err := query.Uncovered(ctx)
		require.NoError(t, err)
		uncovered := make(map[uint64]coverage.Tile, len(tiles))
		for _, tile := range tiles {
			uncovered[tile.ID] = tile
		}
		for token, err := range registry.Tokens(ctx) {
			require.NoError(t, err)
			_, covered, err := merges.CoveredBy(ctx, token.ID)
			require.NoError(t, err)
			tile, listed := uncovered[token.ID]
			require.NotEqual(t, covered, listed, "tile %d", token.ID)
			if listed {
				w, h, err := merges.Extent(ctx, token.ID)
				require.NoError(t, err)
				require.Equal(t, coverage.Tile{ID: token.ID, Width: w, Height: h}, tile)
			}
		}
	}
}

func TestSortByID(t *testing.T) {
	tiles := []coverage.Tile{{ID: 19}, {ID: 6}, {ID: 1<<64 - 1}, {ID: 0}}
	coverage.SortByID(tiles)
	require.Equal(t, []coverage.Tile{{ID: 0}, {ID: 6}, {ID: 19}, {ID: 1<<64 - 1}}, tiles)
}
