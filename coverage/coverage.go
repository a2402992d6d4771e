package coverage

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/wkalt/tileland/merge"
	"github.com/wkalt/tileland/tokens"
)

/*
Package coverage reports the tiles that stand on their own: every minted tile
without a coverage link, with the extents of its own merge if it anchors one.

The query is a linear scan over the token registry. Results come back in the
registry's native order; use SortByID for a stable one.
*/

////////////////////////////////////////////////////////////////////////////////

// Tile is an uncovered tile and its effective extents.
type Tile struct {
	ID     uint64 `json:"id,string"`
	Width  uint8  `json:"width"`
	Height uint8  `json:"height"`
}

// Query answers coverage questions over a token registry and its merges.
type Query struct {
	tokens tokens.Registry
	merges *merge.Registry
}

// NewQuery returns a coverage query.
func NewQuery(registry tokens.Registry, merges *merge.Registry) *Query {
	return &Query{tokens: registry, merges: merges}
}

// Uncovered returns every minted tile that is not covered by another tile's
// merge.
func (q *Query) Uncovered(ctx context.Context) ([]Tile, error) {
	var result []Tile
	for token, err := range q.tokens.Tokens(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to list tokens: %w", err)
		}
		_, covered, err := q.merges.CoveredBy(ctx, token.ID)
		if err != nil {
			return nil, err
		}
		if covered {
			continue
		}
		width, height, err := q.merges.Extent(ctx, token.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, Tile{ID: token.ID, Width: width, Height: height})
	}
	return result, nil
}

// SortByID sorts tiles by identifier value.
func SortByID(tiles []Tile) {
	slices.SortFunc(tiles, func(a, b Tile) int {
		return cmp.Compare(a.ID, b.ID)
	})
}
