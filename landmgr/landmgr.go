package landmgr

import (
	"context"
	"fmt"
	"sync"

	"github.com/wkalt/tileland/area"
	"github.com/wkalt/tileland/coverage"
	"github.com/wkalt/tileland/kvstore"
	"github.com/wkalt/tileland/merge"
	"github.com/wkalt/tileland/spiral"
	"github.com/wkalt/tileland/tokens"
	"github.com/wkalt/tileland/util/log"
)

/*
The land manager is the application layer over the tile core. It accepts
identifiers as decimal text, owns the token registry and the merge stores, and
serializes mutating calls so that each one completes or fails before the next
begins.
*/

////////////////////////////////////////////////////////////////////////////////

// TokenInfo describes a minted tile.
type TokenInfo struct {
	ID        uint64       `json:"id,string"`
	Owner     string       `json:"owner"`
	Coord     spiral.Coord `json:"coord"`
	Width     uint8        `json:"width"`
	Height    uint8        `json:"height"`
	CoveredBy string       `json:"coveredBy,omitempty"`
}

// LandManager is the main interface to the landmgr package.
type LandManager struct {
	tokens   tokens.Registry
	merges   *merge.Registry
	coverage *coverage.Query

	lenientIDs bool

	mtx *sync.Mutex
}

// NewLandManager returns a land manager over the token registry, writing merge
// records to records and coverage links to links.
func NewLandManager(
	registry tokens.Registry,
	records kvstore.Store,
	links kvstore.Store,
	opts ...Option,
) *LandManager {
	conf := config{}
	for _, opt := range opts {
		opt(&conf)
	}
	merges := merge.NewRegistry(registry, records, links, conf.mergeOpts...)
	return &LandManager{
		tokens:     registry,
		merges:     merges,
		coverage:   coverage.NewQuery(registry, merges),
		lenientIDs: conf.lenientIDs,
		mtx:        &sync.Mutex{},
	}
}

// Coordinates returns the coordinate of the tile named by text.
func (lm *LandManager) Coordinates(text string) (spiral.Coord, error) {
	if lm.lenientIDs {
		return spiral.DecodeLenient(text), nil
	}
	return spiral.DecodeString(text)
}

// TokenID returns the identifier of the tile at (x, y).
func (lm *LandManager) TokenID(x, y int32) uint64 {
	return spiral.Encode(spiral.Coord{X: x, Y: y})
}

// Area returns the identifiers of the width x height rectangle anchored at the
// tile named by text, columns first.
func (lm *LandManager) Area(text string, width, height uint8) ([]uint64, error) {
	anchor, err := lm.readID(text)
	if err != nil {
		return nil, err
	}
	return area.Collect(anchor, width, height)
}

// Mint creates the tile named by text, owned by owner.
func (lm *LandManager) Mint(ctx context.Context, text string, owner string) (uint64, error) {
	id, err := spiral.ParseID(text)
	if err != nil {
		return 0, err
	}
	lm.mtx.Lock()
	defer lm.mtx.Unlock()
	if err := lm.tokens.Mint(ctx, id, owner); err != nil {
		return 0, fmt.Errorf("failed to mint: %w", err)
	}
	log.Infow(ctx, "minted tile", "id", id, "owner", owner)
	return id, nil
}

// MintArea mints every tile of the width x height rectangle anchored at the
// tile named by text to owner. Nothing is minted if any tile already exists.
// The minted identifiers are returned in area order.
func (lm *LandManager) MintArea(
	ctx context.Context,
	text string,
	width, height uint8,
	owner string,
) ([]uint64, error) {
	anchor, err := spiral.ParseID(text)
	if err != nil {
		return nil, err
	}
	if width == 0 || height == 0 {
		return nil, merge.ErrInvalidExtent
	}
	if owner == "" {
		return nil, tokens.ErrEmptyOwner
	}
	ids, err := area.Collect(anchor, width, height)
	if err != nil {
		return nil, err
	}
	lm.mtx.Lock()
	defer lm.mtx.Unlock()
	for _, id := range ids {
		exists, err := lm.tokens.Exists(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check token: %w", err)
		}
		if exists {
			return nil, tokens.TokenExistsError{ID: id}
		}
	}
	for _, id := range ids {
		if err := lm.tokens.Mint(ctx, id, owner); err != nil {
			return nil, fmt.Errorf("failed to mint: %w", err)
		}
	}
	log.Infow(ctx, "minted area",
		"anchor", anchor,
		"width", width,
		"height", height,
		"owner", owner,
	)
	return ids, nil
}

// Transfer moves the tile named by text from one account to another.
func (lm *LandManager) Transfer(ctx context.Context, text string, from string, to string) error {
	id, err := spiral.ParseID(text)
	if err != nil {
		return err
	}
	lm.mtx.Lock()
	defer lm.mtx.Unlock()
	if err := lm.tokens.Transfer(ctx, id, from, to); err != nil {
		return fmt.Errorf("failed to transfer: %w", err)
	}
	log.Infow(ctx, "transferred tile", "id", id, "from", from, "to", to)
	return nil
}

// Merge fuses the width x height rectangle anchored at the tile named by text
// on behalf of actor.
func (lm *LandManager) Merge(
	ctx context.Context,
	text string,
	width, height uint8,
	actor string,
) error {
	anchor, err := spiral.ParseID(text)
	if err != nil {
		return err
	}
	lm.mtx.Lock()
	defer lm.mtx.Unlock()
	return lm.merges.Merge(ctx, anchor, width, height, actor)
}

// TokenWithSize returns the tile named by text with its effective extents.
func (lm *LandManager) TokenWithSize(ctx context.Context, text string) (TokenInfo, error) {
	id, err := lm.readID(text)
	if err != nil {
		return TokenInfo{}, err
	}
	lm.mtx.Lock()
	defer lm.mtx.Unlock()
	owner, err := lm.tokens.OwnerOf(ctx, id)
	if err != nil {
		return TokenInfo{}, fmt.Errorf("failed to get token: %w", err)
	}
	width, height, err := lm.merges.Extent(ctx, id)
	if err != nil {
		return TokenInfo{}, err
	}
	info := TokenInfo{
		ID:     id,
		Owner:  owner,
		Coord:  spiral.Decode(id),
		Width:  width,
		Height: height,
	}
	anchor, covered, err := lm.merges.CoveredBy(ctx, id)
	if err != nil {
		return TokenInfo{}, err
	}
	if covered {
		info.CoveredBy = spiral.FormatID(anchor)
	}
	return info, nil
}

// Uncovered returns every tile not covered by another tile's merge, sorted by
// identifier.
func (lm *LandManager) Uncovered(ctx context.Context) ([]coverage.Tile, error) {
	lm.mtx.Lock()
	defer lm.mtx.Unlock()
	tiles, err := lm.coverage.Uncovered(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query coverage: %w", err)
	}
	coverage.SortByID(tiles)
	return tiles, nil
}

func (lm *LandManager) readID(text string) (uint64, error) {
	id, err := spiral.ParseID(text)
	if err != nil {
		if lm.lenientIDs {
			return spiral.Encode(spiral.Coord{}), nil
		}
		return 0, err
	}
	return id, nil
}
