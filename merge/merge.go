package merge

import (
	"context"
	"errors"
	"fmt"

	"github.com/wkalt/tileland/area"
	"github.com/wkalt/tileland/kvstore"
	"github.com/wkalt/tileland/spiral"
	"github.com/wkalt/tileland/tokens"
	"github.com/wkalt/tileland/util/log"
)

/*
Package merge fuses rectangles of tiles into one logical unit. A merge writes a
record on the anchor holding the rectangle's extents, and a coverage link on
every other member pointing back to the anchor.

Every member is validated before anything is written, so a failed merge leaves
both stores untouched. Merges may overlap; the most recent link for a tile
decides which anchor it is attributed to.
*/

////////////////////////////////////////////////////////////////////////////////

// Authorizer decides whether actor may merge a tile owned by owner.
type Authorizer func(actor, owner string) bool

// OwnerOnly permits only the tile's owner.
func OwnerOnly(actor, owner string) bool {
	return actor == owner
}

// Option configures a Registry.
type Option func(*Registry)

// WithAuthorizer overrides the default OwnerOnly authorizer.
func WithAuthorizer(f Authorizer) Option {
	return func(r *Registry) {
		r.authorize = f
	}
}

// Registry records merges over a token registry.
type Registry struct {
	tokens    tokens.Registry
	records   kvstore.Store
	links     kvstore.Store
	authorize Authorizer
}

// NewRegistry returns a merge registry writing merge records to records and
// coverage links to links.
func NewRegistry(
	registry tokens.Registry,
	records kvstore.Store,
	links kvstore.Store,
	opts ...Option,
) *Registry {
	r := &Registry{
		tokens:    registry,
		records:   records,
		links:     links,
		authorize: OwnerOnly,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Merge fuses the width x height rectangle anchored at anchor on behalf of
// actor.
func (r *Registry) Merge(ctx context.Context, anchor uint64, width, height uint8, actor string) error {
	if width == 0 || height == 0 {
		return ErrInvalidExtent
	}
	rect, err := area.NewRect(anchor, width, height)
	if err != nil {
		return fmt.Errorf("failed to build merge area: %w", err)
	}
	owner, err := r.tokens.OwnerOf(ctx, anchor)
	if err != nil {
		return fmt.Errorf("failed to resolve anchor: %w", err)
	}
	if !r.authorize(actor, owner) {
		return PermissionDeniedError{ID: anchor, Actor: actor, Reason: "not entitled to the anchor"}
	}
	members := make([]uint64, 0, rect.Len())
	for id := range rect.IDs() {
		if id == anchor {
			continue
		}
		memberOwner, err := r.tokens.OwnerOf(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to resolve member: %w", err)
		}
		if memberOwner != owner {
			return PermissionDeniedError{ID: id, Actor: actor, Reason: "owned by a different account"}
		}
		members = append(members, id)
	}

	if err := r.records.Put(ctx, spiral.FormatID(anchor), encodeExtent(width, height)); err != nil {
		return fmt.Errorf("failed to write merge record: %w", err)
	}
	link := []byte(spiral.FormatID(anchor))
	for _, id := range members {
		if err := r.links.Put(ctx, spiral.FormatID(id), link); err != nil {
			return fmt.Errorf("failed to write coverage link: %w", err)
		}
	}
	log.Infow(ctx, "merged tiles",
		"anchor", anchor,
		"width", width,
		"height", height,
		"members", len(members),
	)
	return nil
}

// Extent returns the extents of the merge anchored at id, or (1, 1) if id has
// never been an anchor.
func (r *Registry) Extent(ctx context.Context, id uint64) (width uint8, height uint8, err error) {
	key := spiral.FormatID(id)
	value, err := r.records.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return 1, 1, nil
		}
		return 0, 0, fmt.Errorf("failed to read merge record: %w", err)
	}
	if len(value) != 2 {
		return 0, 0, CorruptRecordError{Key: key, Value: value}
	}
	return value[0], value[1], nil
}

// CoveredBy returns the anchor whose merge most recently covered id, if any.
func (r *Registry) CoveredBy(ctx context.Context, id uint64) (uint64, bool, error) {
	key := spiral.FormatID(id)
	value, err := r.links.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to read coverage link: %w", err)
	}
	anchor, err := spiral.ParseID(string(value))
	if err != nil {
		return 0, false, CorruptRecordError{Key: key, Value: value}
	}
	return anchor, true, nil
}

func encodeExtent(width, height uint8) []byte {
	return []byte{width, height}
}
