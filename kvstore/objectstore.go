package kvstore

import (
	"context"
	"errors"
	"fmt"
	"path"
	"slices"

	"github.com/wkalt/tileland/storage"
	"github.com/wkalt/tileland/util"
)

/*
objectstore keeps each key as one object under a prefix in an object storage
provider. Reads go through an LRU cache; writes update the cache after the
provider accepts them.
*/

////////////////////////////////////////////////////////////////////////////////

type objectstore struct {
	provider storage.Provider
	prefix   string
	cache    *util.LRU[string, []byte]
}

// NewObjectStore returns a store writing objects named prefix/key to provider,
// caching up to cacheSize values.
func NewObjectStore(provider storage.Provider, prefix string, cacheSize int) Store {
	return &objectstore{
		provider: provider,
		prefix:   prefix,
		cache:    util.NewLRU[string, []byte](cacheSize),
	}
}

func (s *objectstore) objectID(key string) string {
	return path.Join(s.prefix, key)
}

func (s *objectstore) Get(ctx context.Context, key string) ([]byte, error) {
	if value, ok := s.cache.Get(key); ok {
		return slices.Clone(value), nil
	}
	value, err := s.provider.Get(ctx, s.objectID(key))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.objectID(key), err)
	}
	s.cache.Put(key, value)
	return slices.Clone(value), nil
}

func (s *objectstore) Put(ctx context.Context, key string, value []byte) error {
	if err := s.provider.Put(ctx, s.objectID(key), value); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.objectID(key), err)
	}
	s.cache.Put(key, slices.Clone(value))
	return nil
}
