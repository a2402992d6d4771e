package kvstore

import (
	"context"
	"errors"
)

/*
Package kvstore provides the key-value stores holding merge records and coverage
links. Only point reads and writes are required; callers validate before they
write, so no transactions are exposed.
*/

////////////////////////////////////////////////////////////////////////////////

// ErrKeyNotFound is returned by Get when a key has never been written.
var ErrKeyNotFound = errors.New("key not found")

// Store is the interface to a key-value store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}
