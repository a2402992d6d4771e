package kvstore

import (
	"context"
	"fmt"
	"slices"

	"go.etcd.io/bbolt"
)

/*
boltstore keeps one bucket per store in a bbolt database file.
*/

////////////////////////////////////////////////////////////////////////////////

type boltstore struct {
	db     *bbolt.DB
	bucket []byte
}

// NewBoltStore returns a store persisting to bucket in db, creating the bucket
// if necessary.
func NewBoltStore(db *bbolt.DB, bucket string) (Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket name must not be empty")
	}
	name := []byte(bucket)
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(name)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}
	return &boltstore{db: db, bucket: name}, nil
}

func (s *boltstore) Get(_ context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return fmt.Errorf("bucket %s not found", s.bucket)
		}
		// Values are only valid for the life of the transaction.
		if v := bucket.Get([]byte(key)); v != nil {
			value = slices.Clone(v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s/%s: %w", s.bucket, key, err)
	}
	if value == nil {
		return nil, ErrKeyNotFound
	}
	return value, nil
}

func (s *boltstore) Put(_ context.Context, key string, value []byte) error {
	if key == "" {
		return fmt.Errorf("cannot store with empty key")
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return fmt.Errorf("bucket %s not found", s.bucket)
		}
		return bucket.Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("failed to write %s/%s: %w", s.bucket, key, err)
	}
	return nil
}
