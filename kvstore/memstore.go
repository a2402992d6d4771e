package kvstore

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// MemStore is an in-memory store. It is only suitable for tests.
type MemStore struct {
	data map[string][]byte
	mtx  *sync.RWMutex
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		data: make(map[string][]byte),
		mtx:  &sync.RWMutex{},
	}
}

func (m *MemStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	value, ok := m.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return slices.Clone(value), nil
}

func (m *MemStore) Put(_ context.Context, key string, value []byte) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.data[key] = slices.Clone(value)
	return nil
}

// Snapshot returns a copy of the store contents.
func (m *MemStore) Snapshot() map[string][]byte {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	out := maps.Clone(m.data)
	for k, v := range out {
		out[k] = slices.Clone(v)
	}
	return out
}
