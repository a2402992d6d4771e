package util

import (
	"container/list"
	"fmt"
	"strings"
	"sync"
)

/*
LRU is a fixed-capacity cache evicting the least recently used entry. It is
safe for concurrent use.
*/

////////////////////////////////////////////////////////////////////////////////

// LRU is a simple LRU cache.
type LRU[K comparable, V any] struct {
	items map[K]*list.Element
	order *list.List
	cap   int
	mtx   *sync.Mutex
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// NewLRU returns a new LRU cache with the given capacity.
func NewLRU[K comparable, V any](capacity int) *LRU[K, V] {
	return &LRU[K, V]{
		items: make(map[K]*list.Element),
		order: list.New(),
		cap:   capacity,
		mtx:   &sync.Mutex{},
	}
}

// Put adds a new key-value pair to the cache. If the key already exists, the
// value is updated.
func (lru *LRU[K, V]) Put(key K, value V) {
	lru.mtx.Lock()
	defer lru.mtx.Unlock()
	if elem, ok := lru.items[key]; ok {
		elem.Value.(*entry[K, V]).value = value
		lru.order.MoveToFront(elem)
		return
	}
	lru.items[key] = lru.order.PushFront(&entry[K, V]{key: key, value: value})
	for lru.order.Len() > lru.cap {
		oldest := lru.order.Back()
		lru.order.Remove(oldest)
		delete(lru.items, oldest.Value.(*entry[K, V]).key)
	}
}

// Get returns the value associated with the given key. The second return
// value is true if the key exists in the cache.
func (lru *LRU[K, V]) Get(key K) (V, bool) {
	lru.mtx.Lock()
	defer lru.mtx.Unlock()
	if elem, ok := lru.items[key]; ok {
		lru.order.MoveToFront(elem)
		return elem.Value.(*entry[K, V]).value, true
	}
	var v V
	return v, false
}

// Reset clears the cache.
func (lru *LRU[K, V]) Reset() {
	lru.mtx.Lock()
	defer lru.mtx.Unlock()
	lru.items = make(map[K]*list.Element)
	lru.order.Init()
}

// Len returns the number of cached entries.
func (lru *LRU[K, V]) Len() int {
	lru.mtx.Lock()
	defer lru.mtx.Unlock()
	return lru.order.Len()
}

// String returns a string representation of the cache, most recent first.
func (lru *LRU[K, V]) String() string {
	lru.mtx.Lock()
	defer lru.mtx.Unlock()
	parts := make([]string, 0, lru.order.Len())
	for elem := lru.order.Front(); elem != nil; elem = elem.Next() {
		e := elem.Value.(*entry[K, V])
		parts = append(parts, fmt.Sprintf("%v:%v", e.key, e.value))
	}
	return fmt.Sprintf("(%d/%d) [%s]", lru.order.Len(), lru.cap, strings.Join(parts, " "))
}
