package tokens

import (
	"context"
	"iter"
	"sync"
)

/*
memregistry is an in-memory implementation of the registry interface. It is only
suitable for usage in testing. Tokens are iterated in mint order.
*/

////////////////////////////////////////////////////////////////////////////////

type memregistry struct {
	owners map[uint64]string
	order  []uint64
	mtx    *sync.RWMutex
}

// NewMemRegistry returns an empty in-memory registry.
func NewMemRegistry() Registry {
	return &memregistry{
		owners: make(map[uint64]string),
		mtx:    &sync.RWMutex{},
	}
}

func (r *memregistry) Mint(_ context.Context, id uint64, owner string) error {
	if owner == "" {
		return ErrEmptyOwner
	}
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if _, ok := r.owners[id]; ok {
		return TokenExistsError{id}
	}
	r.owners[id] = owner
	r.order = append(r.order, id)
	return nil
}

func (r *memregistry) OwnerOf(_ context.Context, id uint64) (string, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	owner, ok := r.owners[id]
	if !ok {
		return "", TokenNotFoundError{id}
	}
	return owner, nil
}

func (r *memregistry) Exists(_ context.Context, id uint64) (bool, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	_, ok := r.owners[id]
	return ok, nil
}

func (r *memregistry) Transfer(_ context.Context, id uint64, from string, to string) error {
	if to == "" {
		return ErrEmptyOwner
	}
	r.mtx.Lock()
	defer r.mtx.Unlock()
	owner, ok := r.owners[id]
	if !ok {
		return TokenNotFoundError{id}
	}
	if owner != from {
		return NotOwnerError{id, from}
	}
	r.owners[id] = to
	return nil
}

func (r *memregistry) Tokens(_ context.Context) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		r.mtx.RLock()
		snapshot := make([]Token, len(r.order))
		for i, id := range r.order {
			snapshot[i] = Token{ID: id, Owner: r.owners[id]}
		}
		r.mtx.RUnlock()
		for _, token := range snapshot {
			if !yield(token, nil) {
				return
			}
		}
	}
}
