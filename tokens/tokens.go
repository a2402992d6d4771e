package tokens

import (
	"context"
	"errors"
	"iter"
)

/*
The token registry maps tile identifiers to owning accounts. It is the source of
truth for which tiles exist; merges and coverage queries consult it but never
modify it.
*/

////////////////////////////////////////////////////////////////////////////////

// ErrEmptyOwner is returned when minting or transferring to an empty account.
var ErrEmptyOwner = errors.New("owner must not be empty")

// Token is a minted tile and its owner.
type Token struct {
	ID    uint64
	Owner string
}

// Registry is the interface to a token registry.
type Registry interface {
	// Mint creates a token owned by owner. Fails with TokenExistsError if the
	// identifier is already minted.
	Mint(ctx context.Context, id uint64, owner string) error

	// OwnerOf returns the owner of a token, or TokenNotFoundError.
	OwnerOf(ctx context.Context, id uint64) (string, error)

	// Exists reports whether a token has been minted.
	Exists(ctx context.Context, id uint64) (bool, error)

	// Transfer moves a token from one owner to another.
	Transfer(ctx context.Context, id uint64, from string, to string) error

	// Tokens yields every minted token in the registry's native order.
	Tokens(ctx context.Context) iter.Seq2[Token, error]
}
