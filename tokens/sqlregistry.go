package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"

	"github.com/mattn/go-sqlite3"
	"github.com/wkalt/tileland/spiral"
)

/*
sqlregistry stores tokens in a sqlite table. Identifiers are stored as canonical
decimal text because sqlite integers cannot hold the full uint64 range.
*/

////////////////////////////////////////////////////////////////////////////////

type sqlregistry struct {
	db *sql.DB
}

// NewSQLRegistry returns a registry backed by db, creating its table if
// necessary.
func NewSQLRegistry(ctx context.Context, db *sql.DB) (Registry, error) {
	r := &sqlregistry{db: db}
	if err := r.initialize(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *sqlregistry) initialize(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `
	create table if not exists tokens (
		id text primary key,
		owner text not null,
		minted_at text not null default current_timestamp
	);
	`); err != nil {
		return fmt.Errorf("failed to migrate token registry: %w", err)
	}
	return nil
}

func (r *sqlregistry) Mint(ctx context.Context, id uint64, owner string) error {
	if owner == "" {
		return ErrEmptyOwner
	}
	_, err := r.db.ExecContext(ctx, `insert into tokens (id, owner) values ($1, $2)`,
		spiral.FormatID(id), owner,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return TokenExistsError{id}
		}
		return fmt.Errorf("failed to mint token %d: %w", id, err)
	}
	return nil
}

func (r *sqlregistry) OwnerOf(ctx context.Context, id uint64) (string, error) {
	var owner string
	err := r.db.QueryRowContext(ctx, `select owner from tokens where id = $1`,
		spiral.FormatID(id),
	).Scan(&owner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", TokenNotFoundError{id}
		}
		return "", fmt.Errorf("failed to read token %d: %w", id, err)
	}
	return owner, nil
}

func (r *sqlregistry) Exists(ctx context.Context, id uint64) (bool, error) {
	_, err := r.OwnerOf(ctx, id)
	if err != nil {
		if errors.Is(err, TokenNotFoundError{}) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *sqlregistry) Transfer(ctx context.Context, id uint64, from string, to string) error {
	if to == "" {
		return ErrEmptyOwner
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var owner string
	err = tx.QueryRowContext(ctx, `select owner from tokens where id = $1`, spiral.FormatID(id)).Scan(&owner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TokenNotFoundError{id}
		}
		return fmt.Errorf("failed to read token %d: %w", id, err)
	}
	if owner != from {
		return NotOwnerError{id, from}
	}
	if _, err := tx.ExecContext(ctx, `update tokens set owner = $1 where id = $2`,
		to, spiral.FormatID(id),
	); err != nil {
		return fmt.Errorf("failed to transfer token %d: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transfer: %w", err)
	}
	return nil
}

// Tokens reads the full listing before yielding, so callers may issue other
// queries against the same database while iterating.
func (r *sqlregistry) Tokens(ctx context.Context) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		tokens, err := r.list(ctx)
		if err != nil {
			yield(Token{}, err)
			return
		}
		for _, token := range tokens {
			if !yield(token, nil) {
				return
			}
		}
	}
}

func (r *sqlregistry) list(ctx context.Context) ([]Token, error) {
	rows, err := r.db.QueryContext(ctx, `select id, owner from tokens`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	defer rows.Close()
	tokens := []Token{}
	for rows.Next() {
		var text, owner string
		if err := rows.Scan(&text, &owner); err != nil {
			return nil, fmt.Errorf("failed to scan token: %w", err)
		}
		id, err := spiral.ParseID(text)
		if err != nil {
			return nil, fmt.Errorf("corrupt token row: %w", err)
		}
		tokens = append(tokens, Token{ID: id, Owner: owner})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tokens: %w", err)
	}
	return tokens, nil
}
