package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
)

/*
sqlstore keeps one key-value table per store in a shared sqlite database.
*/

////////////////////////////////////////////////////////////////////////////////

var tableName = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

type sqlstore struct {
	db    *sql.DB
	table string
}

// NewSQLStore returns a store persisting to table in db, creating it if
// necessary. The table name must be a lowercase identifier.
func NewSQLStore(ctx context.Context, db *sql.DB, table string) (Store, error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	s := &sqlstore{db: db, table: table}
	if _, err := db.ExecContext(ctx, fmt.Sprintf(`
	create table if not exists %s (
		key text primary key,
		value blob not null
	);`, table)); err != nil {
		return nil, fmt.Errorf("failed to create table %s: %w", table, err)
	}
	return s, nil
}

func (s *sqlstore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`select value from %s where key = $1`, s.table), key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to read %s/%s: %w", s.table, key, err)
	}
	return value, nil
}

func (s *sqlstore) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`
	insert into %s (key, value) values ($1, $2)
	on conflict (key) do update set value = excluded.value`, s.table),
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write %s/%s: %w", s.table, key, err)
	}
	return nil
}
