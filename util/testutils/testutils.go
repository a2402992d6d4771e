package testutils

import (
	"database/sql"
	"fmt"
	"net"
	"testing"

	_ "github.com/mattn/go-sqlite3" // sqlite driver
	"github.com/stretchr/testify/require"
)

/*
General purpose test utilities.
*/

////////////////////////////////////////////////////////////////////////////////

// GetOpenPort returns an open port that can be used for testing.
func GetOpenPort() (int, error) {
	l, err := net.Listen("tcp", ":0")
	if err != nil {
		return 0, fmt.Errorf("failed to get open port: %w", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// NewSQLiteDB opens an in-memory sqlite database that is closed when the test
// ends. The pool is limited to one connection so every query sees the same
// in-memory database.
func NewSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}
