// Package test provides testing utilities for database operations.
package test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/morning-briefings/briefctl/pkg/db"
)

// SqliteDSN returns a SQLite data source for a database file in dir.
func SqliteDSN(dir string) string {
	return filepath.Join(dir, "test.db") + "?_pragma=foreign_keys(1)&_time_format=sqlite"
}

// OpenSqlite opens a new temp SQLite database for testing.
// It closes the database when the test is done using tb.Cleanup.
// If ctx is nil, context.TODO() is used.
func OpenSqlite(ctx context.Context, tb testing.TB) (*db.DB, error) {
	if ctx == nil {
		ctx = context.TODO()
	}
	dbx, err := db.Open(ctx, db.DriverSQLite, SqliteDSN(tb.TempDir()))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	tb.Cleanup(func() {
		if err := dbx.Close(); err != nil {
			tb.Error(err)
		}
	})
	return dbx, nil
}
