package database

import (
	"context"

	"github.com/morning-briefings/briefctl/pkg/config"
	"github.com/morning-briefings/briefctl/pkg/db"
	"github.com/morning-briefings/briefctl/pkg/store"
)

type datastore struct {
	*userStore
	*entryStore
}

// New returns a new store.Store database. Tables are qualified with the
// schema of the configuration in ctx, except on SQLite which has no schema
// namespaces.
func New(ctx context.Context, dbx *db.DB) store.Store {
	cfg := config.FromContext(ctx)

	var schema string
	if cfg != nil && dbx != nil && dbx.DriverName() != db.DriverSQLite {
		schema = cfg.DB.Schema
	}

	s := &datastore{
		userStore:  &userStore{table: db.Table(schema, "users")},
		entryStore: &entryStore{table: db.Table(schema, "entries")},
	}

	return s
}
