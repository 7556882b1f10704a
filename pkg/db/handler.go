package db

import (
	"context"
	"database/sql"
)

// Handler is a database handler. Both *DB and *Tx implement it.
type Handler interface {
	Rebind(string) string
	DriverName() string

	GetContext(context.Context, interface{}, string, ...interface{}) error
	SelectContext(context.Context, interface{}, string, ...interface{}) error
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
}

var (
	_ Handler = (*DB)(nil)
	_ Handler = (*Tx)(nil)
)
