// Package db provides the database handle and transaction management for
// briefctl.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"  // postgres driver
	_ "modernc.org/sqlite" // sqlite driver
)

// Driver names understood by Open.
const (
	DriverPgx      = "pgx"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ApplicationName is reported to Postgres as the connection's
// application_name.
const ApplicationName = "briefctl"

// DB is a database handle.
type DB struct {
	*sqlx.DB
	logger *log.Logger
}

// Open opens a database connection and verifies it with a ping. The handle
// holds at most one open connection.
func Open(ctx context.Context, driverName string, dsn string) (*DB, error) {
	var (
		dbx *sqlx.DB
		err error
	)

	switch driverName {
	case DriverPgx:
		var cfg *pgx.ConnConfig
		cfg, err = pgx.ParseConfig(dsn)
		if err != nil {
			return nil, &Error{Kind: KindConnection, Op: "parse dsn", Err: err}
		}
		cfg.RuntimeParams["application_name"] = ApplicationName
		dbx = sqlx.NewDb(stdlib.OpenDB(*cfg), DriverPgx)
		if err = dbx.PingContext(ctx); err != nil {
			dbx.Close() // nolint: errcheck
		}
	default:
		dbx, err = sqlx.ConnectContext(ctx, driverName, dsn)
	}
	if err != nil {
		return nil, &Error{Kind: KindConnection, Op: "connect", Err: err}
	}

	dbx.SetMaxOpenConns(1)

	d := &DB{
		DB:     dbx,
		logger: log.FromContext(ctx).WithPrefix("db"),
	}

	return d, nil
}

// Close closes the database handle.
func (d *DB) Close() error {
	return d.DB.Close()
}

// Tx is a database transaction.
type Tx struct {
	*sqlx.Tx
	logger *log.Logger
}

// TransactionContext runs fn inside a transaction. The transaction is
// committed when fn returns nil and rolled back otherwise. It is also rolled
// back, with the context error returned, when ctx is done before the commit.
func (d *DB) TransactionContext(ctx context.Context, fn func(tx *Tx) error) error {
	txx, err := d.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", WrapError(err))
	}

	tx := &Tx{txx, d.logger}
	if err := fn(tx); err != nil {
		return rollback(tx, err)
	}

	// Never commit once ctx is done.
	if err := ctx.Err(); err != nil {
		return rollback(tx, fmt.Errorf("commit transaction: %w", err))
	}

	if err := tx.Commit(); err != nil {
		if errors.Is(err, sql.ErrTxDone) {
			if cerr := ctx.Err(); cerr != nil {
				return fmt.Errorf("commit transaction: %w", cerr)
			}
			// whoever finished the tx already reported the error.
			return nil
		}
		return fmt.Errorf("commit transaction: %w", WrapError(err))
	}

	return nil
}

func rollback(tx *Tx, err error) error {
	if rerr := tx.Rollback(); rerr != nil {
		if errors.Is(rerr, sql.ErrTxDone) {
			return err
		}
		return fmt.Errorf("failed to rollback: %s: %w", err.Error(), rerr)
	}

	tx.logger.Debug("transaction rolled back", "err", err)
	return err
}

// Table returns the name of table qualified with schema. An empty schema
// yields the bare table name.
func Table(schema, table string) string {
	if schema == "" {
		return table
	}
	return schema + "." + table
}
