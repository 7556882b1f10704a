package db

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/morning-briefings/briefctl/pkg/config"
)

// trace logs a statement once it has run. Statements are only traced in
// verbose mode since arguments may carry password hashes.
func trace(l *log.Logger, start time.Time, query string, args []interface{}, err error) {
	if l == nil || !config.IsVerbose() {
		return
	}
	query = strings.Join(strings.Fields(query), " ")
	l.Debug("trace", "query", query, "args", args, "took", time.Since(start), "err", err)
}

// GetContext is a wrapper around sqlx.GetContext that traces the query.
func (d *DB) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	start := time.Now()
	err := d.DB.GetContext(ctx, dest, query, args...)
	trace(d.logger, start, query, args, err)
	return err
}

// SelectContext is a wrapper around sqlx.SelectContext that traces the query.
func (d *DB) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	start := time.Now()
	err := d.DB.SelectContext(ctx, dest, query, args...)
	trace(d.logger, start, query, args, err)
	return err
}

// ExecContext is a wrapper around sqlx.ExecContext that traces the query.
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.DB.ExecContext(ctx, query, args...)
	trace(d.logger, start, query, args, err)
	return res, err
}

// GetContext is a wrapper around sqlx.GetContext that traces the query.
func (t *Tx) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	start := time.Now()
	err := t.Tx.GetContext(ctx, dest, query, args...)
	trace(t.logger, start, query, args, err)
	return err
}

// SelectContext is a wrapper around sqlx.SelectContext that traces the query.
func (t *Tx) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	start := time.Now()
	err := t.Tx.SelectContext(ctx, dest, query, args...)
	trace(t.logger, start, query, args, err)
	return err
}

// ExecContext is a wrapper around sqlx.ExecContext that traces the query.
func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.Tx.ExecContext(ctx, query, args...)
	trace(t.logger, start, query, args, err)
	return res, err
}
