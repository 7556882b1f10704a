// Package schema creates the tables briefctl writes to. Every statement is
// idempotent so Setup can be run any number of times against the same
// database. There is no version bookkeeping.
package schema

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"text/template"

	"github.com/charmbracelet/log"
	"github.com/morning-briefings/briefctl/pkg/db"
	"github.com/morning-briefings/briefctl/pkg/utils"
)

//go:embed *.sql
var sqls embed.FS

// Step is one schema statement.
type Step struct {
	Name string
	// Entries marks steps that only run when the sandbox entries table was
	// requested.
	Entries bool
}

// Keep this in order of execution.
var steps = []Step{
	{Name: "users_table"},
	{Name: "users_email_index"},
	{Name: "entries_table", Entries: true},
	{Name: "entries_date_index", Entries: true},
}

// Options configures Setup.
type Options struct {
	// Schema is the namespace tables are created in. Ignored for SQLite.
	Schema string
	// Entries also creates the entries table. Production databases own that
	// table, so this is meant for sandboxes.
	Entries bool
}

// Setup creates the users table and its email index, and optionally the
// entries table, inside a single transaction.
func Setup(ctx context.Context, dbx *db.DB, opts Options) error {
	logger := log.FromContext(ctx).WithPrefix("schema")
	stmts, err := Statements(dbx.DriverName(), opts)
	if err != nil {
		return err
	}

	return dbx.TransactionContext(ctx, func(tx *db.Tx) error {
		for i, stmt := range stmts {
			logger.Debug("applying", "step", stmt.Name, "n", i+1, "of", len(stmts))
			if _, err := tx.ExecContext(ctx, stmt.SQL); err != nil {
				return fmt.Errorf("%s: %w", stmt.Name, db.WrapError(err))
			}
		}
		return nil
	})
}

// Statement is a rendered schema statement.
type Statement struct {
	Name string
	SQL  string
}

// Statements renders the statements Setup would run for the given driver.
func Statements(driverName string, opts Options) ([]Statement, error) {
	dialect := "postgres"
	schema := opts.Schema
	switch driverName {
	case db.DriverPgx, db.DriverPostgres:
	case db.DriverSQLite, "sqlite3":
		dialect = "sqlite"
		schema = ""
	default:
		return nil, fmt.Errorf("unsupported driver: %q", driverName)
	}
	if schema != "" {
		if err := utils.ValidateIdentifier(schema); err != nil {
			return nil, fmt.Errorf("invalid schema name %q: %w", schema, err)
		}
	}

	funcs := template.FuncMap{
		"table": func(name string) string {
			return db.Table(schema, name)
		},
	}

	var stmts []Statement
	for _, s := range steps {
		if s.Entries && !opts.Entries {
			continue
		}

		fn := fmt.Sprintf("%s_%s.sql", s.Name, dialect)
		raw, err := sqls.ReadFile(fn)
		if err != nil {
			return nil, err
		}

		tmpl, err := template.New(fn).Funcs(funcs).Parse(string(raw))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", fn, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, nil); err != nil {
			return nil, fmt.Errorf("render %s: %w", fn, err)
		}

		stmts = append(stmts, Statement{Name: s.Name, SQL: buf.String()})
	}

	return stmts, nil
}
