package schema_test

import (
	"context"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/morning-briefings/briefctl/pkg/db"
	"github.com/morning-briefings/briefctl/pkg/db/schema"
	"github.com/morning-briefings/briefctl/pkg/test"
)

func countObjects(t *testing.T, dbx *db.DB, typ, name string) int {
	t.Helper()
	var n int
	if err := dbx.GetContext(context.TODO(), &n,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = ? AND name = ?`, typ, name); err != nil {
		t.Fatal(err)
	}
	return n
}

func TestSetupIdempotent(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	dbx, err := test.OpenSqlite(ctx, t)
	is.NoErr(err)

	for i := 0; i < 2; i++ {
		is.NoErr(schema.Setup(ctx, dbx, schema.Options{}))
	}

	is.Equal(countObjects(t, dbx, "table", "users"), 1)
	is.Equal(countObjects(t, dbx, "index", "idx_users_email"), 1)
	is.Equal(countObjects(t, dbx, "table", "entries"), 0)
}

func TestSetupWithEntries(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	dbx, err := test.OpenSqlite(ctx, t)
	is.NoErr(err)

	is.NoErr(schema.Setup(ctx, dbx, schema.Options{}))
	is.NoErr(schema.Setup(ctx, dbx, schema.Options{Entries: true}))
	is.NoErr(schema.Setup(ctx, dbx, schema.Options{Entries: true}))

	is.Equal(countObjects(t, dbx, "table", "users"), 1)
	is.Equal(countObjects(t, dbx, "table", "entries"), 1)
	is.Equal(countObjects(t, dbx, "index", "idx_entries_date"), 1)
}

func TestStatementsPostgres(t *testing.T) {
	is := is.New(t)
	stmts, err := schema.Statements(db.DriverPgx, schema.Options{Schema: "pu_morning_briefings"})
	is.NoErr(err)
	is.Equal(len(stmts), 2)
	is.Equal(stmts[0].Name, "users_table")
	is.True(strings.Contains(stmts[0].SQL, "CREATE TABLE IF NOT EXISTS pu_morning_briefings.users ("))
	is.True(strings.Contains(stmts[0].SQL, "TIMESTAMP(3)"))
	is.True(strings.Contains(stmts[1].SQL, "ON pu_morning_briefings.users (email)"))
}

func TestStatementsSqliteIgnoresSchema(t *testing.T) {
	is := is.New(t)
	stmts, err := schema.Statements(db.DriverSQLite, schema.Options{Schema: "pu_morning_briefings", Entries: true})
	is.NoErr(err)
	is.Equal(len(stmts), 4)
	for _, s := range stmts {
		is.True(!strings.Contains(s.SQL, "pu_morning_briefings"))
	}
}

func TestStatementsUnknownDriver(t *testing.T) {
	is := is.New(t)
	_, err := schema.Statements("mysql", schema.Options{})
	is.True(err != nil)
}

func TestStatementsInvalidSchema(t *testing.T) {
	is := is.New(t)
	_, err := schema.Statements(db.DriverPostgres, schema.Options{Schema: "public; DROP TABLE users"})
	is.True(err != nil)
}
