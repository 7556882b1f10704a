package db

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrDuplicateKey is a unique constraint violation error.
	ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")

	// ErrRecordNotFound is returned when a record is not found.
	ErrRecordNotFound = sql.ErrNoRows
)

// SQLSTATE codes used for classification.
const (
	codeUniqueViolation     = "23505"
	codeNotNullViolation    = "23502"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// Kind classifies a database failure.
type Kind int

const (
	// KindQuery is any statement failure that is neither a connection nor a
	// constraint problem: syntax errors, missing tables, type mismatches.
	KindQuery Kind = iota
	// KindConnection covers failures to reach, authenticate with, or stay
	// connected to the server. These are the only retryable failures.
	KindConnection
	// KindConstraint is an integrity constraint violation.
	KindConstraint
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindConstraint:
		return "constraint"
	default:
		return "query"
	}
}

// Error is a classified database error.
type Error struct {
	Kind Kind
	// Code is the SQLSTATE of the failure when known. SQLite constraint
	// codes are mapped to their SQLSTATE equivalent.
	Code string
	// Op optionally names the operation that failed.
	Op  string
	Err error
}

// Error implements error.
func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying driver error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports unique violations as ErrDuplicateKey.
func (e *Error) Is(target error) bool {
	return target == ErrDuplicateKey && e.Code == codeUniqueViolation //nolint:errorlint
}

// WrapError is a convenient function that unites the various database
// driver errors into a classified *Error. sql.ErrNoRows is returned as
// ErrRecordNotFound and errors that are already classified pass through.
func WrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRecordNotFound
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}

	kind, code := classify(err)
	return &Error{Kind: kind, Code: code, Err: err}
}

// KindOf returns the kind of err. Unclassified errors are KindQuery.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	kind, _ := classify(err)
	return kind
}

// IsRetryable returns true if err is a connection failure.
func IsRetryable(err error) bool {
	return err != nil && KindOf(err) == KindConnection
}

func classify(err error) (Kind, string) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		return sqlStateKind(code), code
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return sqlStateKind(pgErr.Code), pgErr.Code
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return KindConnection, ""
	}

	// Handle sqlite errors.
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		switch code {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return KindConstraint, codeUniqueViolation
		case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return KindConstraint, codeNotNullViolation
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return KindConstraint, codeForeignKeyViolation
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			return KindConstraint, codeCheckViolation
		}
		switch code & 0xff {
		case sqlite3.SQLITE_CONSTRAINT:
			return KindConstraint, ""
		case sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_NOTADB:
			return KindConnection, ""
		}
		return KindQuery, strconv.Itoa(code)
	}

	if errors.Is(err, driver.ErrBadConn) {
		return KindConnection, ""
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindConnection, ""
	}

	return KindQuery, ""
}

func sqlStateKind(code string) Kind {
	if len(code) < 2 {
		return KindQuery
	}
	switch code[:2] {
	case "23":
		return KindConstraint
	case "08", "28", "53":
		// connection exception, invalid authorization, insufficient resources
		return KindConnection
	case "57":
		// admin_shutdown, crash_shutdown, cannot_connect_now
		if code == "57P01" || code == "57P02" || code == "57P03" {
			return KindConnection
		}
	}
	return KindQuery
}
