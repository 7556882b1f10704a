package backend

import (
	"context"

	"github.com/morning-briefings/briefctl/pkg/db"
	"github.com/morning-briefings/briefctl/pkg/db/schema"
)

// Setup creates the users table and its index. withEntries also creates the
// entries table for sandbox databases.
func (d *Backend) Setup(ctx context.Context, withEntries bool) error {
	opts := schema.Options{
		Schema:  d.schema(),
		Entries: withEntries,
	}
	if err := schema.Setup(ctx, d.db, opts); err != nil {
		d.logger.Error("error setting up schema", "err", err)
		return err
	}

	return nil
}

// ServerInfo describes the database server the backend is connected to.
type ServerInfo struct {
	Driver  string
	Version string
}

// Ping checks that the database is reachable and reports its version.
func (d *Backend) Ping(ctx context.Context) (ServerInfo, error) {
	info := ServerInfo{Driver: d.db.DriverName()}
	if err := d.db.PingContext(ctx); err != nil {
		return info, db.WrapError(err)
	}

	query := `SELECT version();`
	if info.Driver == db.DriverSQLite {
		query = `SELECT sqlite_version();`
	}
	if err := d.db.GetContext(ctx, &info.Version, query); err != nil {
		return info, db.WrapError(err)
	}

	return info, nil
}
