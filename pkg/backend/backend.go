package backend

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/morning-briefings/briefctl/pkg/config"
	"github.com/morning-briefings/briefctl/pkg/db"
	"github.com/morning-briefings/briefctl/pkg/store"
)

// Backend runs the administrative operations on the briefing database:
// user management, entry seeding and schema setup. Every operation runs in
// its own transaction.
type Backend struct {
	ctx    context.Context
	cfg    *config.Config
	db     *db.DB
	store  store.Store
	logger *log.Logger

	newID func() string
	now   func() time.Time
}

// New returns a new backend.
func New(ctx context.Context, cfg *config.Config, dbx *db.DB, st store.Store) *Backend {
	logger := log.FromContext(ctx).WithPrefix("backend")
	b := &Backend{
		ctx:    ctx,
		cfg:    cfg,
		db:     dbx,
		store:  st,
		logger: logger,
		newID:  uuid.NewString,
		now:    time.Now,
	}

	return b
}

// DB returns the database handle of the backend.
func (d *Backend) DB() *db.DB {
	return d.db
}

func (d *Backend) schema() string {
	if d.cfg == nil {
		return ""
	}
	return d.cfg.DB.Schema
}
