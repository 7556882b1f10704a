package store

import (
	"context"

	"github.com/morning-briefings/briefctl/pkg/db"
	"github.com/morning-briefings/briefctl/pkg/db/models"
)

// EntryStore is an interface for managing briefing entries.
type EntryStore interface {
	CreateEntry(ctx context.Context, h db.Handler, e models.Entry) error
	GetAllEntries(ctx context.Context, h db.Handler) ([]models.Entry, error)
	CountEntries(ctx context.Context, h db.Handler) (int64, error)
}
