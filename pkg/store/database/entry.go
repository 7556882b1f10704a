package database

import (
	"context"

	"github.com/morning-briefings/briefctl/pkg/db"
	"github.com/morning-briefings/briefctl/pkg/db/models"
	"github.com/morning-briefings/briefctl/pkg/store"
)

type entryStore struct {
	table string
}

var _ store.EntryStore = (*entryStore)(nil)

// CreateEntry implements store.EntryStore.
func (s *entryStore) CreateEntry(ctx context.Context, tx db.Handler, e models.Entry) error {
	query := tx.Rebind(`INSERT INTO ` + s.table + ` (id, category, priority, region, country,
				headline, date, entry, source_url, pu_note, author, status, approved, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP);`)
	_, err := tx.ExecContext(ctx, query,
		e.ID, e.Category, e.Priority, e.Region, e.Country,
		e.Headline, e.Date, e.Entry, e.SourceURL, e.PuNote, e.Author, e.Status, e.Approved)
	return err //nolint:wrapcheck
}

// GetAllEntries implements store.EntryStore. Entries are ordered newest
// first. Optional text columns read back as empty strings.
func (s *entryStore) GetAllEntries(ctx context.Context, tx db.Handler) ([]models.Entry, error) {
	var ms []models.Entry
	query := tx.Rebind(`SELECT id,
				COALESCE(category, '') AS category,
				COALESCE(priority, '') AS priority,
				COALESCE(region, '') AS region,
				COALESCE(country, '') AS country,
				COALESCE(headline, '') AS headline,
				date,
				COALESCE(entry, '') AS entry,
				COALESCE(source_url, '') AS source_url,
				COALESCE(pu_note, '') AS pu_note,
				COALESCE(author, '') AS author,
				COALESCE(status, '') AS status,
				approved,
				updated_at
			FROM ` + s.table + `
			ORDER BY date DESC, updated_at DESC;`)
	err := tx.SelectContext(ctx, &ms, query)
	return ms, err //nolint:wrapcheck
}

// CountEntries implements store.EntryStore.
func (s *entryStore) CountEntries(ctx context.Context, tx db.Handler) (int64, error) {
	var n int64
	err := tx.GetContext(ctx, &n, `SELECT COUNT(*) FROM `+s.table+`;`)
	return n, err //nolint:wrapcheck
}
