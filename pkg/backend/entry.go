package backend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/morning-briefings/briefctl/pkg/db"
	"github.com/morning-briefings/briefctl/pkg/db/models"
	"github.com/morning-briefings/briefctl/pkg/fixtures"
)

// DateCycle is the number of days seeded entry dates cycle through.
const DateCycle = 7

// EntryDate returns the date of the i-th seeded entry: midnight of today
// minus i%DateCycle days.
func EntryDate(today time.Time, i int) time.Time {
	y, m, d := today.Date()
	return time.Date(y, m, d-(i%DateCycle), 0, 0, 0, 0, today.Location())
}

// SeedResult summarizes a seeding run.
type SeedResult struct {
	Inserted int
	Approved int
	Pending  int
}

// SeedEntries inserts every entry of f in a single transaction. Each entry
// gets a new ID so seeding twice duplicates the entries. If any insert
// fails, none of the entries are kept.
func (d *Backend) SeedEntries(ctx context.Context, f fixtures.Fixture) (SeedResult, error) {
	if len(f.Entries) == 0 {
		return SeedResult{}, fixtures.ErrEmptyFixture
	}

	today := d.now()
	var res SeedResult
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		for i, e := range f.Entries {
			status := e.Status
			if status == "" {
				status = fixtures.DefaultStatus
			}

			m := models.Entry{
				ID:        d.newID(),
				Category:  e.Category,
				Priority:  e.Priority,
				Region:    e.Region,
				Country:   e.Country,
				Headline:  e.Headline,
				Date:      EntryDate(today, i),
				Entry:     e.Entry,
				SourceURL: e.SourceURL,
				PuNote:    e.PuNote,
				Author:    e.Author,
				Status:    status,
				Approved:  e.Approved,
			}
			if err := d.store.CreateEntry(ctx, tx, m); err != nil {
				return fmt.Errorf("insert entry %d %q: %w", i+1, e.Headline, db.WrapError(err))
			}

			res.Inserted++
			if e.Approved {
				res.Approved++
			} else {
				res.Pending++
			}
		}
		return nil
	}); err != nil {
		d.logger.Error("error seeding entries", "err", err)
		return SeedResult{}, err
	}

	d.logger.Info("entries seeded", "count", res.Inserted)
	return res, nil
}

// EntryFilter restricts the entries returned by Entries.
type EntryFilter struct {
	// Since keeps entries dated on or after the day that lies Since before
	// now. Zero keeps all entries.
	Since time.Duration
	// Region is a case-insensitive glob matched against the entry region.
	// Empty keeps all regions.
	Region string
}

// Entries returns the entries matching filter, newest first.
func (d *Backend) Entries(ctx context.Context, filter EntryFilter) ([]models.Entry, error) {
	var region glob.Glob
	if filter.Region != "" {
		g, err := glob.Compile(strings.ToLower(filter.Region))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
		}
		region = g
	}

	var ms []models.Entry
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		ms, err = d.store.GetAllEntries(ctx, tx)
		return db.WrapError(err)
	}); err != nil {
		return nil, err
	}

	var cutoff time.Time
	if filter.Since > 0 {
		cutoff = EntryDate(d.now().Add(-filter.Since), 0)
	}

	entries := ms[:0]
	for _, m := range ms {
		if !cutoff.IsZero() && m.Date.Before(cutoff) {
			continue
		}
		if region != nil && !region.Match(strings.ToLower(m.Region)) {
			continue
		}
		entries = append(entries, m)
	}

	return entries, nil
}
