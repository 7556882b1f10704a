package models

import "time"

// Entry is a database model for a briefing entry.
type Entry struct {
	ID        string    `db:"id"`
	Category  string    `db:"category"`
	Priority  string    `db:"priority"`
	Region    string    `db:"region"`
	Country   string    `db:"country"`
	Headline  string    `db:"headline"`
	Date      time.Time `db:"date"`
	Entry     string    `db:"entry"`
	SourceURL string    `db:"source_url"`
	PuNote    string    `db:"pu_note"`
	Author    string    `db:"author"`
	Status    string    `db:"status"`
	Approved  bool      `db:"approved"`
	UpdatedAt time.Time `db:"updated_at"`
}
