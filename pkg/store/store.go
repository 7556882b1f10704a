package store

// Store is an interface for managing users and briefing entries.
type Store interface {
	UserStore
	EntryStore
}
