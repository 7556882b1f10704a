package store

import (
	"context"

	"github.com/morning-briefings/briefctl/pkg/db"
	"github.com/morning-briefings/briefctl/pkg/db/models"
)

// UserStore is an interface for managing users.
type UserStore interface {
	// UpsertUser inserts u, or updates the password hash, name and role of
	// the user that already has u.Email.
	UpsertUser(ctx context.Context, h db.Handler, u models.User) error
	FindUserByEmail(ctx context.Context, h db.Handler, email string) (models.User, error)
	GetAllUsers(ctx context.Context, h db.Handler) ([]models.User, error)
	CountUsers(ctx context.Context, h db.Handler) (int64, error)
	DeleteUserByEmail(ctx context.Context, h db.Handler, email string) (int64, error)
	DeleteAllUsers(ctx context.Context, h db.Handler) (int64, error)
}
