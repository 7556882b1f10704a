package backend

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/morning-briefings/briefctl/pkg/db"
	"github.com/morning-briefings/briefctl/pkg/db/models"
	"github.com/morning-briefings/briefctl/pkg/utils"
)

// DefaultRole is the role of users created without one.
const DefaultRole = "user"

// UserOptions are the optional attributes of a user.
type UserOptions struct {
	// Name is the display name. Empty stores NULL.
	Name string
	// Role defaults to DefaultRole.
	Role string
}

// UpsertUser creates the user with the given email, or updates the password,
// name and role of the existing one. The ID and creation time of an existing
// user are kept.
//
// The email is trimmed as well as lowercased, and values that are not of the
// form local@domain are rejected with ErrInvalidEmail instead of being
// stored as given.
func (d *Backend) UpsertUser(ctx context.Context, email string, password string, opts UserOptions) (models.User, error) {
	email, err := utils.NormalizeEmail(email)
	if err != nil {
		return models.User{}, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	role := strings.TrimSpace(opts.Role)
	if role == "" {
		role = DefaultRole
	}

	name := strings.TrimSpace(opts.Name)
	u := models.User{
		ID:           d.newID(),
		Email:        email,
		PasswordHash: hash,
		Name:         sql.NullString{String: name, Valid: name != ""},
		Role:         role,
	}

	var m models.User
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if err := d.store.UpsertUser(ctx, tx, u); err != nil {
			return db.WrapError(err)
		}

		var err error
		m, err = d.store.FindUserByEmail(ctx, tx, email)
		return db.WrapError(err)
	}); err != nil {
		d.logger.Error("error upserting user", "email", email, "err", err)
		return models.User{}, err
	}

	d.logger.Info("user upserted", "email", m.Email, "id", m.ID, "created", m.ID == u.ID)
	return m, nil
}

// User finds a user by email.
func (d *Backend) User(ctx context.Context, email string) (models.User, error) {
	email, err := utils.NormalizeEmail(email)
	if err != nil {
		return models.User{}, err
	}

	var m models.User
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		m, err = d.store.FindUserByEmail(ctx, tx, email)
		return db.WrapError(err)
	}); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		d.logger.Error("error finding user", "email", email, "err", err)
		return models.User{}, err
	}

	return m, nil
}

// Users returns all users, newest first.
func (d *Backend) Users(ctx context.Context) ([]models.User, error) {
	var ms []models.User
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		ms, err = d.store.GetAllUsers(ctx, tx)
		return db.WrapError(err)
	}); err != nil {
		return nil, err
	}

	return ms, nil
}

// Verification is the outcome of checking a password against a stored user.
type Verification struct {
	User models.User
	// IsBcrypt reports whether the stored hash is a bcrypt hash at all.
	IsBcrypt bool
	// Match reports whether the password matches the stored hash.
	Match bool
}

// VerifyUser checks password against the stored hash of the user with the
// given email.
func (d *Backend) VerifyUser(ctx context.Context, email string, password string) (Verification, error) {
	u, err := d.User(ctx, email)
	if err != nil {
		return Verification{}, err
	}

	v := Verification{
		User:     u,
		IsBcrypt: IsBcryptHash(u.PasswordHash),
	}
	if v.IsBcrypt {
		v.Match = VerifyPassword(password, u.PasswordHash)
	}

	return v, nil
}

// DeleteUser deletes the user with the given email.
func (d *Backend) DeleteUser(ctx context.Context, email string) error {
	email, err := utils.NormalizeEmail(email)
	if err != nil {
		return err
	}

	return d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		n, err := d.store.DeleteUserByEmail(ctx, tx, email)
		if err != nil {
			return db.WrapError(err)
		}
		if n == 0 {
			return ErrUserNotFound
		}

		d.logger.Info("user deleted", "email", email)
		return nil
	})
}

// ResetUsers deletes every user and returns the number of users before and
// after the deletion.
func (d *Backend) ResetUsers(ctx context.Context) (before int64, after int64, err error) {
	err = d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		before, err = d.store.CountUsers(ctx, tx)
		if err != nil {
			return db.WrapError(err)
		}

		if _, err := d.store.DeleteAllUsers(ctx, tx); err != nil {
			return db.WrapError(err)
		}

		after, err = d.store.CountUsers(ctx, tx)
		return db.WrapError(err)
	})
	if err != nil {
		return 0, 0, err
	}

	d.logger.Info("users reset", "deleted", before-after)
	return before, after, nil
}
