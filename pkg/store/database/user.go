package database

import (
	"context"

	"github.com/morning-briefings/briefctl/pkg/db"
	"github.com/morning-briefings/briefctl/pkg/db/models"
	"github.com/morning-briefings/briefctl/pkg/store"
)

type userStore struct {
	table string
}

var _ store.UserStore = (*userStore)(nil)

const userColumns = `id, email, password_hash, name, role, created_at, updated_at`

// UpsertUser implements store.UserStore.
func (s *userStore) UpsertUser(ctx context.Context, tx db.Handler, u models.User) error {
	query := tx.Rebind(`INSERT INTO ` + s.table + ` (` + userColumns + `)
			VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
			ON CONFLICT (email) DO UPDATE SET
				password_hash = EXCLUDED.password_hash,
				name = EXCLUDED.name,
				role = EXCLUDED.role,
				updated_at = CURRENT_TIMESTAMP;`)
	_, err := tx.ExecContext(ctx, query, u.ID, u.Email, u.PasswordHash, u.Name, u.Role)
	return err //nolint:wrapcheck
}

// FindUserByEmail implements store.UserStore.
func (s *userStore) FindUserByEmail(ctx context.Context, tx db.Handler, email string) (models.User, error) {
	var m models.User
	query := tx.Rebind(`SELECT ` + userColumns + ` FROM ` + s.table + ` WHERE email = ?;`)
	err := tx.GetContext(ctx, &m, query, email)
	return m, err //nolint:wrapcheck
}

// GetAllUsers implements store.UserStore.
func (s *userStore) GetAllUsers(ctx context.Context, tx db.Handler) ([]models.User, error) {
	var ms []models.User
	query := tx.Rebind(`SELECT ` + userColumns + ` FROM ` + s.table + `
			ORDER BY created_at DESC, email ASC;`)
	err := tx.SelectContext(ctx, &ms, query)
	return ms, err //nolint:wrapcheck
}

// CountUsers implements store.UserStore.
func (s *userStore) CountUsers(ctx context.Context, tx db.Handler) (int64, error) {
	var n int64
	err := tx.GetContext(ctx, &n, `SELECT COUNT(*) FROM `+s.table+`;`)
	return n, err //nolint:wrapcheck
}

// DeleteUserByEmail implements store.UserStore.
func (s *userStore) DeleteUserByEmail(ctx context.Context, tx db.Handler, email string) (int64, error) {
	query := tx.Rebind(`DELETE FROM ` + s.table + ` WHERE email = ?;`)
	res, err := tx.ExecContext(ctx, query, email)
	if err != nil {
		return 0, err //nolint:wrapcheck
	}
	return res.RowsAffected() //nolint:wrapcheck
}

// DeleteAllUsers implements store.UserStore.
func (s *userStore) DeleteAllUsers(ctx context.Context, tx db.Handler) (int64, error) {
	res, err := tx.ExecContext(ctx, `DELETE FROM `+s.table+`;`)
	if err != nil {
		return 0, err //nolint:wrapcheck
	}
	return res.RowsAffected() //nolint:wrapcheck
}
