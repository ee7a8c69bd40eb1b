package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/caffebar919/server/internal/model"
)

type AdminUserRepository interface {
	FindByID(ctx context.Context, id string) (*model.AdminUser, error)
	FindByUsername(ctx context.Context, username string) (*model.AdminUser, error)
	Create(ctx context.Context, params model.CreateAdminUserParams) (*model.AdminUser, error)
	UpdateLastLogin(ctx context.Context, id string) error
}

type adminUserRepo struct {
	db *sqlx.DB
}

func NewAdminUserRepository(db *sqlx.DB) AdminUserRepository {
	return &adminUserRepo{db: db}
}

func (r *adminUserRepo) FindByID(ctx context.Context, id string) (*model.AdminUser, error) {
	var user model.AdminUser
	err := r.db.GetContext(ctx, &user, `SELECT * FROM admin_users WHERE id = $1`, id)
	return HandleNotFound(&user, err)
}

func (r *adminUserRepo) FindByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	var user model.AdminUser
	err := r.db.GetContext(ctx, &user, `SELECT * FROM admin_users WHERE username = $1`, username)
	return HandleNotFound(&user, err)
}

func (r *adminUserRepo) Create(ctx context.Context, params model.CreateAdminUserParams) (*model.AdminUser, error) {
	var user model.AdminUser
	err := r.db.GetContext(ctx, &user, `
		INSERT INTO admin_users (id, username, password_hash)
		VALUES ($1, $2, $3)
		RETURNING *
	`, uuid.NewString(), params.Username, params.PasswordHash)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *adminUserRepo) UpdateLastLogin(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE admin_users SET last_login = $2 WHERE id = $1
	`, id, time.Now())
	return err
}
