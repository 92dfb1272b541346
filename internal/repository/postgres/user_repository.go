package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/user"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Upsert(ctx context.Context, u user.User) (*user.User, error) {
	now := time.Now().UTC()
	row := r.db.QueryRowContext(ctx, `INSERT INTO users (id, name, email, image, resume, created_at, updated_at)
		VALUES ($1, $2, $3, $4, '', $5, $5)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, email = EXCLUDED.email, image = EXCLUDED.image, updated_at = EXCLUDED.updated_at
		RETURNING id, name, email, image, resume, created_at, updated_at`,
		u.ID, u.Name, u.Email, u.Image, now)
	var stored user.User
	if err := row.Scan(&stored.ID, &stored.Name, &stored.Email, &stored.Image, &stored.Resume, &stored.CreatedAt, &stored.UpdatedAt); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to upsert user", err)
	}
	return &stored, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, email, image, resume, created_at, updated_at FROM users WHERE id = $1`, id)
	var u user.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Image, &u.Resume, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "user not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load user", err)
	}
	return &u, nil
}

func (r *UserRepository) UpdateResume(ctx context.Context, id, resume string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET resume = $1, updated_at = $2 WHERE id = $3`,
		resume, time.Now().UTC(), id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to update resume", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to update resume", err)
	}
	if affected == 0 {
		return common.NewError(common.CodeNotFound, "user not found", nil)
	}
	return nil
}
