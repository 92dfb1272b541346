package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"jobboard/internal/common"
	"jobboard/internal/domain/company"
)

const pgUniqueViolation = "23505"

type CompanyRepository struct {
	db *sql.DB
}

func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Create(ctx context.Context, c company.Company) (*company.Company, error) {
	c.ID = common.NewUUID()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO companies (id, name, email, password_hash, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.Name, c.Email, c.PasswordHash, c.Image, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.NewError(common.CodeConflict, "Company already registered", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create company", err)
	}
	return &c, nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id common.UUID) (*company.Company, error) {
	return r.get(ctx, `SELECT id, name, email, password_hash, image, created_at, updated_at FROM companies WHERE id = $1`, id)
}

func (r *CompanyRepository) GetByEmail(ctx context.Context, email string) (*company.Company, error) {
	return r.get(ctx, `SELECT id, name, email, password_hash, image, created_at, updated_at FROM companies WHERE email = $1`, email)
}

func (r *CompanyRepository) get(ctx context.Context, query string, arg any) (*company.Company, error) {
	row := r.db.QueryRowContext(ctx, query, arg)
	var c company.Company
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.PasswordHash, &c.Image, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "company not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load company", err)
	}
	return &c, nil
}
