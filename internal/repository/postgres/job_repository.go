package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/job"
)

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	j.ID = common.NewUUID()
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO jobs (id, company_id, title, description, location, category, level, salary, visible, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		j.ID, j.CompanyID, j.Title, j.Description, j.Location, j.Category, j.Level, j.Salary, j.Visible, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create job", err)
	}
	return &j, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, company_id, title, description, location, category, level, salary, visible, created_at, updated_at
		FROM jobs WHERE id = $1`, id)
	var j job.Job
	if err := row.Scan(&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Location, &j.Category, &j.Level, &j.Salary, &j.Visible, &j.CreatedAt, &j.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "Job not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load job", err)
	}
	return &j, nil
}

func (r *JobRepository) GetWithCompany(ctx context.Context, id common.UUID) (*job.WithCompany, error) {
	row := r.db.QueryRowContext(ctx, `SELECT j.id, j.company_id, j.title, j.description, j.location, j.category, j.level, j.salary, j.visible, j.created_at, j.updated_at,
		c.id, c.name, c.email, c.image
		FROM jobs j JOIN companies c ON c.id = j.company_id
		WHERE j.id = $1`, id)
	var item job.WithCompany
	if err := scanWithCompany(row, &item); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "Job not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load job", err)
	}
	return &item, nil
}

func (r *JobRepository) ListVisible(ctx context.Context) ([]job.WithCompany, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT j.id, j.company_id, j.title, j.description, j.location, j.category, j.level, j.salary, j.visible, j.created_at, j.updated_at,
		c.id, c.name, c.email, c.image
		FROM jobs j JOIN companies c ON c.id = j.company_id
		WHERE j.visible = TRUE
		ORDER BY j.created_at DESC`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list jobs", err)
	}
	defer rows.Close()
	var items []job.WithCompany
	for rows.Next() {
		var item job.WithCompany
		if err := scanWithCompany(rows, &item); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan job", err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *JobRepository) ListByCompany(ctx context.Context, companyID common.UUID) ([]job.CompanyJob, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT j.id, j.company_id, j.title, j.description, j.location, j.category, j.level, j.salary, j.visible, j.created_at, j.updated_at,
		COUNT(a.id)
		FROM jobs j LEFT JOIN applications a ON a.job_id = j.id
		WHERE j.company_id = $1
		GROUP BY j.id
		ORDER BY j.created_at DESC`, companyID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list company jobs", err)
	}
	defer rows.Close()
	var items []job.CompanyJob
	for rows.Next() {
		var item job.CompanyJob
		if err := rows.Scan(&item.ID, &item.CompanyID, &item.Title, &item.Description, &item.Location, &item.Category, &item.Level, &item.Salary, &item.Visible, &item.CreatedAt, &item.UpdatedAt, &item.ApplicantsCount); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan company job", err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *JobRepository) ToggleVisibility(ctx context.Context, id common.UUID) (*job.Job, error) {
	row := r.db.QueryRowContext(ctx, `UPDATE jobs SET visible = NOT visible, updated_at = $1 WHERE id = $2
		RETURNING id, company_id, title, description, location, category, level, salary, visible, created_at, updated_at`,
		time.Now().UTC(), id)
	var j job.Job
	if err := row.Scan(&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Location, &j.Category, &j.Level, &j.Salary, &j.Visible, &j.CreatedAt, &j.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "Job not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to update job", err)
	}
	return &j, nil
}

func (r *JobRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete job", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete job", err)
	}
	if affected == 0 {
		return common.NewError(common.CodeNotFound, "Job not found", nil)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWithCompany(row rowScanner, item *job.WithCompany) error {
	return row.Scan(&item.ID, &item.CompanyID, &item.Title, &item.Description, &item.Location, &item.Category, &item.Level, &item.Salary, &item.Visible, &item.CreatedAt, &item.UpdatedAt,
		&item.Company.ID, &item.Company.Name, &item.Company.Email, &item.Company.Image)
}
