package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"jobboard/internal/common"
	"jobboard/internal/domain/application"
)

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const pgForeignKeyViolation = "23503"

// Append is the conditional write behind "apply exactly once". The unique
// index on (job_id, user_id) makes the existence check and the insert a
// single atomic step: under concurrent appends for the same pair the engine
// admits exactly one row, and every loser sees zero rows affected.
func (r *ApplicationRepository) Append(ctx context.Context, rec application.Record) (*application.Record, error) {
	rec.ID = common.NewUUID()
	rec.Status = application.StatusPending
	rec.AppliedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `INSERT INTO applications (id, job_id, user_id, resume, status, applied_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (job_id, user_id) DO NOTHING`,
		rec.ID, rec.JobID, rec.UserID, rec.Resume, rec.Status, rec.AppliedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			if strings.Contains(pgErr.ConstraintName, "job") {
				return nil, common.NewError(common.CodeNotFound, "Job not found", err)
			}
			return nil, common.NewError(common.CodeUnauthorized, "Unknown applicant", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	if affected == 0 {
		return nil, common.NewError(common.CodeConflict, "Already applied to this job", nil)
	}
	return &rec, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, jobID common.UUID, userID string, status application.Status) error {
	result, err := r.db.ExecContext(ctx, `UPDATE applications SET status = $1 WHERE job_id = $2 AND user_id = $3`,
		status, jobID, userID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to update application", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to update application", err)
	}
	if affected == 0 {
		return common.NewError(common.CodeNotFound, "Applicant not found", nil)
	}
	return nil
}

func (r *ApplicationRepository) ListByUser(ctx context.Context, userID string) ([]application.AppliedJob, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT j.id, j.title, j.location, c.id, c.name, c.image, a.status, a.applied_at
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN companies c ON c.id = j.company_id
		WHERE a.user_id = $1
		ORDER BY a.applied_at DESC`, userID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applied jobs", err)
	}
	defer rows.Close()
	var items []application.AppliedJob
	for rows.Next() {
		var item application.AppliedJob
		if err := rows.Scan(&item.JobID, &item.Title, &item.Location, &item.Company.ID, &item.Company.Name, &item.Company.Image, &item.Status, &item.AppliedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan applied job", err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID common.UUID) ([]application.Applicant, error) {
	return r.listApplicants(ctx, `WHERE a.job_id = $1`, jobID)
}

func (r *ApplicationRepository) ListByCompany(ctx context.Context, companyID common.UUID) ([]application.Applicant, error) {
	return r.listApplicants(ctx, `WHERE j.company_id = $1`, companyID)
}

func (r *ApplicationRepository) listApplicants(ctx context.Context, where string, arg any) ([]application.Applicant, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT a.id, a.user_id, u.name, u.email, a.resume, a.status, a.applied_at, j.id, j.title
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN users u ON u.id = a.user_id
		`+where+`
		ORDER BY a.applied_at DESC`, arg)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applicants", err)
	}
	defer rows.Close()
	var items []application.Applicant
	for rows.Next() {
		var item application.Applicant
		if err := rows.Scan(&item.ID, &item.UserID, &item.UserName, &item.UserEmail, &item.Resume, &item.Status, &item.AppliedAt, &item.JobID, &item.JobTitle); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan applicant", err)
		}
		items = append(items, item)
	}
	return items, nil
}
