package application

import (
	"context"

	"jobboard/internal/common"
)

type Repository interface {
	// Append performs the conditional write: insert the record only if no
	// record for (job, applicant) exists, as one atomic statement at the
	// storage layer. It fails with a conflict error when the pair already
	// has a record and with not_found when the job is gone. Two concurrent
	// appends for the same pair can never both succeed.
	Append(ctx context.Context, rec Record) (*Record, error)
	// UpdateStatus overwrites the status of the (job, applicant) record and
	// fails with not_found when no such record exists.
	UpdateStatus(ctx context.Context, jobID common.UUID, userID string, status Status) error
	ListByUser(ctx context.Context, userID string) ([]AppliedJob, error)
	ListByJob(ctx context.Context, jobID common.UUID) ([]Applicant, error)
	ListByCompany(ctx context.Context, companyID common.UUID) ([]Applicant, error)
}
