package job

import (
	"context"

	"jobboard/internal/common"
)

type Repository interface {
	Create(ctx context.Context, j Job) (*Job, error)
	GetByID(ctx context.Context, id common.UUID) (*Job, error)
	GetWithCompany(ctx context.Context, id common.UUID) (*WithCompany, error)
	ListVisible(ctx context.Context) ([]WithCompany, error)
	ListByCompany(ctx context.Context, companyID common.UUID) ([]CompanyJob, error)
	// ToggleVisibility flips the flag in a single statement and returns the
	// updated job.
	ToggleVisibility(ctx context.Context, id common.UUID) (*Job, error)
	Delete(ctx context.Context, id common.UUID) error
}
