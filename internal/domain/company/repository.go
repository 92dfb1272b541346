package company

import (
	"context"

	"jobboard/internal/common"
)

type Repository interface {
	Create(ctx context.Context, c Company) (*Company, error)
	GetByID(ctx context.Context, id common.UUID) (*Company, error)
	GetByEmail(ctx context.Context, email string) (*Company, error)
}
