package app

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"jobboard/internal/common"
	"jobboard/internal/domain/job"
)

type JobService struct {
	repo     job.Repository
	validate *validator.Validate
}

func NewJobService(repo job.Repository) *JobService {
	return &JobService{repo: repo, validate: validator.New()}
}

type PostJobInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Level       string `json:"level" validate:"required"`
	Salary      int64  `json:"salary" validate:"required,gt=0"`
}

func (s *JobService) Post(ctx context.Context, companyID common.UUID, input PostJobInput) (*job.Job, error) {
	if err := s.validate.Struct(input); err != nil {
		fields := make(map[string]string)
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			for _, fe := range invalid {
				fields[fe.Field()] = "failed " + fe.Tag() + " validation"
			}
		}
		return nil, common.NewValidationError("All fields are required", fields)
	}
	return s.repo.Create(ctx, job.Job{
		CompanyID:   companyID,
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		Category:    input.Category,
		Level:       input.Level,
		Salary:      input.Salary,
		Visible:     true,
	})
}

func (s *JobService) ListPublic(ctx context.Context) ([]job.WithCompany, error) {
	return s.repo.ListVisible(ctx)
}

func (s *JobService) Get(ctx context.Context, id common.UUID) (*job.WithCompany, error) {
	return s.repo.GetWithCompany(ctx, id)
}

func (s *JobService) ListByCompany(ctx context.Context, companyID common.UUID) ([]job.CompanyJob, error) {
	return s.repo.ListByCompany(ctx, companyID)
}

func (s *JobService) ToggleVisibility(ctx context.Context, jobID, companyID common.UUID) (*job.Job, error) {
	j, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.CompanyID != companyID {
		return nil, common.NewError(common.CodeForbidden, "Unauthorized", nil)
	}
	return s.repo.ToggleVisibility(ctx, jobID)
}

func (s *JobService) Delete(ctx context.Context, jobID, companyID common.UUID) error {
	j, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if j.CompanyID != companyID {
		return common.NewError(common.CodeForbidden, "Unauthorized", nil)
	}
	return s.repo.Delete(ctx, jobID)
}
