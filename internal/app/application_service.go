package app

import (
	"context"
	"path"
	"strings"

	"jobboard/internal/common"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
	"jobboard/internal/storage"
)

type ApplicationService struct {
	repo  application.Repository
	jobs  job.Repository
	users user.Repository
	store storage.ObjectStore
}

func NewApplicationService(repo application.Repository, jobs job.Repository, users user.Repository, store storage.ObjectStore) *ApplicationService {
	return &ApplicationService{repo: repo, jobs: jobs, users: users, store: store}
}

// Apply resolves a resume reference and appends one ledger record. The
// duplicate check lives in the repository's conditional write, not here: a
// read-then-write in this layer would race under concurrent submissions.
// Nothing is written until the resume reference is resolved, so an upload
// failure leaves the ledger untouched.
func (s *ApplicationService) Apply(ctx context.Context, jobID common.UUID, userID string, resume *storage.Upload) (*application.Record, error) {
	applicant, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeUnauthorized, "Unknown applicant", err)
		}
		return nil, err
	}

	resumeURL := applicant.Resume
	if resume != nil {
		uploaded, err := s.store.Put(ctx, resumeKey(resume.Name), *resume)
		if err != nil {
			return nil, common.NewError(common.CodeUpstream, "Failed to upload resume", err)
		}
		resumeURL = uploaded
	}
	if resumeURL == "" {
		return nil, common.NewError(common.CodeValidation, "Resume required", nil)
	}

	return s.repo.Append(ctx, application.Record{
		JobID:  jobID,
		UserID: userID,
		Resume: resumeURL,
	})
}

// SetStatus overwrites an applicant's status. Ownership is checked before any
// mutation; transitions are deliberately unrestricted between the known
// statuses, matching long-standing recruiter-facing behavior.
func (s *ApplicationService) SetStatus(ctx context.Context, jobID common.UUID, userID string, status application.Status, companyID common.UUID) error {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if j.CompanyID != companyID {
		return common.NewError(common.CodeForbidden, "Unauthorized", nil)
	}
	if !application.IsKnownStatus(status) {
		return common.NewValidationError("Invalid status", map[string]string{"status": "status must be Pending, Accepted, or Rejected"})
	}
	return s.repo.UpdateStatus(ctx, jobID, userID, status)
}

func (s *ApplicationService) ListForUser(ctx context.Context, userID string) ([]application.AppliedJob, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *ApplicationService) ListApplicants(ctx context.Context, companyID common.UUID) ([]application.Applicant, error) {
	return s.repo.ListByCompany(ctx, companyID)
}

func (s *ApplicationService) ListApplicantsForJob(ctx context.Context, jobID, companyID common.UUID) ([]application.Applicant, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.CompanyID != companyID {
		return nil, common.NewError(common.CodeForbidden, "Unauthorized access", nil)
	}
	return s.repo.ListByJob(ctx, jobID)
}

func resumeKey(name string) string {
	ext := strings.ToLower(path.Ext(name))
	return "resumes/" + common.NewUUID().String() + ext
}
