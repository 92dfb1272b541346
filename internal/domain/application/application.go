package application

import (
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/job"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusAccepted Status = "Accepted"
	StatusRejected Status = "Rejected"
)

func IsKnownStatus(status Status) bool {
	switch status {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	default:
		return false
	}
}

// Record is one entry in the application ledger: at most one per
// (job, applicant) pair, created by the conditional append and mutated only
// through status changes by the owning company.
type Record struct {
	ID        common.UUID `json:"_id"`
	JobID     common.UUID `json:"jobId"`
	UserID    string      `json:"userId"`
	Resume    string      `json:"resume,omitempty"`
	Status    Status      `json:"status"`
	AppliedAt time.Time   `json:"appliedAt"`
}

// AppliedJob is the seeker-side read model behind GET /api/jobs/applied.
type AppliedJob struct {
	JobID     common.UUID        `json:"_id"`
	Title     string             `json:"title"`
	Location  string             `json:"location"`
	Company   job.CompanySummary `json:"companyId"`
	Status    Status             `json:"status"`
	AppliedAt time.Time          `json:"createdAt"`
}

// Applicant is the recruiter-side read model.
type Applicant struct {
	ID        common.UUID `json:"_id"`
	UserID    string      `json:"userId"`
	UserName  string      `json:"name"`
	UserEmail string      `json:"email"`
	Resume    string      `json:"resume,omitempty"`
	Status    Status      `json:"status"`
	AppliedAt time.Time   `json:"appliedAt"`
	JobID     common.UUID `json:"jobId"`
	JobTitle  string      `json:"jobTitle"`
}
