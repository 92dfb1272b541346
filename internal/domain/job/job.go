package job

import (
	"time"

	"jobboard/internal/common"
)

type Job struct {
	ID          common.UUID `json:"_id"`
	CompanyID   common.UUID `json:"companyId"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Location    string      `json:"location"`
	Category    string      `json:"category"`
	Level       string      `json:"level"`
	Salary      int64       `json:"salary"`
	Visible     bool        `json:"visible"`
	CreatedAt   time.Time   `json:"date"`
	UpdatedAt   time.Time   `json:"-"`
}

// CompanySummary is the company view embedded in listings; never carries the
// password hash.
type CompanySummary struct {
	ID    common.UUID `json:"_id"`
	Name  string      `json:"name"`
	Email string      `json:"email,omitempty"`
	Image string      `json:"image"`
}

type WithCompany struct {
	Job
	Company CompanySummary `json:"company"`
}

// CompanyJob is the recruiter-side listing row.
type CompanyJob struct {
	Job
	ApplicantsCount int `json:"applicantsCount"`
}
