package handlers

import (
	"net/http"
	"time"

	"jobboard/internal/app"
	"jobboard/internal/common"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/http/middleware"
	"jobboard/internal/http/response"
)

// CompanyHandler covers the recruiter surface. This endpoint family reports
// failures through the success flag with HTTP 200, which the frontend it was
// built for expects; response.Fail keeps that contract in one place.
type CompanyHandler struct {
	companies    *app.CompanyService
	jobs         *app.JobService
	applications *app.ApplicationService
	limiter      middleware.Limiter
}

func NewCompanyHandler(companies *app.CompanyService, jobs *app.JobService, applications *app.ApplicationService, limiter middleware.Limiter) *CompanyHandler {
	return &CompanyHandler{companies: companies, jobs: jobs, applications: applications, limiter: limiter}
}

func (h *CompanyHandler) Register(w http.ResponseWriter, r *http.Request) {
	if h.limiter != nil && !h.limiter.Allow("register:"+middleware.ClientIP(r), 5, time.Minute) {
		response.Fail(w, common.NewError(common.CodeRateLimited, "too many registration attempts", nil))
		return
	}
	logo, err := formFile(r, "image", imageExts)
	if err != nil {
		response.Fail(w, err)
		return
	}
	name := r.FormValue("name")
	email := r.FormValue("email")
	password := r.FormValue("password")
	created, token, err := h.companies.Register(r.Context(), name, email, password, logo)
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"success": true, "company": created, "token": token})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *CompanyHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.limiter != nil && !h.limiter.Allow("login:"+middleware.ClientIP(r), 5, time.Minute) {
		response.Fail(w, common.NewError(common.CodeRateLimited, "too many login attempts", nil))
		return
	}
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Fail(w, err)
		return
	}
	c, token, err := h.companies.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"success": true, "company": c, "token": token})
}

func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.CompanyIDFromContext(r.Context())
	if !ok {
		response.Fail(w, errUnauthorized())
		return
	}
	c, err := h.companies.Get(r.Context(), companyID)
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"success": true, "company": c})
}

func (h *CompanyHandler) PostJob(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.CompanyIDFromContext(r.Context())
	if !ok {
		response.Fail(w, errUnauthorized())
		return
	}
	var input app.PostJobInput
	if err := decodeJSON(r, &input); err != nil {
		response.Fail(w, err)
		return
	}
	created, err := h.jobs.Post(r.Context(), companyID, input)
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"success": true, "job": created})
}

func (h *CompanyHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.CompanyIDFromContext(r.Context())
	if !ok {
		response.Fail(w, errUnauthorized())
		return
	}
	items, err := h.jobs.ListByCompany(r.Context(), companyID)
	if err != nil {
		response.Fail(w, err)
		return
	}
	if items == nil {
		items = []job.CompanyJob{}
	}
	response.JSON(w, http.StatusOK, map[string]any{"success": true, "jobsData": items})
}

// Applicants handles both the all-jobs and the per-job form; the per-job form
// carries the job id as the trailing path segment.
func (h *CompanyHandler) Applicants(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.CompanyIDFromContext(r.Context())
	if !ok {
		response.Fail(w, errUnauthorized())
		return
	}
	var items []application.Applicant
	var err error
	if r.URL.Path == "/api/company/applicants" {
		items, err = h.applications.ListApplicants(r.Context(), companyID)
	} else {
		var jobID common.UUID
		jobID, err = jobIDFromPath(r, "/api/company/applicants")
		if err == nil {
			items, err = h.applications.ListApplicantsForJob(r.Context(), jobID, companyID)
		}
	}
	if err != nil {
		response.Fail(w, err)
		return
	}
	if items == nil {
		items = []application.Applicant{}
	}
	response.JSON(w, http.StatusOK, map[string]any{"success": true, "applicants": items})
}

type changeStatusRequest struct {
	JobID       string `json:"jobId"`
	ApplicantID string `json:"applicantId"`
	Status      string `json:"status"`
}

func (h *CompanyHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.CompanyIDFromContext(r.Context())
	if !ok {
		response.Fail(w, errUnauthorized())
		return
	}
	var req changeStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Fail(w, err)
		return
	}
	jobID, err := common.ParseUUID(req.JobID)
	if err != nil {
		response.Fail(w, common.NewError(common.CodeNotFound, "Job not found", err))
		return
	}
	if err := h.applications.SetStatus(r.Context(), jobID, req.ApplicantID, application.Status(req.Status), companyID); err != nil {
		response.Fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"success": true, "message": "Status updated successfully"})
}

type jobIDRequest struct {
	ID string `json:"id"`
}

func (h *CompanyHandler) ChangeVisibility(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.CompanyIDFromContext(r.Context())
	if !ok {
		response.Fail(w, errUnauthorized())
		return
	}
	var req jobIDRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Fail(w, err)
		return
	}
	jobID, err := common.ParseUUID(req.ID)
	if err != nil {
		response.Fail(w, common.NewError(common.CodeNotFound, "Job not found", err))
		return
	}
	updated, err := h.jobs.ToggleVisibility(r.Context(), jobID, companyID)
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"success": true, "job": updated})
}

func (h *CompanyHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.CompanyIDFromContext(r.Context())
	if !ok {
		response.Fail(w, errUnauthorized())
		return
	}
	var req jobIDRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Fail(w, err)
		return
	}
	jobID, err := common.ParseUUID(req.ID)
	if err != nil {
		response.Fail(w, common.NewError(common.CodeNotFound, "Job not found", err))
		return
	}
	if err := h.jobs.Delete(r.Context(), jobID, companyID); err != nil {
		response.Fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"success": true, "message": "Job deleted successfully"})
}
