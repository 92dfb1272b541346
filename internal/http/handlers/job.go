package handlers

import (
	"net/http"

	"jobboard/internal/app"
	"jobboard/internal/domain/job"
	"jobboard/internal/http/response"
)

type JobHandler struct {
	jobs *app.JobService
}

func NewJobHandler(jobs *app.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// List is the public board: visible jobs only.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.jobs.ListPublic(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	if items == nil {
		items = []job.WithCompany{}
	}
	response.JSON(w, http.StatusOK, map[string]any{"success": true, "jobs": items})
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := jobIDFromPath(r, "/api/jobs")
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.jobs.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"success": true, "job": item})
}
