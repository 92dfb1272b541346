package handlers

import (
	"net/http"
	"time"

	"jobboard/internal/app"
	"jobboard/internal/common"
	"jobboard/internal/http/middleware"
	"jobboard/internal/http/response"
)

type ApplicationHandler struct {
	applications *app.ApplicationService
	limiter      middleware.Limiter
}

func NewApplicationHandler(applications *app.ApplicationService, limiter middleware.Limiter) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, limiter: limiter}
}

// Apply handles POST /api/jobs/apply/{id}. The resume part is optional; the
// applicant's stored resume is the fallback.
func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	jobID, err := jobIDFromPath(r, "/api/jobs/apply")
	if err != nil {
		response.Error(w, err)
		return
	}
	if h.limiter != nil {
		key := "apply:" + jobID.String() + ":" + userID
		if !h.limiter.Allow(key, 3, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "apply rate limit exceeded", nil))
			return
		}
	}
	upload, err := formFile(r, "resume", resumeExts)
	if err != nil {
		response.Error(w, err)
		return
	}
	if _, err := h.applications.Apply(r.Context(), jobID, userID, upload); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"message": "Job applied successfully"})
}
