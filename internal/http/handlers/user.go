package handlers

import (
	"net/http"
	"time"

	"jobboard/internal/app"
	"jobboard/internal/common"
	"jobboard/internal/domain/application"
	"jobboard/internal/http/middleware"
	"jobboard/internal/http/response"
)

type UserHandler struct {
	users        *app.UserService
	applications *app.ApplicationService
	limiter      middleware.Limiter
}

func NewUserHandler(users *app.UserService, applications *app.ApplicationService, limiter middleware.Limiter) *UserHandler {
	return &UserHandler{users: users, applications: applications, limiter: limiter}
}

type authRequest struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Image  string `json:"image"`
}

// Auth is the credential exchange: external identity in, bearer token out.
// Upsert semantics make it safe to call on every login.
func (h *UserHandler) Auth(w http.ResponseWriter, r *http.Request) {
	if h.limiter != nil && !h.limiter.Allow("auth:"+middleware.ClientIP(r), 10, time.Minute) {
		response.Error(w, common.NewError(common.CodeRateLimited, "too many auth attempts", nil))
		return
	}
	var req authRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	stored, token, err := h.users.Auth(r.Context(), req.UserID, req.Name, req.Email, req.Image)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"success": true, "token": token, "user": stored})
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	profile, err := h.users.Profile(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, profile)
}

func (h *UserHandler) UpdateResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	upload, err := formFile(r, "resume", resumeExts)
	if err != nil {
		response.Error(w, err)
		return
	}
	if upload == nil {
		response.Error(w, common.NewError(common.CodeValidation, "Resume file required", nil))
		return
	}
	url, err := h.users.UpdateResume(r.Context(), userID, *upload)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"success": true, "resume": url})
}

// Applied serves the read side the client uses as its advisory
// already-applied check.
func (h *UserHandler) Applied(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.applications.ListForUser(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	if items == nil {
		items = []application.AppliedJob{}
	}
	response.JSON(w, http.StatusOK, items)
}
