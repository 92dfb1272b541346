package http

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"jobboard/internal/http/handlers"
	"jobboard/internal/http/metrics"
	httpmw "jobboard/internal/http/middleware"
)

type RouterDependencies struct {
	JobHandler         *handlers.JobHandler
	UserHandler        *handlers.UserHandler
	ApplicationHandler *handlers.ApplicationHandler
	CompanyHandler     *handlers.CompanyHandler
	AuthMiddleware     *httpmw.AuthMiddleware
	Metrics            *metrics.Collector
	Logger             *zap.Logger
	RequestTimeout     time.Duration
}

type Router struct {
	deps RouterDependencies
}

// Uploads go through multipart streaming; this caps everything else plus the
// multipart envelope.
const maxBodyBytes = 6 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(),
		httpmw.RequestID,
		httpmw.Logging(r.deps.Logger),
		httpmw.BodyLimit(maxBodyBytes),
		httpmw.Recover(r.deps.Logger),
		httpmw.Metrics(r.deps.Metrics),
		httpmw.Timeout(r.deps.RequestTimeout),
	)
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.Metrics.Handler().ServeHTTP(w, req)
			return
		case req.Method == http.MethodPost && path == "/api/jobs/auth":
			r.deps.UserHandler.Auth(w, req)
			return
		case req.Method == http.MethodGet && path == "/api/jobs":
			r.deps.JobHandler.List(w, req)
			return
		case req.Method == http.MethodPost && path == "/api/company/register":
			r.deps.CompanyHandler.Register(w, req)
			return
		case req.Method == http.MethodPost && path == "/api/company/login":
			r.deps.CompanyHandler.Login(w, req)
			return
		}

		// seeker routes; registered before the public GET /api/jobs/{id}
		// catch-all so "applied", "profile" and friends never parse as ids
		switch {
		case req.Method == http.MethodGet && path == "/api/jobs/applied":
			r.protectUser(r.deps.UserHandler.Applied).ServeHTTP(w, req)
			return
		case req.Method == http.MethodGet && path == "/api/jobs/profile":
			r.protectUser(r.deps.UserHandler.Profile).ServeHTTP(w, req)
			return
		case req.Method == http.MethodPost && path == "/api/jobs/resume":
			r.protectUser(r.deps.UserHandler.UpdateResume).ServeHTTP(w, req)
			return
		case req.Method == http.MethodPost && strings.HasPrefix(path, "/api/jobs/apply/"):
			r.protectUser(r.deps.ApplicationHandler.Apply).ServeHTTP(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/jobs/"):
			r.deps.JobHandler.Get(w, req)
			return
		}

		if strings.HasPrefix(path, "/api/company/") {
			r.handleCompany(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func (r *Router) handleCompany(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	switch {
	case req.Method == http.MethodGet && path == "/api/company/company":
		r.protectCompany(r.deps.CompanyHandler.Get).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/api/company/post-job":
		r.protectCompany(r.deps.CompanyHandler.PostJob).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/company/list-jobs":
		r.protectCompany(r.deps.CompanyHandler.ListJobs).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/company/applicants"):
		r.protectCompany(r.deps.CompanyHandler.Applicants).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/api/company/change-status":
		r.protectCompany(r.deps.CompanyHandler.ChangeStatus).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/api/company/change-visibility":
		r.protectCompany(r.deps.CompanyHandler.ChangeVisibility).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/api/company/delete-job":
		r.protectCompany(r.deps.CompanyHandler.DeleteJob).ServeHTTP(w, req)
		return
	}

	http.NotFound(w, req)
}

func (r *Router) protectUser(h http.HandlerFunc) http.Handler {
	return r.deps.AuthMiddleware.AuthenticateUser(h)
}

func (r *Router) protectCompany(h http.HandlerFunc) http.Handler {
	return r.deps.AuthMiddleware.AuthenticateCompany(h)
}
