package middleware

import (
	"context"
	"net/http"
	"strings"

	"jobboard/internal/common"
	"jobboard/internal/http/response"
	"jobboard/internal/security"
)

type contextKey string

const (
	ContextUserIDKey    contextKey = "user_id"
	ContextCompanyIDKey contextKey = "company_id"
)

type AuthMiddleware struct {
	jwt *security.JWTProvider
}

func NewAuthMiddleware(jwt *security.JWTProvider) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

// AuthenticateUser admits seeker tokens only.
func (m *AuthMiddleware) AuthenticateUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			response.Error(w, err)
			return
		}
		subject, parseErr := m.jwt.Parse(token, security.AudienceUser)
		if parseErr != nil {
			response.Error(w, common.NewError(common.CodeUnauthorized, "Invalid user token", parseErr))
			return
		}
		ctx := context.WithValue(r.Context(), ContextUserIDKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AuthenticateCompany admits recruiter tokens only.
func (m *AuthMiddleware) AuthenticateCompany(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			response.Error(w, err)
			return
		}
		subject, parseErr := m.jwt.Parse(token, security.AudienceCompany)
		if parseErr != nil {
			response.Error(w, common.NewError(common.CodeUnauthorized, "Invalid company token", parseErr))
			return
		}
		companyID, idErr := common.ParseUUID(subject)
		if idErr != nil {
			response.Error(w, common.NewError(common.CodeUnauthorized, "Invalid company token", idErr))
			return
		}
		ctx := context.WithValue(r.Context(), ContextCompanyIDKey, companyID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", common.NewError(common.CodeUnauthorized, "missing authorization header", nil)
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", common.NewError(common.CodeUnauthorized, "invalid authorization header", nil)
	}
	return parts[1], nil
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ContextUserIDKey).(string)
	return id, ok
}

func CompanyIDFromContext(ctx context.Context) (common.UUID, bool) {
	id, ok := ctx.Value(ContextCompanyIDKey).(common.UUID)
	return id, ok
}
