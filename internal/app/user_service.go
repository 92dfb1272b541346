package app

import (
	"context"
	"path"
	"strings"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/user"
	"jobboard/internal/security"
	"jobboard/internal/storage"
)

type UserService struct {
	repo     user.Repository
	store    storage.ObjectStore
	jwt      *security.JWTProvider
	tokenTTL time.Duration
}

func NewUserService(repo user.Repository, store storage.ObjectStore, jwt *security.JWTProvider, tokenTTL time.Duration) *UserService {
	return &UserService{repo: repo, store: store, jwt: jwt, tokenTTL: tokenTTL}
}

// Auth exchanges an external identity for a bearer token, creating or
// refreshing the local user record on the way. Calling it again with the same
// identity is harmless.
func (s *UserService) Auth(ctx context.Context, externalID, name, email, image string) (*user.User, string, error) {
	if strings.TrimSpace(externalID) == "" {
		return nil, "", common.NewValidationError("invalid request", map[string]string{"userId": "userId is required"})
	}
	stored, err := s.repo.Upsert(ctx, user.User{ID: externalID, Name: name, Email: email, Image: image})
	if err != nil {
		return nil, "", err
	}
	token, _, err := s.jwt.Generate(stored.ID, security.AudienceUser, s.tokenTTL)
	if err != nil {
		return nil, "", common.NewError(common.CodeInternal, "failed to issue token", err)
	}
	return stored, token, nil
}

func (s *UserService) Profile(ctx context.Context, userID string) (*user.User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *UserService) UpdateResume(ctx context.Context, userID string, resume storage.Upload) (string, error) {
	ext := strings.ToLower(path.Ext(resume.Name))
	key := "resumes/" + common.NewUUID().String() + ext
	url, err := s.store.Put(ctx, key, resume)
	if err != nil {
		return "", common.NewError(common.CodeUpstream, "Failed to upload resume", err)
	}
	if err := s.repo.UpdateResume(ctx, userID, url); err != nil {
		return "", err
	}
	return url, nil
}
