package app

import (
	"context"
	"path"
	"strings"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/company"
	"jobboard/internal/security"
	"jobboard/internal/storage"
)

type CompanyService struct {
	repo     company.Repository
	store    storage.ObjectStore
	jwt      *security.JWTProvider
	tokenTTL time.Duration
}

func NewCompanyService(repo company.Repository, store storage.ObjectStore, jwt *security.JWTProvider, tokenTTL time.Duration) *CompanyService {
	return &CompanyService{repo: repo, store: store, jwt: jwt, tokenTTL: tokenTTL}
}

func (s *CompanyService) Register(ctx context.Context, name, email, password string, logo *storage.Upload) (*company.Company, string, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" || logo == nil {
		return nil, "", common.NewError(common.CodeValidation, "All fields are required", nil)
	}
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, "", common.NewError(common.CodeConflict, "Company already registered", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, "", err
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, "", common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	ext := strings.ToLower(path.Ext(logo.Name))
	imageURL, err := s.store.Put(ctx, "logos/"+common.NewUUID().String()+ext, *logo)
	if err != nil {
		return nil, "", common.NewError(common.CodeUpstream, "Failed to upload company logo", err)
	}

	created, err := s.repo.Create(ctx, company.Company{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Image:        imageURL,
	})
	if err != nil {
		return nil, "", err
	}
	token, _, err := s.jwt.Generate(created.ID.String(), security.AudienceCompany, s.tokenTTL)
	if err != nil {
		return nil, "", common.NewError(common.CodeInternal, "failed to issue token", err)
	}
	return created, token, nil
}

// Login deliberately reports one message for unknown email and wrong
// password.
func (s *CompanyService) Login(ctx context.Context, email, password string) (*company.Company, string, error) {
	c, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, "", common.NewError(common.CodeUnauthorized, "Invalid email or password", nil)
		}
		return nil, "", err
	}
	if !security.CheckPassword(c.PasswordHash, password) {
		return nil, "", common.NewError(common.CodeUnauthorized, "Invalid email or password", nil)
	}
	token, _, err := s.jwt.Generate(c.ID.String(), security.AudienceCompany, s.tokenTTL)
	if err != nil {
		return nil, "", common.NewError(common.CodeInternal, "failed to issue token", err)
	}
	return c, token, nil
}

func (s *CompanyService) Get(ctx context.Context, id common.UUID) (*company.Company, error) {
	return s.repo.GetByID(ctx, id)
}
