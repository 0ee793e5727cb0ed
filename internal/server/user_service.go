package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/talentsphere/internal/config"
	"github.com/jonathan/talentsphere/internal/db"
	"github.com/jonathan/talentsphere/internal/types"
)

// Admin account created by EnsureAdmin.
const (
	AdminUsername    = "admin"
	AdminCompanyName = "TechGlobal"
	AdminCompanyType = "MNC"
)

// UserService provides business logic for account registration and login
type UserService struct {
	store          db.Store
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(store db.Store, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		store:          store,
		passwordConfig: passwordConfig,
	}
}

// Register creates a new account. Job seekers are filed under DefaultCompany
// unless they name one.
func (s *UserService) Register(ctx context.Context, req *types.CreateAccountRequest) (*types.Account, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, &ErrValidation{Field: "username", Message: "required"}
	}

	company := strings.TrimSpace(req.CompanyName)
	switch req.Role {
	case types.RoleRecruiter:
		if company == "" {
			return nil, &ErrValidation{Field: "company_name", Message: "required for recruiters"}
		}
	case types.RoleJobSeeker:
		if company == "" {
			company = types.DefaultCompany
		}
	default:
		return nil, &ErrValidation{Field: "role", Message: fmt.Sprintf("unknown role %q", req.Role)}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	rec := &db.AccountRecord{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
		Role:         req.Role,
		CompanyName:  company,
		CompanyType:  strings.TrimSpace(req.CompanyType),
		CreatedAt:    time.Now().UTC(),
	}
	created, err := s.store.CreateAccount(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	if !created {
		return nil, &ErrUsernameTaken{Username: username}
	}
	return rec.Account(), nil
}

// Login authenticates an account and returns its public view
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.Account, error) {
	rec, err := s.store.GetAccountByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	// Unknown user and wrong password are indistinguishable to the caller
	if rec == nil {
		return nil, &ErrInvalidCredentials{}
	}
	if !s.passwordConfig.VerifyPassword(req.Password, rec.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}
	return rec.Account(), nil
}

// EnsureAdmin creates the admin recruiter account if it does not exist yet.
// It reports whether a new account was created.
func (s *UserService) EnsureAdmin(ctx context.Context, password string) (bool, error) {
	_, err := s.Register(ctx, &types.CreateAccountRequest{
		Username:    AdminUsername,
		Password:    password,
		Role:        types.RoleRecruiter,
		CompanyName: AdminCompanyName,
		CompanyType: AdminCompanyType,
	})
	if err == nil {
		return true, nil
	}
	if _, taken := err.(*ErrUsernameTaken); taken {
		return false, nil
	}
	return false, err
}
