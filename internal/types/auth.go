// Package types provides type definitions for structured data used throughout the talentsphere system.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Account roles.
const (
	RoleJobSeeker = "Job Seeker"
	RoleRecruiter = "Recruiter"
)

// DefaultCompany is stored for accounts that are not tied to a company.
const DefaultCompany = "Individual"

// CreateAccountRequest represents the request to register a new account.
type CreateAccountRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=64"`
	Password    string `json:"password" validate:"required,min=8"`
	Role        string `json:"role" validate:"required,oneof='Job Seeker' Recruiter"`
	CompanyName string `json:"company_name,omitempty" validate:"required_if=Role Recruiter"`
	CompanyType string `json:"company_type,omitempty"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Account represents an account for API responses. The password hash never leaves the store.
type Account struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	Role        string    `json:"role"`
	CompanyName string    `json:"company_name"`
	CompanyType string    `json:"company_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsRecruiter reports whether the account screens candidates.
func (a *Account) IsRecruiter() bool {
	return a != nil && a.Role == RoleRecruiter
}

// LoginResponse represents the login/register response with account data and authentication token.
type LoginResponse struct {
	Account *Account `json:"account"`
	Token   string   `json:"token"`
}

// Scan is one persisted analysis run.
type Scan struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	JobRole   string    `json:"job_role"`
	Score     float64   `json:"score"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate validates the CreateAccountRequest using the validator.
func (r *CreateAccountRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
