package server

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talentsphere/internal/config"
	"github.com/jonathan/talentsphere/internal/db"
	"github.com/jonathan/talentsphere/internal/types"
)

func openTestStore(t *testing.T) *db.LiteDB {
	t.Helper()
	store, err := db.OpenLite(filepath.Join(t.TempDir(), "talentsphere.db"))
	require.NoError(t, err)
	return store
}

func setupTestUserService(t *testing.T) *UserService {
	t.Helper()
	store := openTestStore(t)
	t.Cleanup(store.Close)
	return NewUserService(store, &config.PasswordConfig{BcryptCost: 10})
}

func TestUserService_Register(t *testing.T) {
	svc := setupTestUserService(t)
	ctx := context.Background()

	acc, err := svc.Register(ctx, &types.CreateAccountRequest{
		Username: "seeker1",
		Password: "correct-horse",
		Role:     types.RoleJobSeeker,
	})
	require.NoError(t, err)
	assert.Equal(t, "seeker1", acc.Username)
	assert.Equal(t, types.DefaultCompany, acc.CompanyName)
	assert.False(t, acc.IsRecruiter())

	_, err = svc.Register(ctx, &types.CreateAccountRequest{
		Username: "seeker1",
		Password: "another-password",
		Role:     types.RoleJobSeeker,
	})
	var taken *ErrUsernameTaken
	require.ErrorAs(t, err, &taken)
	assert.Equal(t, "seeker1", taken.Username)
}

func TestUserService_Register_Recruiter(t *testing.T) {
	svc := setupTestUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &types.CreateAccountRequest{
		Username: "hr",
		Password: "password123",
		Role:     types.RoleRecruiter,
	})
	var verr *ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "company_name", verr.Field)

	acc, err := svc.Register(ctx, &types.CreateAccountRequest{
		Username:    "hr",
		Password:    "password123",
		Role:        types.RoleRecruiter,
		CompanyName: " Acme ",
		CompanyType: "Startup",
	})
	require.NoError(t, err)
	assert.True(t, acc.IsRecruiter())
	assert.Equal(t, "Acme", acc.CompanyName)
	assert.Equal(t, "Startup", acc.CompanyType)
}

func TestUserService_Register_UnknownRole(t *testing.T) {
	svc := setupTestUserService(t)

	_, err := svc.Register(context.Background(), &types.CreateAccountRequest{
		Username: "x",
		Password: "password123",
		Role:     "Admin",
	})
	var verr *ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "role", verr.Field)
}

func TestUserService_Login(t *testing.T) {
	svc := setupTestUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &types.CreateAccountRequest{
		Username: "seeker1",
		Password: "correct-horse",
		Role:     types.RoleJobSeeker,
	})
	require.NoError(t, err)

	acc, err := svc.Login(ctx, &types.LoginRequest{Username: "seeker1", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "seeker1", acc.Username)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "seeker1", "battery-staple"},
		{"unknown user", "ghost", "correct-horse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, &types.LoginRequest{Username: tt.username, Password: tt.password})
			var invalid *ErrInvalidCredentials
			assert.ErrorAs(t, err, &invalid)
		})
	}
}

func TestUserService_EnsureAdmin(t *testing.T) {
	svc := setupTestUserService(t)
	ctx := context.Background()

	created, err := svc.EnsureAdmin(ctx, "admin-password")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureAdmin(ctx, "admin-password")
	require.NoError(t, err)
	assert.False(t, created)

	acc, err := svc.Login(ctx, &types.LoginRequest{Username: AdminUsername, Password: "admin-password"})
	require.NoError(t, err)
	assert.Equal(t, types.RoleRecruiter, acc.Role)
	assert.Equal(t, AdminCompanyName, acc.CompanyName)
	assert.Equal(t, AdminCompanyType, acc.CompanyType)
}
