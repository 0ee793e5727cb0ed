package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPrincipal struct {
	username string
	role     string
}

func (p *testPrincipal) GetUsername() string { return p.username }
func (p *testPrincipal) GetRole() string     { return p.role }

// testTokenValidator accepts a fixed set of tokens.
type testTokenValidator struct {
	valid map[string]*testPrincipal
}

func (v *testTokenValidator) ValidateToken(token string) (Principal, error) {
	p, ok := v.valid[token]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return p, nil
}

func newValidator() *testTokenValidator {
	return &testTokenValidator{valid: map[string]*testPrincipal{
		"good-token": {username: "alice", role: "Recruiter"},
	}}
}

// echoPrincipal writes the username from context, or "anonymous".
func echoPrincipal() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := GetPrincipal(r)
		if !ok {
			_, _ = w.Write([]byte("anonymous"))
			return
		}
		_, _ = w.Write([]byte(p.GetUsername() + "/" + p.GetRole()))
	})
}

func serve(h http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/scans", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	h := AuthMiddleware(newValidator())(echoPrincipal())

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid token", "Bearer good-token", http.StatusOK, "alice/Recruiter"},
		{"case-insensitive scheme", "bearer good-token", http.StatusOK, "alice/Recruiter"},
		{"missing header", "", http.StatusUnauthorized, "Unauthorized"},
		{"wrong scheme", "Basic good-token", http.StatusUnauthorized, "Unauthorized"},
		{"no token", "Bearer", http.StatusUnauthorized, "Unauthorized"},
		{"extra parts", "Bearer good-token extra", http.StatusUnauthorized, "Unauthorized"},
		{"unknown token", "Bearer forged", http.StatusUnauthorized, "Unauthorized"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(h, tt.header)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	h := OptionalAuthMiddleware(newValidator())(echoPrincipal())

	w := serve(h, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())

	w = serve(h, "Bearer good-token")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice/Recruiter", w.Body.String())

	w = serve(h, "Bearer forged")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWithPrincipal(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := GetPrincipal(req)
	assert.False(t, ok)

	req = req.WithContext(WithPrincipal(req.Context(), &testPrincipal{username: "bob"}))
	p, ok := GetPrincipal(req)
	require.True(t, ok)
	assert.Equal(t, "bob", p.GetUsername())
}
