// Package middleware provides HTTP middleware for authentication.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ContextKey is a typed key for context values.
type ContextKey string

const principalKey ContextKey = "principal"

// ErrNoToken is returned by bearerToken when the request carries no Authorization header.
var ErrNoToken = errors.New("no bearer token")

// Principal identifies the account behind a validated token.
type Principal interface {
	GetUsername() string
	GetRole() string
}

// TokenValidator validates session tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (Principal, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// token's principal in the request context.
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := authenticate(validator, r)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey, p)))
		})
	}
}

// OptionalAuthMiddleware lets anonymous requests through. A request that does
// send an Authorization header must carry a valid token.
func OptionalAuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := authenticate(validator, r)
			switch {
			case errors.Is(err, ErrNoToken):
				next.ServeHTTP(w, r)
			case err != nil:
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
			default:
				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey, p)))
			}
		})
	}
}

func authenticate(validator TokenValidator, r *http.Request) (Principal, error) {
	token, err := bearerToken(r)
	if err != nil {
		return nil, err
	}
	return validator.ValidateToken(token)
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrNoToken
	}

	// "Bearer" is matched case-insensitively
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", fmt.Errorf("malformed Authorization header")
	}
	return parts[1], nil
}

// GetPrincipal returns the authenticated principal, if any.
func GetPrincipal(r *http.Request) (Principal, bool) {
	p, ok := r.Context().Value(principalKey).(Principal)
	return p, ok
}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}
