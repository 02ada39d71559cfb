package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Sharans23/LenDenClub/internal/infrastructure/auth"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// AccountIDContextKey is the context key for the authenticated account id
	AccountIDContextKey ContextKey = "account_id"
	// UsernameContextKey is the context key for the authenticated username
	UsernameContextKey ContextKey = "username"
)

// AuthMiddleware creates an authentication middleware
func AuthMiddleware(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token from Authorization header
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			// Parse Bearer token
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := jwtManager.Verify(parts[1])
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), AccountIDContextKey, claims.UserID)
			ctx = context.WithValue(ctx, UsernameContextKey, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccountIDFromContext extracts the authenticated account id from context
func AccountIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(AccountIDContextKey).(int64)
	return id, ok
}

// UsernameFromContext extracts the authenticated username from context
func UsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameContextKey).(string)
	return username, ok
}
