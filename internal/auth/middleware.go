package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/elskow/gatekeeper/internal/api"
	"github.com/elskow/gatekeeper/internal/config"
)

// Define a custom type for context keys
type contextKey string

const (
	// UserContextKey is the key used to store the user ID in the context
	UserContextKey contextKey = "user"
)

type Middleware struct {
	config *config.AuthConfig
}

func NewMiddleware(config *config.AuthConfig) *Middleware {
	return &Middleware{
		config: config,
	}
}

// Handler verifies the bearer token and stores the authenticated user ID in
// the request context. The signature is checked before any claim is trusted.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			api.WriteError(w, http.StatusUnauthorized, "Missing token")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			api.WriteError(w, http.StatusUnauthorized, "Invalid token format")
			return
		}

		claims, err := parseToken(tokenString, m.config.JWTSecret)
		if err != nil {
			api.WriteError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserFromContext returns the authenticated user ID set by Handler.
func GetUserFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(UserContextKey).(string)
	if !ok || userID == "" {
		return "", errors.New("user not found in context")
	}
	return userID, nil
}
