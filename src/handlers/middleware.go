package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/username/tradevault/backend/src/logger"
	"github.com/username/tradevault/backend/src/security"
	"github.com/username/tradevault/backend/src/utils"
)

type contextKey string

const userIDContextKey = contextKey("userID")

// GetUserIDFromContext extracts the authenticated user ID set by the auth
// middleware.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDContextKey).(int64)
	return userID, ok
}

// AuthMiddleware validates the bearer token and stores the user ID in the
// request context.
func AuthMiddleware(authService *security.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.L.Debug("AuthMiddleware: Authorization header missing", "path", r.URL.Path)
				utils.SendJSONError(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == "" {
				utils.SendJSONError(w, "Malformed token", http.StatusUnauthorized)
				return
			}

			userIDStr, err := authService.ValidateToken(tokenString)
			if err != nil {
				logger.L.Warn("AuthMiddleware: Token validation failed", "path", r.URL.Path, "error", err)
				utils.SendJSONError(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			userIDInt, err := strconv.ParseInt(userIDStr, 10, 64)
			if err != nil {
				logger.L.Error("AuthMiddleware: Invalid user ID format in token", "userIDStr", userIDStr, "error", err)
				utils.SendJSONError(w, "Invalid user ID in token", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), userIDContextKey, userIDInt)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
