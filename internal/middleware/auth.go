package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"gomarket/internal/domain"
	"gomarket/internal/repository"
	"gomarket/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type contextKey string

const userKey contextKey = "user"

// AuthMiddleware validates the bearer token and resolves the acting user.
// The resolved user is attached to the request context; tokens of deleted
// users are rejected even while the signature is still valid.
func AuthMiddleware(userService service.UserService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Debug("Missing authorization header")
				respondWithError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.Debug("Invalid authorization header format")
				respondWithError(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			claims, err := userService.ValidateToken(parts[1])
			if err != nil {
				logger.Debug("Token validation failed", zap.Error(err))
				if errors.Is(err, jwt.ErrTokenExpired) {
					respondWithError(w, http.StatusUnauthorized, "token expired")
				} else {
					respondWithError(w, http.StatusUnauthorized, "invalid token")
				}
				return
			}

			user, err := userService.ResolveUser(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					logger.Debug("Token user no longer active", zap.Int64("user_id", claims.UserID))
					respondWithError(w, http.StatusUnauthorized, "the owner of this token is no longer active")
					return
				}
				logger.Error("Failed to resolve token user", zap.Error(err))
				respondWithError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			logger.Debug("User authenticated",
				zap.Int64("user_id", user.ID),
				zap.String("role", user.Role),
			)

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser extracts the acting user from the request context
func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok
}
