package middleware

import (
	"net/http"
	"strings"

	"lesson-booking/internal/data/repository"
	"lesson-booking/pkg/utils"

	"go.uber.org/zap"
)

// AuthSession validates the bearer token against stored sessions and
// loads the caller's identity and role into the request context.
func AuthSession(repo *repository.Repository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization header")
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == authHeader || token == "" {
				utils.ResponseUnauthorized(w, "Invalid authorization header")
				return
			}

			session, err := repo.Session.FindValidSession(r.Context(), token)
			if err != nil {
				logger.Error("Failed to look up session", zap.Error(err))
				utils.ResponseInternalError(w, "Failed to validate session")
				return
			}
			if session == nil {
				utils.ResponseUnauthorized(w, "Session expired or revoked")
				return
			}

			user, err := repo.User.FindByID(r.Context(), session.UserID)
			if err != nil {
				logger.Error("Failed to look up session user",
					zap.Error(err),
					zap.String("user_id", session.UserID.String()),
				)
				utils.ResponseInternalError(w, "Failed to validate session")
				return
			}
			if user == nil || !user.IsActive {
				// Suspension takes effect on the next request.
				utils.ResponseUnauthorized(w, "Account is not active")
				return
			}

			ctx := utils.SetUserContext(r.Context(), user.ID, string(user.Role))
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole guards a route group to one role. Runs after AuthSession.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actual, ok := utils.GetRoleFromContext(r.Context())
			if !ok || actual != role {
				utils.ResponseForbidden(w, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
