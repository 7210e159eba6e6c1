package middleware

import (
	"net/http"

	"tutorhub/pkg/utils"

	"go.uber.org/zap"
)

// RequireTutor rejects callers whose session does not belong to a tutor.
func RequireTutor(logger *zap.Logger) func(http.Handler) http.Handler {
	return requireRole("Tutor", logger)
}

// RequireTutee rejects callers whose session does not belong to a tutee.
func RequireTutee(logger *zap.Logger) func(http.Handler) http.Handler {
	return requireRole("Tutee", logger)
}

func requireRole(role string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := utils.GetPrincipal(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if principal.Role != role {
				logger.Warn("Role check failed",
					zap.String("required", role),
					zap.String("actual", principal.Role),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, role+" access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
