package middleware

import (
	"net/http"
	"strings"

	"tutorhub/internal/data/entity"
	"tutorhub/internal/data/repository"
	"tutorhub/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthSession validates the bearer session token and resolves the caller
// into a Principal: user identity, role, and the matching tutor or tutee
// profile ID. Downstream handlers never look the current user up again.
func AuthSession(repo *repository.Repository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			token, err := uuid.Parse(parts[1])
			if err != nil {
				utils.ResponseUnauthorized(w, "Invalid token format")
				return
			}

			session, err := repo.Session.FindValidByToken(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if session == nil {
				logger.Warn("Invalid or expired session")
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			user, err := repo.User.FindByID(r.Context(), session.UserID)
			if err != nil {
				logger.Error("Failed to load session user",
					zap.Error(err),
					zap.String("user_id", session.UserID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if user == nil || !user.IsActive {
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			principal := utils.Principal{
				UserID: user.ID,
				Role:   string(user.Role),
			}

			switch user.Role {
			case entity.RoleTutor:
				profile, err := repo.Tutor.FindByUserID(r.Context(), user.ID)
				if err != nil || profile == nil {
					logger.Error("Failed to load tutor profile",
						zap.Error(err),
						zap.String("user_id", user.ID.String()))
					utils.ResponseInternalError(w, "Internal server error")
					return
				}
				principal.ProfileID = profile.ID
			case entity.RoleTutee:
				profile, err := repo.Tutee.FindByUserID(r.Context(), user.ID)
				if err != nil || profile == nil {
					logger.Error("Failed to load tutee profile",
						zap.Error(err),
						zap.String("user_id", user.ID.String()))
					utils.ResponseInternalError(w, "Internal server error")
					return
				}
				principal.ProfileID = profile.ID
			default:
				utils.ResponseForbidden(w, "Unknown role")
				return
			}

			ctx := utils.SetPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
