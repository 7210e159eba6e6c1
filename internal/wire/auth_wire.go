package wire

import (
	"tutorhub/internal/adaptor"
	"tutorhub/internal/data/repository"
	"tutorhub/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Public
	r.Post("/api/register", authHandler.Register)
	r.Post("/api/login", authHandler.Login)

	// Protected
	r.With(middleware.AuthSession(repo, log)).Post("/api/logout", authHandler.Logout)
}
