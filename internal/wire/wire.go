package wire

import (
	"net/http"

	"tutorhub/internal/adaptor"
	"tutorhub/internal/data/repository"
	"tutorhub/internal/usecase"
	"tutorhub/pkg/database"
	"tutorhub/pkg/middleware"
	"tutorhub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers, and routes.
func Wiring(db database.PgxIface, repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(db, repo, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAuth(r, handler.Auth, repo, logger)
	wireAvailability(r, handler.Availability, repo, logger)
	wireBooking(r, handler.Booking, repo, logger)
	wireTutor(r, handler.Tutor, handler.Availability, repo, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
