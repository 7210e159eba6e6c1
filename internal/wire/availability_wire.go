package wire

import (
	"tutorhub/internal/adaptor"
	"tutorhub/internal/data/repository"
	"tutorhub/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAvailability(
	r chi.Router,
	availabilityHandler *adaptor.AvailabilityHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo, log))

		// Any authenticated user can browse the calendar
		r.Get("/api/availability", availabilityHandler.ListSlots)
		r.Get("/api/demo-sessions", availabilityHandler.ListDemoSlots)

		// Slot management is tutor-only
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireTutor(log))

			r.Post("/api/availability", availabilityHandler.CreateSlot)
			r.Patch("/api/availability/{id}", availabilityHandler.UpdateSlot)
			r.Delete("/api/availability/{id}", availabilityHandler.DeleteSlot)
		})
	})
}
