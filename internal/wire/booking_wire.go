package wire

import (
	"tutorhub/internal/adaptor"
	"tutorhub/internal/data/repository"
	"tutorhub/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo, log))

		// Booking a slot is tutee-only
		r.With(middleware.RequireTutee(log)).Post("/api/bookings", bookingHandler.BookSlot)

		// Completing a class is tutor-only
		r.With(middleware.RequireTutor(log)).Post("/api/bookings/{id}/complete", bookingHandler.CompleteBooking)

		// Either side of a booking may cancel; the service checks ownership
		r.Delete("/api/bookings/{id}", bookingHandler.CancelBooking)

		// Role-branched lists
		r.Get("/api/bookings", bookingHandler.ListBookings)
		r.Get("/api/bookings/completed", bookingHandler.ListCompleted)
	})
}
