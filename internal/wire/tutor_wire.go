package wire

import (
	"tutorhub/internal/adaptor"
	"tutorhub/internal/data/repository"
	"tutorhub/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTutor(
	r chi.Router,
	tutorHandler *adaptor.TutorHandler,
	availabilityHandler *adaptor.AvailabilityHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo, log))

		r.Get("/api/tutors", tutorHandler.ListTutors)
		r.Get("/api/tutors/{id}", tutorHandler.GetTutor)
		r.Get("/api/tutors/{id}/availability", availabilityHandler.ListTutorSlots)
		r.Get("/api/departments", tutorHandler.ListDepartments)
	})
}
