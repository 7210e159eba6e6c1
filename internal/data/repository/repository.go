package repository

import (
	"tutorhub/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User    UserRepository
	Session SessionRepository
	Tutor   TutorProfileRepository
	Tutee   TuteeProfileRepository
	Slot    SlotRepository
	Booking BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Session: NewSessionRepository(db, log),
		Tutor:   NewTutorProfileRepository(db, log),
		Tutee:   NewTuteeProfileRepository(db, log),
		Slot:    NewSlotRepository(db, log),
		Booking: NewBookingRepository(db, log),
	}
}
