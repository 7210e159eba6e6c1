package usecase

import (
	"context"

	"tutorhub/internal/data/repository"
	"tutorhub/pkg/database"
	"tutorhub/pkg/utils"

	"go.uber.org/zap"
)

// TxBeginner starts a database transaction. Services that must mutate a slot
// and its booking together depend on this instead of the full pool surface.
type TxBeginner interface {
	Begin(ctx context.Context) (database.Tx, error)
}

type Service struct {
	Auth         AuthService
	Availability AvailabilityService
	Booking      BookingService
	Tutor        TutorService
}

func NewService(db database.PgxIface, repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:         NewAuthService(db, repo, config, log),
		Availability: NewAvailabilityService(repo, log),
		Booking:      NewBookingService(db, repo, log),
		Tutor:        NewTutorService(repo, log),
	}
}
