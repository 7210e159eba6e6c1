package adaptor

import (
	"errors"
	"net/http"

	"tutorhub/internal/usecase"
	"tutorhub/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	Availability *AvailabilityHandler
	Booking      *BookingHandler
	Tutor        *TutorHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		Availability: NewAvailabilityHandler(service.Availability, log),
		Booking:      NewBookingHandler(service.Booking, log),
		Tutor:        NewTutorHandler(service.Tutor, log),
	}
}

// handleServiceError maps domain errors onto HTTP responses. Every sentinel
// keeps its own status; anything unrecognized is a 500.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, usecase.ErrValidation),
		errors.Is(err, usecase.ErrPastDate),
		errors.Is(err, usecase.ErrPastSlot),
		errors.Is(err, usecase.ErrInvalidRange),
		errors.Is(err, usecase.ErrSlotBooked),
		errors.Is(err, usecase.ErrAlreadyTerminal),
		errors.Is(err, usecase.ErrWrongStatus):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrSlotExists),
		errors.Is(err, usecase.ErrSlotNotAvailable),
		errors.Is(err, usecase.ErrEmailTaken):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
