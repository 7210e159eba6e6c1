package usecase

import "errors"

// Domain errors. Handlers map each to a distinct HTTP response; none are
// collapsed into a generic failure.
var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrPastDate         = errors.New("date is in the past")
	ErrPastSlot         = errors.New("slot is in the past")
	ErrInvalidRange     = errors.New("start time must be before end time")
	ErrSlotExists       = errors.New("slot already exists for this date and time")
	ErrSlotNotAvailable = errors.New("slot is no longer available")
	ErrSlotBooked       = errors.New("slot has an active booking")
	ErrAlreadyTerminal  = errors.New("booking is already completed or cancelled")
	ErrWrongStatus      = errors.New("booking is not in a valid status for this action")
	ErrValidation       = errors.New("validation error")

	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
