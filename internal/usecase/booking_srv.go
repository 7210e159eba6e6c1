package usecase

import (
	"context"
	"fmt"
	"time"

	"tutorhub/internal/data/entity"
	"tutorhub/internal/data/repository"
	"tutorhub/internal/dto/request"
	"tutorhub/internal/dto/response"
	"tutorhub/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	BookSlot(ctx context.Context, principal utils.Principal, req *request.BookSlotRequest) (*response.BookingCreatedResponse, error)
	CancelBooking(ctx context.Context, principal utils.Principal, bookingID string) error
	CompleteBooking(ctx context.Context, principal utils.Principal, bookingID string) (*response.CompleteResponse, error)
	ListBookings(ctx context.Context, principal utils.Principal, status *string) ([]response.BookedClassResponse, error)
	ListCompleted(ctx context.Context, principal utils.Principal) ([]response.CompletedClassResponse, error)
}

type bookingService struct {
	db   TxBeginner
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(db TxBeginner, repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		db:   db,
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

// BookSlot claims an available slot for the calling tutee. The slot row is
// locked for the whole transaction, so of any number of concurrent attempts
// on the same slot exactly one sees it Available.
func (s *bookingService) BookSlot(ctx context.Context, principal utils.Principal, req *request.BookSlotRequest) (*response.BookingCreatedResponse, error) {
	slotID, err := uuid.Parse(req.SlotID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid slot ID", ErrValidation)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	slot, err := s.repo.Slot.FindByIDForUpdate(ctx, tx, slotID)
	if err != nil {
		return nil, fmt.Errorf("lock slot: %w", err)
	}
	if slot == nil {
		return nil, ErrNotFound
	}
	if slot.Status != entity.SlotAvailable {
		return nil, ErrSlotNotAvailable
	}
	if slot.Date.Before(utils.Today()) {
		return nil, ErrPastSlot
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		SlotID:  slot.ID,
		TuteeID: principal.ProfileID,
		IsDemo:  req.IsDemo,
		Status:  entity.BookingStatusPending,
		Notes:   req.Notes,
	}

	if err := s.repo.Booking.Create(ctx, tx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if err := s.repo.Slot.UpdateStatus(ctx, tx, slot.ID, entity.SlotBooked); err != nil {
		return nil, fmt.Errorf("mark slot booked: %w", err)
	}

	// Fetched before commit: a failure here rolls the booking back rather
	// than surfacing as an error for a booking that already persisted.
	tutor, err := s.repo.Tutor.FindRowByID(ctx, slot.TutorID)
	if err != nil {
		return nil, fmt.Errorf("load tutor: %w", err)
	}
	if tutor == nil {
		return nil, fmt.Errorf("load tutor: profile %s missing", slot.TutorID.String())
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit booking: %w", err)
	}

	s.log.Info("Slot booked",
		zap.String("booking_id", booking.ID.String()),
		zap.String("slot_id", slot.ID.String()),
		zap.String("tutee_id", principal.ProfileID.String()),
		zap.Bool("is_demo", booking.IsDemo),
	)

	resp := response.BookingCreatedToResponse(booking, slot, tutor.FullName())
	return &resp, nil
}

// CancelBooking moves a non-terminal booking to cancelled and releases its
// slot back to Available in one transaction. Either side of the booking may
// cancel.
func (s *bookingService) CancelBooking(ctx context.Context, principal utils.Principal, bookingID string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("%w: invalid booking ID", ErrValidation)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// The booking row lock keeps the terminal check below valid until
	// commit; a concurrent completion either lands first and is seen here,
	// or waits behind this transaction.
	booking, err := s.repo.Booking.FindByIDForUpdate(ctx, tx, id)
	if err != nil {
		return fmt.Errorf("lock booking: %w", err)
	}
	if booking == nil {
		return ErrNotFound
	}

	// The slot lock serializes concurrent cancellations and any in-flight
	// booking attempt on the same slot.
	slot, err := s.repo.Slot.FindByIDForUpdate(ctx, tx, booking.SlotID)
	if err != nil {
		return fmt.Errorf("lock slot: %w", err)
	}

	allowed := (principal.IsTutee() && booking.TuteeID == principal.ProfileID) ||
		(principal.IsTutor() && slot != nil && slot.TutorID == principal.ProfileID)
	if !allowed {
		return ErrForbidden
	}

	if booking.Status.IsTerminal() {
		return ErrAlreadyTerminal
	}

	if err := s.repo.Booking.UpdateStatus(ctx, tx, booking.ID, entity.BookingStatusCancelled); err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}

	if slot != nil && slot.Status == entity.SlotBooked {
		if err := s.repo.Slot.UpdateStatus(ctx, tx, slot.ID, entity.SlotAvailable); err != nil {
			return fmt.Errorf("release slot: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit cancellation: %w", err)
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("cancelled_by", principal.Role),
	)

	return nil
}

// CompleteBooking is tutor-only. The slot stays Booked; a completed class
// does not put its window back on the market.
func (s *bookingService) CompleteBooking(ctx context.Context, principal utils.Principal, bookingID string) (*response.CompleteResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking ID", ErrValidation)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Same lock order as CancelBooking: booking first, then its slot. The
	// terminal check under the lock stops a completion from resurrecting a
	// booking cancelled in between.
	booking, err := s.repo.Booking.FindByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("lock booking: %w", err)
	}
	if booking == nil {
		return nil, ErrNotFound
	}

	slot, err := s.repo.Slot.FindByIDForUpdate(ctx, tx, booking.SlotID)
	if err != nil {
		return nil, fmt.Errorf("lock slot: %w", err)
	}
	if slot == nil || slot.TutorID != principal.ProfileID {
		return nil, ErrForbidden
	}

	if booking.Status.IsTerminal() {
		return nil, ErrAlreadyTerminal
	}
	if booking.Status != entity.BookingStatusPending && booking.Status != entity.BookingStatusOngoing {
		return nil, ErrWrongStatus
	}

	completedAt := time.Now()

	if err := s.repo.Booking.MarkCompleted(ctx, tx, id, completedAt); err != nil {
		return nil, fmt.Errorf("complete booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit completion: %w", err)
	}

	s.log.Info("Booking completed",
		zap.String("booking_id", bookingID),
		zap.String("tutor_id", principal.ProfileID.String()),
	)

	return &response.CompleteResponse{
		BookingID:   bookingID,
		CompletedAt: response.FormatCompletedAt(completedAt),
	}, nil
}

func (s *bookingService) ListBookings(ctx context.Context, principal utils.Principal, status *string) ([]response.BookedClassResponse, error) {
	var statusFilter *entity.BookingStatus
	if status != nil && *status != "" {
		bs := entity.BookingStatus(*status)
		switch bs {
		case entity.BookingStatusPending, entity.BookingStatusOngoing,
			entity.BookingStatusCompleted, entity.BookingStatusCancelled:
			statusFilter = &bs
		default:
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *status)
		}
	}

	var (
		details []*repository.BookingDetail
		err     error
	)
	if principal.IsTutor() {
		details, err = s.repo.Booking.ListForTutor(ctx, principal.ProfileID, statusFilter)
	} else {
		details, err = s.repo.Booking.ListForTutee(ctx, principal.ProfileID, statusFilter)
	}
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return response.BookedClassesToResponse(details, principal.IsTutor()), nil
}

func (s *bookingService) ListCompleted(ctx context.Context, principal utils.Principal) ([]response.CompletedClassResponse, error) {
	completed := entity.BookingStatusCompleted

	var (
		details []*repository.BookingDetail
		err     error
	)
	if principal.IsTutor() {
		details, err = s.repo.Booking.ListForTutor(ctx, principal.ProfileID, &completed)
	} else {
		details, err = s.repo.Booking.ListForTutee(ctx, principal.ProfileID, &completed)
	}
	if err != nil {
		return nil, fmt.Errorf("list completed bookings: %w", err)
	}

	return response.CompletedClassesToResponse(details, principal.IsTutor()), nil
}
