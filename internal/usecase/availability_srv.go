package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tutorhub/internal/data/entity"
	"tutorhub/internal/data/repository"
	"tutorhub/internal/dto/request"
	"tutorhub/internal/dto/response"
	"tutorhub/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// SlotListFilter is the query surface of the slot listing. ExactDate wins
// over FromDate when both are set; with neither, listing defaults to today
// onward.
type SlotListFilter struct {
	TutorID   *uuid.UUID
	ExactDate *string
	FromDate  *string
}

type AvailabilityService interface {
	CreateSlot(ctx context.Context, principal utils.Principal, req *request.CreateAvailabilityRequest) (*response.AvailabilityResponse, error)
	UpdateSlot(ctx context.Context, principal utils.Principal, slotID string, req *request.UpdateAvailabilityRequest) (*response.AvailabilityResponse, error)
	DeleteSlot(ctx context.Context, principal utils.Principal, slotID string) error
	ListSlots(ctx context.Context, filter SlotListFilter) ([]response.AvailabilityResponse, error)
	ListDemoSlots(ctx context.Context) ([]response.DemoSessionResponse, error)
}

type availabilityService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo: repo,
		log:  log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) CreateSlot(ctx context.Context, principal utils.Principal, req *request.CreateAvailabilityRequest) (*response.AvailabilityResponse, error) {
	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date format", ErrValidation)
	}

	if date.Before(utils.Today()) {
		return nil, ErrPastDate
	}

	startClock, err := utils.ParseClock(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time format", ErrValidation)
	}

	endClock, err := utils.ParseClock(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end time format", ErrValidation)
	}

	start := utils.CombineDateClock(date, startClock)
	end := utils.CombineDateClock(date, endClock)

	if !start.Before(end) {
		return nil, ErrInvalidRange
	}

	exists, err := s.repo.Slot.Exists(ctx, principal.ProfileID, date, start)
	if err != nil {
		return nil, fmt.Errorf("check existing slot: %w", err)
	}
	if exists {
		return nil, ErrSlotExists
	}

	now := time.Now()
	slot := &entity.AvailabilitySlot{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TutorID:   principal.ProfileID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Status:    entity.SlotAvailable,
	}

	if err := s.repo.Slot.Create(ctx, slot); err != nil {
		// The unique index backs up the existence check under concurrent
		// creates of the same slot.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrSlotExists
		}
		return nil, fmt.Errorf("create slot: %w", err)
	}

	s.log.Info("Availability slot created",
		zap.String("slot_id", slot.ID.String()),
		zap.String("tutor_id", principal.ProfileID.String()),
		zap.String("date", req.Date),
	)

	resp := response.SlotToResponse(slot)
	return &resp, nil
}

func (s *availabilityService) UpdateSlot(ctx context.Context, principal utils.Principal, slotID string, req *request.UpdateAvailabilityRequest) (*response.AvailabilityResponse, error) {
	id, err := uuid.Parse(slotID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid slot ID", ErrValidation)
	}

	slot, err := s.repo.Slot.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find slot: %w", err)
	}
	if slot == nil {
		return nil, ErrNotFound
	}
	if slot.TutorID != principal.ProfileID {
		return nil, ErrForbidden
	}
	if slot.Status == entity.SlotBooked {
		return nil, ErrSlotBooked
	}

	date := slot.Date
	if req.Date != nil {
		date, err = utils.ParseDate(*req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date format", ErrValidation)
		}
		if date.Before(utils.Today()) {
			return nil, ErrPastDate
		}
	}

	start := utils.CombineDateClock(date, slot.StartTime)
	if req.StartTime != nil {
		clock, err := utils.ParseClock(*req.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid start time format", ErrValidation)
		}
		start = utils.CombineDateClock(date, clock)
	}

	end := utils.CombineDateClock(date, slot.EndTime)
	if req.EndTime != nil {
		clock, err := utils.ParseClock(*req.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid end time format", ErrValidation)
		}
		end = utils.CombineDateClock(date, clock)
	}

	if !start.Before(end) {
		return nil, ErrInvalidRange
	}

	slot.Date = date
	slot.StartTime = start
	slot.EndTime = end
	if req.Status != nil {
		slot.Status = entity.SlotStatus(*req.Status)
	}
	slot.UpdatedAt = time.Now()

	if err := s.repo.Slot.Update(ctx, slot); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrSlotExists
		}
		return nil, fmt.Errorf("update slot: %w", err)
	}

	s.log.Info("Availability slot updated", zap.String("slot_id", slotID))

	resp := response.SlotToResponse(slot)
	return &resp, nil
}

func (s *availabilityService) DeleteSlot(ctx context.Context, principal utils.Principal, slotID string) error {
	id, err := uuid.Parse(slotID)
	if err != nil {
		return fmt.Errorf("%w: invalid slot ID", ErrValidation)
	}

	slot, err := s.repo.Slot.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find slot: %w", err)
	}
	if slot == nil {
		return ErrNotFound
	}
	if slot.TutorID != principal.ProfileID {
		return ErrForbidden
	}
	if slot.Status == entity.SlotBooked {
		return ErrSlotBooked
	}

	if err := s.repo.Slot.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}

	return nil
}

func (s *availabilityService) ListSlots(ctx context.Context, filter SlotListFilter) ([]response.AvailabilityResponse, error) {
	repoFilter := repository.SlotFilter{TutorID: filter.TutorID}

	switch {
	case filter.ExactDate != nil:
		date, err := utils.ParseDate(*filter.ExactDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date format", ErrValidation)
		}
		repoFilter.Date = &date
	case filter.FromDate != nil:
		from, err := utils.ParseDate(*filter.FromDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid from_date format", ErrValidation)
		}
		repoFilter.FromDate = &from
	default:
		today := utils.Today()
		repoFilter.FromDate = &today
	}

	slots, err := s.repo.Slot.List(ctx, repoFilter)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}

	return response.SlotsToResponse(slots), nil
}

func (s *availabilityService) ListDemoSlots(ctx context.Context) ([]response.DemoSessionResponse, error) {
	rows, err := s.repo.Slot.ListDemo(ctx, utils.Today())
	if err != nil {
		return nil, fmt.Errorf("list demo slots: %w", err)
	}

	return response.DemoSlotsToResponse(rows), nil
}
