package usecase

import (
	"context"
	"testing"
	"time"

	"tutorhub/internal/data/entity"
	"tutorhub/internal/data/repository"
	"tutorhub/internal/dto/request"
	"tutorhub/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func tutorPrincipal() utils.Principal {
	return utils.Principal{
		UserID:    uuid.New(),
		Role:      "Tutor",
		ProfileID: uuid.New(),
	}
}

func futureDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02")
}

func newAvailabilityService(slots *MockSlotRepository) AvailabilityService {
	repo := &repository.Repository{Slot: slots}
	return NewAvailabilityService(repo, zap.NewNop())
}

func TestCreateSlot_Success(t *testing.T) {
	mockSlots := new(MockSlotRepository)
	mockSlots.On("Exists", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	mockSlots.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := newAvailabilityService(mockSlots)
	principal := tutorPrincipal()

	resp, err := service.CreateSlot(context.Background(), principal, &request.CreateAvailabilityRequest{
		Date:      futureDate(3),
		StartTime: "14:00",
		EndTime:   "15:00",
	})

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, entity.SlotAvailable, resp.Status)
	assert.Equal(t, "14:00", resp.StartTime)
	assert.Equal(t, "15:00", resp.EndTime)
	mockSlots.AssertExpectations(t)
}

func TestCreateSlot_PastDate(t *testing.T) {
	mockSlots := new(MockSlotRepository)
	service := newAvailabilityService(mockSlots)

	_, err := service.CreateSlot(context.Background(), tutorPrincipal(), &request.CreateAvailabilityRequest{
		Date:      "2020-01-15",
		StartTime: "14:00",
		EndTime:   "15:00",
	})

	assert.ErrorIs(t, err, ErrPastDate)
	mockSlots.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateSlot_InvalidRange(t *testing.T) {
	mockSlots := new(MockSlotRepository)
	service := newAvailabilityService(mockSlots)

	_, err := service.CreateSlot(context.Background(), tutorPrincipal(), &request.CreateAvailabilityRequest{
		Date:      futureDate(3),
		StartTime: "15:00",
		EndTime:   "14:00",
	})

	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestCreateSlot_ZeroLengthRange(t *testing.T) {
	mockSlots := new(MockSlotRepository)
	service := newAvailabilityService(mockSlots)

	_, err := service.CreateSlot(context.Background(), tutorPrincipal(), &request.CreateAvailabilityRequest{
		Date:      futureDate(3),
		StartTime: "14:00",
		EndTime:   "14:00",
	})

	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestCreateSlot_Duplicate(t *testing.T) {
	mockSlots := new(MockSlotRepository)
	mockSlots.On("Exists", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true, nil)

	service := newAvailabilityService(mockSlots)

	_, err := service.CreateSlot(context.Background(), tutorPrincipal(), &request.CreateAvailabilityRequest{
		Date:      futureDate(3),
		StartTime: "14:00",
		EndTime:   "15:00",
	})

	assert.ErrorIs(t, err, ErrSlotExists)
	mockSlots.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateSlot_NotOwner(t *testing.T) {
	slotID := uuid.New()
	slot := &entity.AvailabilitySlot{
		Base:    entity.Base{ID: slotID},
		TutorID: uuid.New(),
		Status:  entity.SlotAvailable,
	}

	mockSlots := new(MockSlotRepository)
	mockSlots.On("FindByID", mock.Anything, slotID).Return(slot, nil)

	service := newAvailabilityService(mockSlots)

	_, err := service.UpdateSlot(context.Background(), tutorPrincipal(), slotID.String(), &request.UpdateAvailabilityRequest{})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateSlot_BookedSlotRejected(t *testing.T) {
	principal := tutorPrincipal()
	slotID := uuid.New()
	slot := &entity.AvailabilitySlot{
		Base:    entity.Base{ID: slotID},
		TutorID: principal.ProfileID,
		Status:  entity.SlotBooked,
	}

	mockSlots := new(MockSlotRepository)
	mockSlots.On("FindByID", mock.Anything, slotID).Return(slot, nil)

	service := newAvailabilityService(mockSlots)

	_, err := service.UpdateSlot(context.Background(), principal, slotID.String(), &request.UpdateAvailabilityRequest{})

	assert.ErrorIs(t, err, ErrSlotBooked)
	mockSlots.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateSlot_NotFound(t *testing.T) {
	slotID := uuid.New()

	mockSlots := new(MockSlotRepository)
	mockSlots.On("FindByID", mock.Anything, slotID).Return(nil, nil)

	service := newAvailabilityService(mockSlots)

	_, err := service.UpdateSlot(context.Background(), tutorPrincipal(), slotID.String(), &request.UpdateAvailabilityRequest{})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteSlot_BookedSlotRejected(t *testing.T) {
	principal := tutorPrincipal()
	slotID := uuid.New()
	slot := &entity.AvailabilitySlot{
		Base:    entity.Base{ID: slotID},
		TutorID: principal.ProfileID,
		Status:  entity.SlotBooked,
	}

	mockSlots := new(MockSlotRepository)
	mockSlots.On("FindByID", mock.Anything, slotID).Return(slot, nil)

	service := newAvailabilityService(mockSlots)

	err := service.DeleteSlot(context.Background(), principal, slotID.String())

	assert.ErrorIs(t, err, ErrSlotBooked)
	mockSlots.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteSlot_Success(t *testing.T) {
	principal := tutorPrincipal()
	slotID := uuid.New()
	slot := &entity.AvailabilitySlot{
		Base:    entity.Base{ID: slotID},
		TutorID: principal.ProfileID,
		Status:  entity.SlotAvailable,
	}

	mockSlots := new(MockSlotRepository)
	mockSlots.On("FindByID", mock.Anything, slotID).Return(slot, nil)
	mockSlots.On("Delete", mock.Anything, slotID).Return(nil)

	service := newAvailabilityService(mockSlots)

	err := service.DeleteSlot(context.Background(), principal, slotID.String())

	assert.NoError(t, err)
	mockSlots.AssertExpectations(t)
}

func TestListSlots_ExactDateWinsOverFromDate(t *testing.T) {
	exact := futureDate(5)
	from := futureDate(1)

	mockSlots := new(MockSlotRepository)
	mockSlots.On("List", mock.Anything, mock.MatchedBy(func(f repository.SlotFilter) bool {
		return f.Date != nil && f.Date.Format("2006-01-02") == exact && f.FromDate == nil
	})).Return([]*entity.AvailabilitySlot{}, nil)

	service := newAvailabilityService(mockSlots)

	_, err := service.ListSlots(context.Background(), SlotListFilter{
		ExactDate: &exact,
		FromDate:  &from,
	})

	assert.NoError(t, err)
	mockSlots.AssertExpectations(t)
}

func TestListSlots_DefaultsToToday(t *testing.T) {
	mockSlots := new(MockSlotRepository)
	mockSlots.On("List", mock.Anything, mock.MatchedBy(func(f repository.SlotFilter) bool {
		return f.Date == nil && f.FromDate != nil && f.FromDate.Equal(utils.Today())
	})).Return([]*entity.AvailabilitySlot{}, nil)

	service := newAvailabilityService(mockSlots)

	_, err := service.ListSlots(context.Background(), SlotListFilter{})

	assert.NoError(t, err)
	mockSlots.AssertExpectations(t)
}

func TestListDemoSlots_FormatsTutorFields(t *testing.T) {
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	row := &repository.DemoSlotRow{
		AvailabilitySlot: entity.AvailabilitySlot{
			Base:      entity.Base{ID: uuid.New()},
			TutorID:   uuid.New(),
			Date:      date,
			StartTime: time.Date(2026, 9, 14, 14, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 9, 14, 15, 0, 0, 0, time.UTC),
			Status:    entity.SlotAvailable,
		},
		TutorFirstName: "Ada",
		TutorLastName:  "Lovelace",
		Subject:        "Mathematics",
	}

	mockSlots := new(MockSlotRepository)
	mockSlots.On("ListDemo", mock.Anything, mock.Anything).Return([]*repository.DemoSlotRow{row}, nil)

	service := newAvailabilityService(mockSlots)

	out, err := service.ListDemoSlots(context.Background())

	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "Ada Lovelace", out[0].TutorName)
	assert.Equal(t, "September 14, 2026", out[0].FormattedDate)
	assert.Equal(t, "Monday", out[0].DayName)
	assert.Equal(t, "2 PM - 3 PM", out[0].Time)
}
