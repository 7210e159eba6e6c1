package usecase

import (
	"context"
	"errors"
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

func tuteePrincipal() utils.Principal {
	return utils.Principal{
		UserID:    uuid.New(),
		Role:      "Tutee",
		ProfileID: uuid.New(),
	}
}

func newBookingService(db *MockTxBeginner, slots *MockSlotRepository, bookings *MockBookingRepository, tutors *MockTutorRepository) BookingService {
	repo := &repository.Repository{Slot: slots, Booking: bookings, Tutor: tutors}
	return NewBookingService(db, repo, zap.NewNop())
}

func newMockTx() *MockTx {
	tx := new(MockTx)
	tx.On("Rollback", mock.Anything).Return(nil).Maybe()
	return tx
}

func availableSlot(tutorID uuid.UUID, daysAhead int) *entity.AvailabilitySlot {
	date := utils.Today().AddDate(0, 0, daysAhead)
	return &entity.AvailabilitySlot{
		Base:      entity.Base{ID: uuid.New()},
		TutorID:   tutorID,
		Date:      date,
		StartTime: date.Add(14 * time.Hour),
		EndTime:   date.Add(15 * time.Hour),
		Status:    entity.SlotAvailable,
	}
}

func TestBookSlot_Success(t *testing.T) {
	principal := tuteePrincipal()
	slot := availableSlot(uuid.New(), 2)

	tx := newMockTx()
	tx.On("Commit", mock.Anything).Return(nil)

	db := new(MockTxBeginner)
	db.On("Begin", mock.Anything).Return(tx, nil)

	mockSlots := new(MockSlotRepository)
	mockSlots.On("FindByIDForUpdate", mock.Anything, tx, slot.ID).Return(slot, nil)
	mockSlots.On("UpdateStatus", mock.Anything, tx, slot.ID, entity.SlotBooked).Return(nil)

	mockBookings := new(MockBookingRepository)
	mockBookings.On("Create", mock.Anything, tx, mock.MatchedBy(func(b *entity.Booking) bool {
		return b.SlotID == slot.ID && b.TuteeID == principal.ProfileID && b.Status == entity.BookingStatusPending
	})).Return(nil)

	mockTutors := new(MockTutorRepository)
	mockTutors.On("FindRowByID", mock.Anything, slot.TutorID).Return(&repository.TutorRow{
		TutorProfile: entity.TutorProfile{Base: entity.Base{ID: slot.TutorID}, Subject: "Physics"},
		FirstName:    "Marie",
		LastName:     "Curie",
	}, nil)

	service := newBookingService(db, mockSlots, mockBookings, mockTutors)

	resp, err := service.BookSlot(context.Background(), principal, &request.BookSlotRequest{
		SlotID: slot.ID.String(),
	})

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, "Marie Curie", resp.TutorName)
	tx.AssertCalled(t, "Commit", mock.Anything)
	mockSlots.AssertExpectations(t)
	mockBookings.AssertExpectations(t)
}

func TestBookSlot_SlotNotFound(t *testing.T) {
	tx := newMockTx()
	db := new(MockTxBeginner)
	db.On("Begin", mock.Anything).Return(tx, nil)

	mockSlots := new(MockSlotRepository)
	mockSlots.On("FindByIDForUpdate", mock.Anything, tx, mock.Anything).Return(nil, nil)

	service := newBookingService(db, mockSlots, new(MockBookingRepository), new(MockTutorRepository))

	_, err := service.BookSlot(context.Background(), tuteePrincipal(), &request.BookSlotRequest{
		SlotID: uuid.New().String(),
	})

	assert.ErrorIs(t, err, ErrNotFound)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

// The loser of a concurrent race observes the slot already Booked once its
// lock request is granted.
func TestBookSlot_RaceLoserSeesBookedSlot(t *testing.T) {
	slot := availableSlot(uuid.New(), 2)
	slot.Status = entity.SlotBooked

	tx := newMockTx()
	db := new(MockTxBeginner)
	db.On("Begin", mock.Anything).Return(tx, nil)

	mockSlots := new(MockSlotRepository)
	mockSlots.On("FindByIDForUpdate", mock.Anything, tx, slot.ID).Return(slot, nil)

	mockBookings := new(MockBookingRepository)
	service := newBookingService(db, mockSlots, mockBookings, new(MockTutorRepository))

	_, err := service.BookSlot(context.Background(), tuteePrincipal(), &request.BookSlotRequest{
		SlotID: slot.ID.String(),
	})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	mockBookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestBookSlot_PastSlot(t *testing.T) {
	slot := availableSlot(uuid.New(), -1)

	tx := newMockTx()
	db := new(MockTxBeginner)
	db.On("Begin", mock.Anything).Return(tx, nil)

	mockSlots := new(MockSlotRepository)
	mockSlots.On("FindByIDForUpdate", mock.Anything, tx, slot.ID).Return(slot, nil)

	service := newBookingService(db, mockSlots, new(MockBookingRepository), new(MockTutorRepository))

	_, err := service.BookSlot(context.Background(), tuteePrincipal(), &request.BookSlotRequest{
		SlotID: slot.ID.String(),
	})

	assert.ErrorIs(t, err, ErrPastSlot)
}

// A failed tutor lookup aborts the transaction; the caller is never told a
// booking failed after it was committed.
func TestBookSlot_TutorLookupFailureRollsBack(t *testing.T) {
	principal := tuteePrincipal()
	slot := availableSlot(uuid.New(), 2)

	tx := newMockTx()
	db := new(MockTxBeginner)
	db.On("Begin", mock.Anything).Return(tx, nil)

	mockSlots := new(MockSlotRepository)
	mockSlots.On("FindByIDForUpdate", mock.Anything, tx, slot.ID).Return(slot, nil)
	mockSlots.On("UpdateStatus", mock.Anything, tx, slot.ID, entity.SlotBooked).Return(nil)

	mockBookings := new(MockBookingRepository)
	mockBookings.On("Create", mock.Anything, tx, mock.Anything).Return(nil)

	mockTutors := new(MockTutorRepository)
	mockTutors.On("FindRowByID", mock.Anything, slot.TutorID).Return(nil, errors.New("connection reset"))

	service := newBookingService(db, mockSlots, mockBookings, mockTutors)

	_, err := service.BookSlot(context.Background(), principal, &request.BookSlotRequest{
		SlotID: slot.ID.String(),
	})

	assert.Error(t, err)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
	tx.AssertCalled(t, "Rollback", mock.Anything)
}

func TestCancelBooking_TuteeReleasesSlot(t *testing.T) {
	principal := tuteePrincipal()
	slot := availableSlot(uuid.New(), 2)
	slot.Status = entity.SlotBooked

	booking := &entity.Booking{
		Base:    entity.Base{ID: uuid.New()},
		SlotID:  slot.ID,
		TuteeID: principal.ProfileID,
		Status:  entity.BookingStatusPending,
	}

	tx := newMockTx()
	tx.On("Commit", mock.Anything).Return(nil)

	db := new(MockTxBeginner)
	db.On("Begin", mock.Anything).Return(tx, nil)

	mockSlots := new(MockSlotRepository)
	mockSlots.On("FindByIDForUpdate", mock.Anything, tx, slot.ID).Return(slot, nil)
	mockSlots.On("UpdateStatus", mock.Anything, tx, slot.ID, entity.SlotAvailable).Return(nil)

	mockBookings := new(MockBookingRepository)
	mockBookings.On("FindByIDForUpdate", mock.Anything, tx, booking.ID).Return(booking, nil)
	mockBookings.On("UpdateStatus", mock.Anything, tx, booking.ID, entity.BookingStatusCancelled).Return(nil)

	service := newBookingService(db, mockSlots, mockBookings, new(MockTutorRepository))

	err := service.CancelBooking(context.Background(), principal, booking.ID.String())

	assert.NoError(t, err)
	mockSlots.AssertExpectations(t)
	mockBookings.AssertExpectations(t)
}

func TestCancelBooking_TutorMayCancel(t *testing.T) {
	principal := tutorPrincipal()
	slot := availableSlot(principal.ProfileID, 2)
	slot.Status = entity.SlotBooked

	booking := &entity.Booking{
		Base:    entity.Base{ID: uuid.New()},
		SlotID:  slot.ID,
		TuteeID: uuid.New(),
		Status:  entity.BookingStatusPending,
	}

	tx := newMockTx()
	tx.On("Commit", mock.Anything).Return(nil)

	db := new(MockTxBeginner)
	db.On("Begin", mock.Anything).Return(tx, nil)

	mockSlots := new(MockSlotRepository)
	mockSlots.On("FindByIDForUpdate", mock.Anything, tx, slot.ID).Return(slot, nil)
	mockSlots.On("UpdateStatus", mock.Anything, tx, slot.ID, entity.SlotAvailable).Return(nil)

	mockBookings := new(MockBookingRepository)
	mockBookings.On("FindByIDForUpdate", mock.Anything, tx, booking.ID).Return(booking, nil)
	mockBookings.On("UpdateStatus", mock.Anything, tx, booking.ID, entity.BookingStatusCancelled).Return(nil)

	service := newBookingService(db, mockSlots, mockBookings, new(MockTutorRepository))

	err := service.CancelBooking(context.Background(), principal, booking.ID.String())

	assert.NoError(t, err)
	mockBookings.AssertExpectations(t)
}

func TestCancelBooking_StrangerForbidden(t *testing.T) {
	slot := availableSlot(uuid.New(), 2)
	slot.Status = entity.SlotBooked

	booking := &entity.Booking{
		Base:    entity.Base{ID: uuid.New()},
		SlotID:  slot.ID,
		TuteeID: uuid.New(),
		Status:  entity.BookingStatusPending,
	}

	tx := newMockTx()
	db := new(MockTxBeginner)
	db.On("Begin", mock.Anything).Return(tx, nil)

	mockSlots := new(MockSlotRepository)
	mockSlots.On("FindByIDForUpdate", mock.Anything, tx, slot.ID).Return(slot, nil)

	mockBookings := new(MockBookingRepository)
	mockBookings.On("FindByIDForUpdate", mock.Anything, tx, booking.ID).Return(booking, nil)

	service := newBookingService(db, mockSlots, mockBookings, new(MockTutorRepository))

	err := service.CancelBooking(context.Background(), tuteePrincipal(), booking.ID.String())

	assert.ErrorIs(t, err, ErrForbidden)
	mockBookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelBooking_AlreadyCancelled(t *testing.T) {
	principal := tuteePrincipal()
	slot := availableSlot(uuid.New(), 2)

	booking := &entity.Booking{
		Base:    entity.Base{ID: uuid.New()},
		SlotID:  slot.ID,
		TuteeID: principal.ProfileID,
		Status:  entity.BookingStatusCancelled,
	}

	tx := newMockTx()
	db := new(MockTxBeginner)
	db.On("Begin", mock.Anything).Return(tx, nil)

	mockSlots := new(MockSlotRepository)
	mockSlots.On("FindByIDForUpdate", mock.Anything, tx, slot.ID).Return(slot, nil)

	mockBookings := new(MockBookingRepository)
	mockBookings.On("FindByIDForUpdate", mock.Anything, tx, booking.ID).Return(booking, nil)

	service := newBookingService(db, mockSlots, mockBookings, new(MockTutorRepository))

	err := service.CancelBooking(context.Background(), principal, booking.ID.String())

	assert.ErrorIs(t, err, ErrAlreadyTerminal)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

// The terminal check runs on the row read under the booking lock, so a
// completion that committed just before the cancel is seen and the cancel
// refuses rather than flipping the booking and freeing its slot.
func TestCancelBooking_CompletedBookingStaysCompleted(t *testing.T) {
	principal := tuteePrincipal()
	slot := availableSlot(uuid.New(), 2)
	slot.Status = entity.SlotBooked

	completedAt := time.Now()
	booking := &entity.Booking{
		Base:        entity.Base{ID: uuid.New()},
		SlotID:      slot.ID,
		TuteeID:     principal.ProfileID,
		Status:      entity.BookingStatusCompleted,
		CompletedAt: &completedAt,
	}

	tx := newMockTx()
	db := new(MockTxBeginner)
	db.On("Begin", mock.Anything).Return(tx, nil)

	mockSlots := new(MockSlotRepository)
	mockSlots.On("FindByIDForUpdate", mock.Anything, tx, slot.ID).Return(slot, nil)

	mockBookings := new(MockBookingRepository)
	mockBookings.On("FindByIDForUpdate", mock.Anything, tx, booking.ID).Return(booking, nil)

	service := newBookingService(db, mockSlots, mockBookings, new(MockTutorRepository))

	err := service.CancelBooking(context.Background(), principal, booking.ID.String())

	assert.ErrorIs(t, err, ErrAlreadyTerminal)
	mockBookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockSlots.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCompleteBooking_Success(t *testing.T) {
	principal := tutorPrincipal()
	slot := availableSlot(principal.ProfileID, 0)
	slot.Status = entity.SlotBooked

	booking := &entity.Booking{
		Base:   entity.Base{ID: uuid.New()},
		SlotID: slot.ID,
		Status: entity.BookingStatusPending,
	}

	tx := newMockTx()
	tx.On("Commit", mock.Anything).Return(nil)

	db := new(MockTxBeginner)
	db.On("Begin", mock.Anything).Return(tx, nil)

	mockSlots := new(MockSlotRepository)
	mockSlots.On("FindByIDForUpdate", mock.Anything, tx, slot.ID).Return(slot, nil)

	mockBookings := new(MockBookingRepository)
	mockBookings.On("FindByIDForUpdate", mock.Anything, tx, booking.ID).Return(booking, nil)
	mockBookings.On("MarkCompleted", mock.Anything, tx, booking.ID, mock.Anything).Return(nil)

	service := newBookingService(db, mockSlots, mockBookings, new(MockTutorRepository))

	resp, err := service.CompleteBooking(context.Background(), principal, booking.ID.String())

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, booking.ID.String(), resp.BookingID)
	assert.NotEmpty(t, resp.CompletedAt)
	// Completion never releases the slot.
	mockSlots.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockBookings.AssertExpectations(t)
}

func TestCompleteBooking_NotSlotOwner(t *testing.T) {
	slot := availableSlot(uuid.New(), 0)
	slot.Status = entity.SlotBooked

	booking := &entity.Booking{
		Base:   entity.Base{ID: uuid.New()},
		SlotID: slot.ID,
		Status: entity.BookingStatusPending,
	}

	tx := newMockTx()
	db := new(MockTxBeginner)
	db.On("Begin", mock.Anything).Return(tx, nil)

	mockSlots := new(MockSlotRepository)
	mockSlots.On("FindByIDForUpdate", mock.Anything, tx, slot.ID).Return(slot, nil)

	mockBookings := new(MockBookingRepository)
	mockBookings.On("FindByIDForUpdate", mock.Anything, tx, booking.ID).Return(booking, nil)

	service := newBookingService(db, mockSlots, mockBookings, new(MockTutorRepository))

	_, err := service.CompleteBooking(context.Background(), tutorPrincipal(), booking.ID.String())

	assert.ErrorIs(t, err, ErrForbidden)
	mockBookings.AssertNotCalled(t, "MarkCompleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

// Terminal states are checked under the booking lock; a cancel that landed
// first stays cancelled instead of being flipped back to completed.
func TestCompleteBooking_TerminalImmutable(t *testing.T) {
	principal := tutorPrincipal()
	slot := availableSlot(principal.ProfileID, 0)
	slot.Status = entity.SlotBooked

	for _, status := range []entity.BookingStatus{entity.BookingStatusCompleted, entity.BookingStatusCancelled} {
		booking := &entity.Booking{
			Base:   entity.Base{ID: uuid.New()},
			SlotID: slot.ID,
			Status: status,
		}

		tx := newMockTx()
		db := new(MockTxBeginner)
		db.On("Begin", mock.Anything).Return(tx, nil)

		mockSlots := new(MockSlotRepository)
		mockSlots.On("FindByIDForUpdate", mock.Anything, tx, slot.ID).Return(slot, nil)

		mockBookings := new(MockBookingRepository)
		mockBookings.On("FindByIDForUpdate", mock.Anything, tx, booking.ID).Return(booking, nil)

		service := newBookingService(db, mockSlots, mockBookings, new(MockTutorRepository))

		_, err := service.CompleteBooking(context.Background(), principal, booking.ID.String())

		assert.ErrorIs(t, err, ErrAlreadyTerminal, "status %s", status)
		mockBookings.AssertNotCalled(t, "MarkCompleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		tx.AssertNotCalled(t, "Commit", mock.Anything)
	}
}

func TestListBookings_RoleBranches(t *testing.T) {
	tutor := tutorPrincipal()
	tutee := tuteePrincipal()

	mockBookings := new(MockBookingRepository)
	mockBookings.On("ListForTutor", mock.Anything, tutor.ProfileID, (*entity.BookingStatus)(nil)).
		Return([]*repository.BookingDetail{}, nil)
	mockBookings.On("ListForTutee", mock.Anything, tutee.ProfileID, (*entity.BookingStatus)(nil)).
		Return([]*repository.BookingDetail{}, nil)

	service := newBookingService(new(MockTxBeginner), new(MockSlotRepository), mockBookings, new(MockTutorRepository))

	_, err := service.ListBookings(context.Background(), tutor, nil)
	assert.NoError(t, err)

	_, err = service.ListBookings(context.Background(), tutee, nil)
	assert.NoError(t, err)

	mockBookings.AssertExpectations(t)
}

func TestListBookings_UnknownStatus(t *testing.T) {
	service := newBookingService(new(MockTxBeginner), new(MockSlotRepository), new(MockBookingRepository), new(MockTutorRepository))

	bad := "archived"
	_, err := service.ListBookings(context.Background(), tuteePrincipal(), &bad)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestListBookings_NamesFollowCallerRole(t *testing.T) {
	tutee := tuteePrincipal()
	slot := availableSlot(uuid.New(), 1)

	detail := &repository.BookingDetail{
		Booking: entity.Booking{
			Base:    entity.Base{ID: uuid.New()},
			SlotID:  slot.ID,
			TuteeID: tutee.ProfileID,
			Status:  entity.BookingStatusPending,
		},
		Slot:           *slot,
		Subject:        "Chemistry",
		TutorFirstName: "Rosalind",
		TutorLastName:  "Franklin",
		TuteeFirstName: "Sam",
		TuteeLastName:  "Porter",
	}

	mockBookings := new(MockBookingRepository)
	mockBookings.On("ListForTutee", mock.Anything, tutee.ProfileID, (*entity.BookingStatus)(nil)).
		Return([]*repository.BookingDetail{detail}, nil)

	service := newBookingService(new(MockTxBeginner), new(MockSlotRepository), mockBookings, new(MockTutorRepository))

	out, err := service.ListBookings(context.Background(), tutee, nil)

	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "Rosalind Franklin", out[0].TutorName)
	assert.Empty(t, out[0].TuteeName)
}
