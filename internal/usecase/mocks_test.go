package usecase

import (
	"context"
	"time"

	"tutorhub/internal/data/entity"
	"tutorhub/internal/data/repository"
	"tutorhub/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// Mock repositories and transaction plumbing shared by the service tests.

type MockTx struct {
	mock.Mock
}

func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (m *MockTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockTxBeginner struct {
	mock.Mock
}

func (m *MockTxBeginner) Begin(ctx context.Context) (database.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(database.Tx), args.Error(1)
}

type MockSlotRepository struct {
	mock.Mock
}

func (m *MockSlotRepository) Create(ctx context.Context, slot *entity.AvailabilitySlot) error {
	args := m.Called(ctx, slot)
	return args.Error(0)
}

func (m *MockSlotRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.AvailabilitySlot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AvailabilitySlot), args.Error(1)
}

func (m *MockSlotRepository) FindByIDForUpdate(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.AvailabilitySlot, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AvailabilitySlot), args.Error(1)
}

func (m *MockSlotRepository) Exists(ctx context.Context, tutorID uuid.UUID, date, start time.Time) (bool, error) {
	args := m.Called(ctx, tutorID, date, start)
	return args.Bool(0), args.Error(1)
}

func (m *MockSlotRepository) Update(ctx context.Context, slot *entity.AvailabilitySlot) error {
	args := m.Called(ctx, slot)
	return args.Error(0)
}

func (m *MockSlotRepository) UpdateStatus(ctx context.Context, q database.Querier, id uuid.UUID, status entity.SlotStatus) error {
	args := m.Called(ctx, q, id, status)
	return args.Error(0)
}

func (m *MockSlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSlotRepository) List(ctx context.Context, filter repository.SlotFilter) ([]*entity.AvailabilitySlot, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.AvailabilitySlot), args.Error(1)
}

func (m *MockSlotRepository) ListDemo(ctx context.Context, from time.Time) ([]*repository.DemoSlotRow, error) {
	args := m.Called(ctx, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.DemoSlotRow), args.Error(1)
}

type MockTutorRepository struct {
	mock.Mock
}

func (m *MockTutorRepository) Create(ctx context.Context, q database.Querier, profile *entity.TutorProfile) error {
	args := m.Called(ctx, q, profile)
	return args.Error(0)
}

func (m *MockTutorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TutorProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TutorProfile), args.Error(1)
}

func (m *MockTutorRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.TutorProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TutorProfile), args.Error(1)
}

func (m *MockTutorRepository) FindRowByID(ctx context.Context, id uuid.UUID) (*repository.TutorRow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.TutorRow), args.Error(1)
}

func (m *MockTutorRepository) List(ctx context.Context, filter repository.TutorFilter) ([]*repository.TutorRow, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.TutorRow), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, q database.Querier, booking *entity.Booking) error {
	args := m.Called(ctx, q, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) FindByIDForUpdate(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, q database.Querier, id uuid.UUID, status entity.BookingStatus) error {
	args := m.Called(ctx, q, id, status)
	return args.Error(0)
}

func (m *MockBookingRepository) MarkCompleted(ctx context.Context, q database.Querier, id uuid.UUID, completedAt time.Time) error {
	args := m.Called(ctx, q, id, completedAt)
	return args.Error(0)
}

func (m *MockBookingRepository) ListForTutee(ctx context.Context, tuteeID uuid.UUID, status *entity.BookingStatus) ([]*repository.BookingDetail, error) {
	args := m.Called(ctx, tuteeID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.BookingDetail), args.Error(1)
}

func (m *MockBookingRepository) ListForTutor(ctx context.Context, tutorID uuid.UUID, status *entity.BookingStatus) ([]*repository.BookingDetail, error) {
	args := m.Called(ctx, tutorID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.BookingDetail), args.Error(1)
}
