package repository

import (
	"context"
	"fmt"
	"time"

	"tutorhub/internal/data/entity"
	"tutorhub/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// BookingDetail is a booking joined with its slot and the names on both
// sides, as rendered on the booked/completed class listings.
type BookingDetail struct {
	entity.Booking
	Slot           entity.AvailabilitySlot
	Subject        string
	TutorFirstName string
	TutorLastName  string
	TuteeFirstName string
	TuteeLastName  string
}

func (d *BookingDetail) TutorName() string {
	u := entity.User{FirstName: d.TutorFirstName, LastName: d.TutorLastName}
	return u.FullName()
}

func (d *BookingDetail) TuteeName() string {
	u := entity.User{FirstName: d.TuteeFirstName, LastName: d.TuteeLastName}
	return u.FullName()
}

type BookingRepository interface {
	// Create runs on the caller's transaction; inserting the booking and
	// flipping the slot to Booked commit together.
	Create(ctx context.Context, q database.Querier, booking *entity.Booking) error
	// FindByIDForUpdate locks the booking row for the caller's transaction.
	// Status checks against the returned booking stay valid until commit.
	FindByIDForUpdate(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.Booking, error)
	UpdateStatus(ctx context.Context, q database.Querier, id uuid.UUID, status entity.BookingStatus) error
	MarkCompleted(ctx context.Context, q database.Querier, id uuid.UUID, completedAt time.Time) error
	ListForTutee(ctx context.Context, tuteeID uuid.UUID, status *entity.BookingStatus) ([]*BookingDetail, error)
	ListForTutor(ctx context.Context, tutorID uuid.UUID, status *entity.BookingStatus) ([]*BookingDetail, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, q database.Querier, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, slot_id, tutee_id, is_demo, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := q.Exec(ctx, query,
		booking.ID,
		booking.SlotID,
		booking.TuteeID,
		booking.IsDemo,
		booking.Status,
		booking.Notes,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("slot_id", booking.SlotID.String()),
			zap.String("tutee_id", booking.TuteeID.String()),
		)
		return fmt.Errorf("create booking for slot %s: %w", booking.SlotID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT id, slot_id, tutee_id, is_demo, status, notes, completed_at, created_at, updated_at
		FROM bookings
		WHERE id = $1
		FOR UPDATE
	`

	var booking entity.Booking
	err := q.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.SlotID,
		&booking.TuteeID,
		&booking.IsDemo,
		&booking.Status,
		&booking.Notes,
		&booking.CompletedAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("lock booking %s: %w", id.String(), err)
	}

	return &booking, nil
}

const bookingDetailQuery = `
	SELECT b.id, b.slot_id, b.tutee_id, b.is_demo, b.status, b.notes, b.completed_at,
	       b.created_at, b.updated_at,
	       s.id, s.tutor_id, s.date, s.start_time, s.end_time, s.status,
	       s.created_at, s.updated_at,
	       tp.subject, tu.first_name, tu.last_name, su.first_name, su.last_name
	FROM bookings b
	JOIN availability_slots s ON s.id = b.slot_id
	JOIN tutor_profiles tp ON tp.id = s.tutor_id
	JOIN users tu ON tu.id = tp.user_id
	JOIN tutee_profiles te ON te.id = b.tutee_id
	JOIN users su ON su.id = te.user_id
`

func scanBookingDetail(row pgx.Row) (*BookingDetail, error) {
	var d BookingDetail
	err := row.Scan(
		&d.ID,
		&d.SlotID,
		&d.TuteeID,
		&d.IsDemo,
		&d.Status,
		&d.Notes,
		&d.CompletedAt,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.Slot.ID,
		&d.Slot.TutorID,
		&d.Slot.Date,
		&d.Slot.StartTime,
		&d.Slot.EndTime,
		&d.Slot.Status,
		&d.Slot.CreatedAt,
		&d.Slot.UpdatedAt,
		&d.Subject,
		&d.TutorFirstName,
		&d.TutorLastName,
		&d.TuteeFirstName,
		&d.TuteeLastName,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, q database.Querier, id uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := q.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	return nil
}

func (r *bookingRepository) MarkCompleted(ctx context.Context, q database.Querier, id uuid.UUID, completedAt time.Time) error {
	query := `
		UPDATE bookings
		SET status = 'completed', completed_at = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := q.Exec(ctx, query, id, completedAt)
	if err != nil {
		r.log.Error("Failed to mark booking completed",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("mark booking %s completed: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	return nil
}

func (r *bookingRepository) ListForTutee(ctx context.Context, tuteeID uuid.UUID, status *entity.BookingStatus) ([]*BookingDetail, error) {
	return r.list(ctx, `b.tutee_id = $1`, tuteeID, status)
}

func (r *bookingRepository) ListForTutor(ctx context.Context, tutorID uuid.UUID, status *entity.BookingStatus) ([]*BookingDetail, error) {
	return r.list(ctx, `s.tutor_id = $1`, tutorID, status)
}

func (r *bookingRepository) list(ctx context.Context, where string, ownerID uuid.UUID, status *entity.BookingStatus) ([]*BookingDetail, error) {
	orderBy := `b.created_at DESC`
	if status != nil && *status == entity.BookingStatusCompleted {
		orderBy = `b.completed_at DESC, b.updated_at DESC`
	}

	query := bookingDetailQuery +
		` WHERE ` + where + ` AND ($2::text IS NULL OR b.status = $2) ORDER BY ` + orderBy

	var statusArg *string
	if status != nil {
		s := string(*status)
		statusArg = &s
	}

	rows, err := r.db.Query(ctx, query, ownerID, statusArg)
	if err != nil {
		r.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return nil, fmt.Errorf("list bookings for %s: %w", ownerID.String(), err)
	}
	defer rows.Close()

	var out []*BookingDetail
	for rows.Next() {
		detail, err := scanBookingDetail(rows)
		if err != nil {
			r.log.Error("Failed to scan booking detail row", zap.Error(err))
			return nil, fmt.Errorf("scan booking detail row: %w", err)
		}
		out = append(out, detail)
	}

	return out, nil
}
