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

// SlotFilter narrows the slot listing. Date and FromDate are mutually
// exclusive; callers resolve precedence before reaching the repository.
type SlotFilter struct {
	TutorID  *uuid.UUID
	Date     *time.Time
	FromDate *time.Time
}

// DemoSlotRow is an available slot joined with its tutor's name and subject,
// as rendered on the demo-session listing.
type DemoSlotRow struct {
	entity.AvailabilitySlot
	TutorFirstName string
	TutorLastName  string
	Subject        string
}

func (d *DemoSlotRow) TutorName() string {
	u := entity.User{FirstName: d.TutorFirstName, LastName: d.TutorLastName}
	return u.FullName()
}

type SlotRepository interface {
	Create(ctx context.Context, slot *entity.AvailabilitySlot) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.AvailabilitySlot, error)
	// FindByIDForUpdate locks the slot row for the duration of the caller's
	// transaction. Booking and cancellation serialize on this lock.
	FindByIDForUpdate(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.AvailabilitySlot, error)
	Exists(ctx context.Context, tutorID uuid.UUID, date, start time.Time) (bool, error)
	Update(ctx context.Context, slot *entity.AvailabilitySlot) error
	UpdateStatus(ctx context.Context, q database.Querier, id uuid.UUID, status entity.SlotStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter SlotFilter) ([]*entity.AvailabilitySlot, error)
	ListDemo(ctx context.Context, from time.Time) ([]*DemoSlotRow, error)
}

type slotRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSlotRepository(db database.PgxIface, log *zap.Logger) SlotRepository {
	return &slotRepository{
		db:  db,
		log: log.With(zap.String("repository", "slot")),
	}
}

const slotColumns = `id, tutor_id, date, start_time, end_time, status, created_at, updated_at`

func scanSlot(row pgx.Row) (*entity.AvailabilitySlot, error) {
	var slot entity.AvailabilitySlot
	err := row.Scan(
		&slot.ID,
		&slot.TutorID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Status,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepository) Create(ctx context.Context, slot *entity.AvailabilitySlot) error {
	query := `
		INSERT INTO availability_slots (id, tutor_id, date, start_time, end_time, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		slot.ID,
		slot.TutorID,
		slot.Date,
		slot.StartTime,
		slot.EndTime,
		slot.Status,
		slot.CreatedAt,
		slot.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create slot",
			zap.Error(err),
			zap.String("tutor_id", slot.TutorID.String()),
			zap.Time("date", slot.Date),
		)
		return fmt.Errorf("create slot for tutor %s: %w", slot.TutorID.String(), err)
	}

	return nil
}

func (r *slotRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.AvailabilitySlot, error) {
	query := `SELECT ` + slotColumns + ` FROM availability_slots WHERE id = $1`

	slot, err := scanSlot(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find slot by ID",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return nil, fmt.Errorf("find slot by ID %s: %w", id.String(), err)
	}

	return slot, nil
}

func (r *slotRepository) FindByIDForUpdate(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.AvailabilitySlot, error) {
	query := `SELECT ` + slotColumns + ` FROM availability_slots WHERE id = $1 FOR UPDATE`

	slot, err := scanSlot(q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock slot",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return nil, fmt.Errorf("lock slot %s: %w", id.String(), err)
	}

	return slot, nil
}

func (r *slotRepository) Exists(ctx context.Context, tutorID uuid.UUID, date, start time.Time) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM availability_slots
			WHERE tutor_id = $1 AND date = $2 AND start_time = $3
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, tutorID, date, start).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check slot existence",
			zap.Error(err),
			zap.String("tutor_id", tutorID.String()),
		)
		return false, fmt.Errorf("check slot exists: %w", err)
	}

	return exists, nil
}

func (r *slotRepository) Update(ctx context.Context, slot *entity.AvailabilitySlot) error {
	query := `
		UPDATE availability_slots
		SET date = $2, start_time = $3, end_time = $4, status = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		slot.ID,
		slot.Date,
		slot.StartTime,
		slot.EndTime,
		slot.Status,
		slot.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update slot",
			zap.Error(err),
			zap.String("slot_id", slot.ID.String()),
		)
		return fmt.Errorf("update slot %s: %w", slot.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot %s not found", slot.ID.String())
	}

	return nil
}

func (r *slotRepository) UpdateStatus(ctx context.Context, q database.Querier, id uuid.UUID, status entity.SlotStatus) error {
	query := `UPDATE availability_slots SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := q.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update slot status",
			zap.Error(err),
			zap.String("slot_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update slot %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot %s not found", id.String())
	}

	return nil
}

func (r *slotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM availability_slots WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete slot",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return fmt.Errorf("delete slot %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot %s not found", id.String())
	}

	r.log.Info("Slot deleted", zap.String("slot_id", id.String()))
	return nil
}

func (r *slotRepository) List(ctx context.Context, filter SlotFilter) ([]*entity.AvailabilitySlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM availability_slots
		WHERE ($1::uuid IS NULL OR tutor_id = $1)
		  AND ($2::date IS NULL OR date = $2)
		  AND ($3::date IS NULL OR date >= $3)
		ORDER BY date, start_time
	`

	rows, err := r.db.Query(ctx, query, filter.TutorID, filter.Date, filter.FromDate)
	if err != nil {
		r.log.Error("Failed to list slots", zap.Error(err))
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var slots []*entity.AvailabilitySlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			r.log.Error("Failed to scan slot row", zap.Error(err))
			return nil, fmt.Errorf("scan slot row: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

func (r *slotRepository) ListDemo(ctx context.Context, from time.Time) ([]*DemoSlotRow, error) {
	query := `
		SELECT s.id, s.tutor_id, s.date, s.start_time, s.end_time, s.status,
		       s.created_at, s.updated_at, u.first_name, u.last_name, tp.subject
		FROM availability_slots s
		JOIN tutor_profiles tp ON tp.id = s.tutor_id
		JOIN users u ON u.id = tp.user_id
		WHERE s.status = 'Available' AND s.date >= $1
		ORDER BY s.date, s.start_time
	`

	rows, err := r.db.Query(ctx, query, from)
	if err != nil {
		r.log.Error("Failed to list demo slots", zap.Error(err))
		return nil, fmt.Errorf("list demo slots: %w", err)
	}
	defer rows.Close()

	var out []*DemoSlotRow
	for rows.Next() {
		var row DemoSlotRow
		err := rows.Scan(
			&row.ID,
			&row.TutorID,
			&row.Date,
			&row.StartTime,
			&row.EndTime,
			&row.Status,
			&row.CreatedAt,
			&row.UpdatedAt,
			&row.TutorFirstName,
			&row.TutorLastName,
			&row.Subject,
		)
		if err != nil {
			r.log.Error("Failed to scan demo slot row", zap.Error(err))
			return nil, fmt.Errorf("scan demo slot row: %w", err)
		}
		out = append(out, &row)
	}

	return out, nil
}
