package repository

import (
	"context"
	"fmt"

	"tutorhub/internal/data/entity"
	"tutorhub/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// TutorRow is a tutor profile joined with the owning user's name.
type TutorRow struct {
	entity.TutorProfile
	FirstName string
	LastName  string
	Email     string
}

func (t *TutorRow) FullName() string {
	u := entity.User{FirstName: t.FirstName, LastName: t.LastName}
	return u.FullName()
}

// TutorFilter narrows the tutor listing; empty fields match everything.
type TutorFilter struct {
	Subject    string
	Department string
}

type TutorProfileRepository interface {
	Create(ctx context.Context, q database.Querier, profile *entity.TutorProfile) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TutorProfile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.TutorProfile, error)
	FindRowByID(ctx context.Context, id uuid.UUID) (*TutorRow, error)
	List(ctx context.Context, filter TutorFilter) ([]*TutorRow, error)
}

type tutorProfileRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTutorProfileRepository(db database.PgxIface, log *zap.Logger) TutorProfileRepository {
	return &tutorProfileRepository{
		db:  db,
		log: log.With(zap.String("repository", "tutor_profile")),
	}
}

func (r *tutorProfileRepository) Create(ctx context.Context, q database.Querier, profile *entity.TutorProfile) error {
	query := `
		INSERT INTO tutor_profiles (id, user_id, subject, department, bio, contact, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := q.Exec(ctx, query,
		profile.ID,
		profile.UserID,
		profile.Subject,
		profile.Department,
		profile.Bio,
		profile.Contact,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create tutor profile",
			zap.Error(err),
			zap.String("user_id", profile.UserID.String()),
		)
		return fmt.Errorf("create tutor profile for user %s: %w", profile.UserID.String(), err)
	}

	return nil
}

func (r *tutorProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TutorProfile, error) {
	query := `
		SELECT id, user_id, subject, department, bio, contact, created_at, updated_at
		FROM tutor_profiles
		WHERE id = $1
	`

	var profile entity.TutorProfile
	err := r.db.QueryRow(ctx, query, id).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Subject,
		&profile.Department,
		&profile.Bio,
		&profile.Contact,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find tutor profile by ID",
			zap.Error(err),
			zap.String("tutor_id", id.String()),
		)
		return nil, fmt.Errorf("find tutor profile by ID %s: %w", id.String(), err)
	}

	return &profile, nil
}

func (r *tutorProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.TutorProfile, error) {
	query := `
		SELECT id, user_id, subject, department, bio, contact, created_at, updated_at
		FROM tutor_profiles
		WHERE user_id = $1
	`

	var profile entity.TutorProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Subject,
		&profile.Department,
		&profile.Bio,
		&profile.Contact,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find tutor profile by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find tutor profile by user ID %s: %w", userID.String(), err)
	}

	return &profile, nil
}

func (r *tutorProfileRepository) FindRowByID(ctx context.Context, id uuid.UUID) (*TutorRow, error) {
	query := `
		SELECT tp.id, tp.user_id, tp.subject, tp.department, tp.bio, tp.contact,
		       tp.created_at, tp.updated_at, u.first_name, u.last_name, u.email
		FROM tutor_profiles tp
		JOIN users u ON u.id = tp.user_id
		WHERE tp.id = $1
	`

	var row TutorRow
	err := r.db.QueryRow(ctx, query, id).Scan(
		&row.ID,
		&row.UserID,
		&row.Subject,
		&row.Department,
		&row.Bio,
		&row.Contact,
		&row.CreatedAt,
		&row.UpdatedAt,
		&row.FirstName,
		&row.LastName,
		&row.Email,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find tutor row by ID",
			zap.Error(err),
			zap.String("tutor_id", id.String()),
		)
		return nil, fmt.Errorf("find tutor row by ID %s: %w", id.String(), err)
	}

	return &row, nil
}

func (r *tutorProfileRepository) List(ctx context.Context, filter TutorFilter) ([]*TutorRow, error) {
	query := `
		SELECT tp.id, tp.user_id, tp.subject, tp.department, tp.bio, tp.contact,
		       tp.created_at, tp.updated_at, u.first_name, u.last_name, u.email
		FROM tutor_profiles tp
		JOIN users u ON u.id = tp.user_id
		WHERE u.is_active
		  AND ($1 = '' OR tp.subject ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR tp.department = $2)
		ORDER BY u.first_name, u.last_name
	`

	rows, err := r.db.Query(ctx, query, filter.Subject, filter.Department)
	if err != nil {
		r.log.Error("Failed to list tutors", zap.Error(err))
		return nil, fmt.Errorf("list tutors: %w", err)
	}
	defer rows.Close()

	var tutors []*TutorRow
	for rows.Next() {
		var row TutorRow
		err := rows.Scan(
			&row.ID,
			&row.UserID,
			&row.Subject,
			&row.Department,
			&row.Bio,
			&row.Contact,
			&row.CreatedAt,
			&row.UpdatedAt,
			&row.FirstName,
			&row.LastName,
			&row.Email,
		)
		if err != nil {
			r.log.Error("Failed to scan tutor row", zap.Error(err))
			return nil, fmt.Errorf("scan tutor row: %w", err)
		}
		tutors = append(tutors, &row)
	}

	return tutors, nil
}
