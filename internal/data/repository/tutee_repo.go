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

type TuteeProfileRepository interface {
	Create(ctx context.Context, q database.Querier, profile *entity.TuteeProfile) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TuteeProfile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.TuteeProfile, error)
}

type tuteeProfileRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTuteeProfileRepository(db database.PgxIface, log *zap.Logger) TuteeProfileRepository {
	return &tuteeProfileRepository{
		db:  db,
		log: log.With(zap.String("repository", "tutee_profile")),
	}
}

func (r *tuteeProfileRepository) Create(ctx context.Context, q database.Querier, profile *entity.TuteeProfile) error {
	query := `
		INSERT INTO tutee_profiles (id, user_id, semester, contact, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := q.Exec(ctx, query,
		profile.ID,
		profile.UserID,
		profile.Semester,
		profile.Contact,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create tutee profile",
			zap.Error(err),
			zap.String("user_id", profile.UserID.String()),
		)
		return fmt.Errorf("create tutee profile for user %s: %w", profile.UserID.String(), err)
	}

	return nil
}

func (r *tuteeProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TuteeProfile, error) {
	query := `
		SELECT id, user_id, semester, contact, created_at, updated_at
		FROM tutee_profiles
		WHERE id = $1
	`

	var profile entity.TuteeProfile
	err := r.db.QueryRow(ctx, query, id).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Semester,
		&profile.Contact,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find tutee profile by ID",
			zap.Error(err),
			zap.String("tutee_id", id.String()),
		)
		return nil, fmt.Errorf("find tutee profile by ID %s: %w", id.String(), err)
	}

	return &profile, nil
}

func (r *tuteeProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.TuteeProfile, error) {
	query := `
		SELECT id, user_id, semester, contact, created_at, updated_at
		FROM tutee_profiles
		WHERE user_id = $1
	`

	var profile entity.TuteeProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Semester,
		&profile.Contact,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find tutee profile by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find tutee profile by user ID %s: %w", userID.String(), err)
	}

	return &profile, nil
}
