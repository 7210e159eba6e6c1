package usecase

import (
	"context"
	"fmt"

	"tutorhub/internal/data/repository"
	"tutorhub/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TutorService interface {
	ListTutors(ctx context.Context, subject, department string) ([]response.TutorResponse, error)
	GetTutor(ctx context.Context, tutorID string) (*response.TutorResponse, error)
	ListDepartments(ctx context.Context) ([]string, error)
}

type tutorService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTutorService(repo *repository.Repository, log *zap.Logger) TutorService {
	return &tutorService{
		repo: repo,
		log:  log.With(zap.String("service", "tutor")),
	}
}

func (s *tutorService) ListTutors(ctx context.Context, subject, department string) ([]response.TutorResponse, error) {
	rows, err := s.repo.Tutor.List(ctx, repository.TutorFilter{
		Subject:    subject,
		Department: department,
	})
	if err != nil {
		return nil, fmt.Errorf("list tutors: %w", err)
	}

	return response.TutorsToResponse(rows), nil
}

func (s *tutorService) GetTutor(ctx context.Context, tutorID string) (*response.TutorResponse, error) {
	id, err := uuid.Parse(tutorID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid tutor ID", ErrValidation)
	}

	row, err := s.repo.Tutor.FindRowByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find tutor: %w", err)
	}
	if row == nil {
		return nil, ErrNotFound
	}

	resp := response.TutorToResponse(row)
	return &resp, nil
}

// ListDepartments is the static catalog offered to the registration and
// search forms.
func (s *tutorService) ListDepartments(ctx context.Context) ([]string, error) {
	return []string{
		"Computer Science & Engineering",
		"Electrical & Electronic Engineering",
		"Business Administration",
		"Economics",
		"English",
		"Law",
		"Mathematics & Natural Sciences",
		"Pharmacy",
		"Architecture",
		"Civil Engineering",
	}, nil
}
