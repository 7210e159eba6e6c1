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
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token uuid.UUID) error
}

type authService struct {
	db     TxBeginner
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(db TxBeginner, repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		db:     db,
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

// Register creates the user and its role profile in one transaction, then
// opens a session.
func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check existing email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         entity.UserRole(req.Role),
		IsActive:     true,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.repo.User.Create(ctx, tx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	switch user.Role {
	case entity.RoleTutor:
		profile := &entity.TutorProfile{
			Base:       entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			UserID:     user.ID,
			Subject:    req.Subject,
			Department: req.Department,
			Bio:        req.Bio,
			Contact:    req.Contact,
		}
		if err := s.repo.Tutor.Create(ctx, tx, profile); err != nil {
			return nil, fmt.Errorf("create tutor profile: %w", err)
		}
	case entity.RoleTutee:
		profile := &entity.TuteeProfile{
			Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			UserID:   user.ID,
			Semester: req.Semester,
			Contact:  req.Contact,
		}
		if err := s.repo.Tutee.Create(ctx, tx, profile); err != nil {
			return nil, fmt.Errorf("create tutee profile: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, req.Role)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit registration: %w", err)
	}

	session, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	session, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token uuid.UUID) error {
	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *authService) openSession(ctx context.Context, userID uuid.UUID) (*entity.Session, error) {
	now := time.Now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    userID,
		Token:     uuid.New(),
		ExpiresAt: now.Add(time.Duration(s.config.Auth.SessionExpiryHours) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return session, nil
}
