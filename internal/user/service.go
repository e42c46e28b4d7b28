package user

import (
	"context"
	"errors"
	"strings"

	"postboard-go/internal/common/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Register(ctx context.Context, req *RegisterRequest) (*models.User, error)
	ValidateCredentials(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfilePic(ctx context.Context, id uuid.UUID, path string) (*models.User, error)
}

type service struct {
	repo Repository
	cost int
}

// NewService creates a user service hashing passwords with bcrypt.DefaultCost
func NewService(repo Repository) Service {
	return &service{repo: repo, cost: bcrypt.DefaultCost}
}

func (s *service) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		log.Error().
			Err(err).
			Msg("Failed to hash password")
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        normalizeEmail(req.Email),
		PasswordHash: string(hash),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Info().
		Str("user_id", user.ID.String()).
		Msg("New user registered")
	return user, nil
}

func (s *service) ValidateCredentials(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Info().
			Str("user_id", user.ID.String()).
			Msg("Failed login attempt")
		return nil, ErrInvalidCredentials
	}

	log.Info().
		Str("user_id", user.ID.String()).
		Msg("User logged in successfully")
	return user, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateProfilePic(ctx context.Context, id uuid.UUID, path string) (*models.User, error) {
	user, err := s.repo.UpdateProfilePic(ctx, id, path)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("user_id", id.String()).
		Str("profile_pic", path).
		Msg("Profile picture updated")
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
