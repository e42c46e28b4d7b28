package auth

import (
	"time"

	"postboard-go/internal/common/models"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

type Service interface {
	GetAuth() *jwtauth.JWTAuth
	GenerateToken(user *models.User) (string, error)
	TokenExpiry() time.Duration
}

type authService struct {
	tokenAuth *jwtauth.JWTAuth
	expiry    time.Duration
	now       func() time.Time
}

// NewService creates a new auth service signing HS256 tokens valid for expiry
func NewService(secretKey string, expiry time.Duration) (Service, error) {
	if secretKey == "" {
		return nil, ErrMissingSecret
	}
	return &authService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil),
		expiry:    expiry,
		now:       time.Now,
	}, nil
}

// GetAuth returns the JWTAuth instance for middleware
func (s *authService) GetAuth() *jwtauth.JWTAuth {
	return s.tokenAuth
}

// TokenExpiry returns how long issued tokens stay valid
func (s *authService) TokenExpiry() time.Duration {
	return s.expiry
}

// GenerateToken creates a new JWT token for a user
func (s *authService) GenerateToken(user *models.User) (string, error) {
	if user == nil || user.ID == uuid.Nil {
		return "", ErrInvalidUser
	}

	now := s.now()
	claims := map[string]interface{}{
		"user_id": user.ID.String(),
		"email":   user.Email,
	}
	jwtauth.SetIssuedAt(claims, now)
	jwtauth.SetExpiry(claims, now.Add(s.expiry))

	_, tokenString, err := s.tokenAuth.Encode(claims)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
