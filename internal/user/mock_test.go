package user

import (
	"context"

	"postboard-go/internal/common/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockRepository) UpdateProfilePic(ctx context.Context, id uuid.UUID, path string) (*models.User, error) {
	args := m.Called(ctx, id, path)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

// MockService is a mock implementation of Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockService) ValidateCredentials(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockService) UpdateProfilePic(ctx context.Context, id uuid.UUID, path string) (*models.User, error) {
	args := m.Called(ctx, id, path)
	if fn, ok := args.Get(0).(func(context.Context, uuid.UUID, string) *models.User); ok {
		return fn(ctx, id, path), args.Error(1)
	}
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}
