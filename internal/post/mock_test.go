package post

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

func (m *MockRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PostWithAuthor, error) {
	args := m.Called(ctx, id)
	post, _ := args.Get(0).(*models.PostWithAuthor)
	return post, args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, page Page) ([]models.PostWithAuthor, error) {
	args := m.Called(ctx, page)
	posts, _ := args.Get(0).([]models.PostWithAuthor)
	return posts, args.Error(1)
}

func (m *MockRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.PostWithAuthor, error) {
	args := m.Called(ctx, userID, limit)
	posts, _ := args.Get(0).([]models.PostWithAuthor)
	return posts, args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockService is a mock implementation of Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, userID uuid.UUID, req *CreatePostRequest) (*models.PostWithAuthor, error) {
	args := m.Called(ctx, userID, req)
	post, _ := args.Get(0).(*models.PostWithAuthor)
	return post, args.Error(1)
}

func (m *MockService) List(ctx context.Context, page Page) ([]models.PostWithAuthor, error) {
	args := m.Called(ctx, page)
	posts, _ := args.Get(0).([]models.PostWithAuthor)
	return posts, args.Error(1)
}

func (m *MockService) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.PostWithAuthor, error) {
	args := m.Called(ctx, userID, limit)
	posts, _ := args.Get(0).([]models.PostWithAuthor)
	return posts, args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, userID, postID uuid.UUID) error {
	args := m.Called(ctx, userID, postID)
	return args.Error(0)
}
