package dashboard

import (
	"context"
	"errors"
	"fmt"

	"postboard-go/internal/common/models"
	"postboard-go/internal/user"

	"github.com/google/uuid"
)

// RecentPostsLimit is how many of the user's own posts the dashboard shows
const RecentPostsLimit = 5

// Overview is everything the dashboard page renders
type Overview struct {
	User        *models.PublicUser      `json:"user"`
	Stats       *models.DashboardStats  `json:"stats"`
	RecentPosts []models.PostWithAuthor `json:"recentPosts"`
}

// UserSource loads the signed-in user
type UserSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// PostSource lists a user's newest posts
type PostSource interface {
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.PostWithAuthor, error)
}

type Service interface {
	GetOverview(ctx context.Context, userID uuid.UUID) (*Overview, error)
}

type service struct {
	repo  Repository
	users UserSource
	posts PostSource
}

func NewService(repo Repository, users UserSource, posts PostSource) Service {
	return &service{
		repo:  repo,
		users: users,
		posts: posts,
	}
}

func (s *service) GetOverview(ctx context.Context, userID uuid.UUID) (*Overview, error) {
	account, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrFetchingStats, err)
	}

	stats, err := s.repo.GetDashboardStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchingStats, err)
	}

	recent, err := s.posts.ListByUser(ctx, userID, RecentPostsLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchingStats, err)
	}

	return &Overview{
		User:        account.Public(),
		Stats:       stats,
		RecentPosts: recent,
	}, nil
}
