package dashboard

import (
	"context"

	"postboard-go/internal/common/models"
	"postboard-go/internal/database"

	"github.com/google/uuid"
)

type Repository interface {
	GetDashboardStats(ctx context.Context, userID uuid.UUID) (*models.DashboardStats, error)
}

type repository struct {
	*database.Repository
}

func NewRepository(db *database.DB) Repository {
	return &repository{
		Repository: database.NewRepository(db),
	}
}

func (r *repository) GetDashboardStats(ctx context.Context, userID uuid.UUID) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	query := `
		SELECT
			COUNT(*) AS total_posts,
			COUNT(*) FILTER (WHERE user_id = $1) AS user_posts
		FROM posts`

	if err := r.Get(ctx, stats, query, userID); err != nil {
		return nil, r.Error("dashboard stats", err)
	}
	return stats, nil
}
