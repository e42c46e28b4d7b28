package post

import (
	"context"
	"strings"

	"postboard-go/internal/common/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req *CreatePostRequest) (*models.PostWithAuthor, error)
	List(ctx context.Context, page Page) ([]models.PostWithAuthor, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.PostWithAuthor, error)
	Delete(ctx context.Context, userID, postID uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req *CreatePostRequest) (*models.PostWithAuthor, error) {
	post := &models.Post{
		ID:      uuid.New(),
		UserID:  userID,
		Title:   strings.TrimSpace(req.Title),
		Content: strings.TrimSpace(req.Content),
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	log.Info().
		Str("post_id", post.ID.String()).
		Str("user_id", userID.String()).
		Msg("Post created")

	return s.repo.GetByID(ctx, post.ID)
}

func (s *service) List(ctx context.Context, page Page) ([]models.PostWithAuthor, error) {
	if page.Limit <= 0 || page.Offset < 0 {
		return nil, ErrInvalidPage
	}
	if page.Limit > MaxLimit {
		page.Limit = MaxLimit
	}
	return s.repo.List(ctx, page)
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.PostWithAuthor, error) {
	return s.repo.ListByUser(ctx, userID, limit)
}

// Delete removes a post owned by userID
func (s *service) Delete(ctx context.Context, userID, postID uuid.UUID) error {
	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		log.Warn().
			Str("post_id", postID.String()).
			Str("user_id", userID.String()).
			Msg("Refused to delete another user's post")
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, postID); err != nil {
		return err
	}

	log.Info().
		Str("post_id", postID.String()).
		Str("user_id", userID.String()).
		Msg("Post deleted")
	return nil
}
