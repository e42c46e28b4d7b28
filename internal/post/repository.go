package post

import (
	"context"

	"postboard-go/internal/common/models"
	"postboard-go/internal/database"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.PostWithAuthor, error)
	List(ctx context.Context, page Page) ([]models.PostWithAuthor, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.PostWithAuthor, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	*database.Repository
}

func NewRepository(db *database.DB) Repository {
	return &repository{
		Repository: database.NewRepository(db),
	}
}

const selectWithAuthor = `
	SELECT
		p.id,
		p.user_id,
		p.title,
		p.content,
		p.created_at,
		u.first_name AS "author.first_name",
		u.last_name AS "author.last_name",
		u.profile_pic AS "author.profile_pic"
	FROM posts p
	JOIN users u ON u.id = p.user_id`

func (r *repository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (id, user_id, title, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	if err := r.QueryRow(ctx, query, post.ID, post.UserID, post.Title, post.Content).Scan(&post.CreatedAt); err != nil {
		return r.Error("create post", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.PostWithAuthor, error) {
	var post models.PostWithAuthor
	err := r.Get(ctx, &post, selectWithAuthor+` WHERE p.id = $1`, id)
	if database.IsNoRows(err) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, r.Error("get post", err)
	}
	withDisplayName(&post)
	return &post, nil
}

func (r *repository) List(ctx context.Context, page Page) ([]models.PostWithAuthor, error) {
	posts := []models.PostWithAuthor{}
	err := r.Select(ctx, &posts,
		selectWithAuthor+` ORDER BY p.created_at DESC, p.id LIMIT $1 OFFSET $2`,
		page.Limit, page.Offset)
	if err != nil {
		return nil, r.Error("list posts", err)
	}
	for i := range posts {
		withDisplayName(&posts[i])
	}
	return posts, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.PostWithAuthor, error) {
	posts := []models.PostWithAuthor{}
	err := r.Select(ctx, &posts,
		selectWithAuthor+` WHERE p.user_id = $1 ORDER BY p.created_at DESC, p.id LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, r.Error("list user posts", err)
	}
	for i := range posts {
		withDisplayName(&posts[i])
	}
	return posts, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return r.Error("delete post", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return r.Error("delete post", err)
	}
	if rows == 0 {
		return ErrPostNotFound
	}
	return nil
}

func withDisplayName(post *models.PostWithAuthor) {
	post.Author.DisplayName = models.DisplayName(post.Author.FirstName, post.Author.LastName)
}
