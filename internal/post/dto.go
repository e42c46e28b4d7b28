package post

import "postboard-go/internal/common/models"

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// CreatePostRequest represents the data needed to publish a post
type CreatePostRequest struct {
	Title   string `json:"title" validate:"notblank,max=200"`
	Content string `json:"content" validate:"notblank,max=10000"`
}

type PostResponse struct {
	Post *models.PostWithAuthor `json:"post"`
}

type PostsResponse struct {
	Posts []models.PostWithAuthor `json:"posts"`
}

// Page selects a window of the newest-first post list
type Page struct {
	Limit  int
	Offset int
}
