package user

import "postboard-go/internal/common/models"

// RegisterRequest represents the data needed to create a new account
type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,personname"`
	LastName  string `json:"lastName" validate:"required,personname"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required,password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

// UserResponse wraps the public user the way every account endpoint answers
type UserResponse struct {
	User *models.PublicUser `json:"user"`
}
