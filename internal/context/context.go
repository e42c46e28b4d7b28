package context

import (
	"context"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

type contextKey string

const (
	userContextKey contextKey = "user"
)

type UserInfo struct {
	ID    uuid.UUID
	Email string
}

// GetUserFromContext retrieves user info from context
func GetUserFromContext(ctx context.Context) *UserInfo {
	// If already stored in context, return it
	if user, ok := ctx.Value(userContextKey).(*UserInfo); ok {
		return user
	}

	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return nil
	}

	// Otherwise parse from JWT claims
	return getUserFromClaims(claims)
}

// getUserFromClaims creates UserInfo from JWT claims
func getUserFromClaims(claims map[string]interface{}) *UserInfo {
	userID, _ := claims["user_id"].(string)
	email, _ := claims["email"].(string)
	if userID == "" {
		return nil
	}
	parsedID, err := uuid.Parse(userID)
	if err != nil {
		return nil
	}
	return &UserInfo{
		ID:    parsedID,
		Email: email,
	}
}

// WithUser adds user info to the context
func WithUser(ctx context.Context, user *UserInfo) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}
