package user

import (
	"context"
	"strings"

	"postboard-go/internal/common/models"
	"postboard-go/internal/database"

	"github.com/google/uuid"
)

// Repository defines the user repository interface
type Repository interface {
	// Create inserts a new user and fills in its timestamps
	Create(ctx context.Context, user *models.User) error
	// GetByID retrieves a user by their ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// GetByEmail retrieves a user by their email, ignoring case
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdateProfilePic stores the public path of a user's picture
	UpdateProfilePic(ctx context.Context, id uuid.UUID, path string) (*models.User, error)
}

type repository struct {
	*database.Repository
}

// NewRepository creates a new user repository
func NewRepository(db *database.DB) Repository {
	return &repository{
		Repository: database.NewRepository(db),
	}
}

const userColumns = `id, first_name, last_name, email, password_hash, profile_pic, created_at, updated_at`

func (r *repository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, first_name, last_name, email, password_hash, profile_pic)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.QueryRow(ctx, query,
		user.ID,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.ProfilePic,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if database.IsUniqueViolation(err) {
		return ErrEmailExists
	}
	if err != nil {
		return r.Error("create user", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.Get(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if database.IsNoRows(err) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, r.Error("get user by id", err)
	}
	return &user, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.Get(ctx, &user,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = $1`,
		strings.ToLower(email))
	if database.IsNoRows(err) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, r.Error("get user by email", err)
	}
	return &user, nil
}

func (r *repository) UpdateProfilePic(ctx context.Context, id uuid.UUID, path string) (*models.User, error) {
	var user models.User
	err := r.Get(ctx, &user, `
		UPDATE users
		SET profile_pic = $2,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns, id, path)
	if database.IsNoRows(err) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, r.Error("update profile picture", err)
	}
	return &user, nil
}
