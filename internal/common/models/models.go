package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// User represents a user in the system
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"firstName"`
	LastName     string    `db:"last_name" json:"lastName"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	ProfilePic   string    `db:"profile_pic" json:"profilePic"` // Public path of the stored picture, empty if none
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"-"`
}

// DisplayName returns the capitalized full name, e.g. "ada LOVELACE" -> "Ada Lovelace"
func (u *User) DisplayName() string {
	return DisplayName(u.FirstName, u.LastName)
}

// Public returns the JSON representation sent to clients
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		ProfilePic:  u.ProfilePic,
		DisplayName: u.DisplayName(),
		CreatedAt:   u.CreatedAt,
	}
}

type PublicUser struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	ProfilePic  string    `json:"profilePic"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Post represents a post in the system
type Post struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"userId"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Author is the subset of a user embedded in listed posts
type Author struct {
	FirstName   string `db:"first_name" json:"firstName"`
	LastName    string `db:"last_name" json:"lastName"`
	ProfilePic  string `db:"profile_pic" json:"profilePic"`
	DisplayName string `db:"-" json:"displayName"`
}

// PostWithAuthor is a post joined with its author
type PostWithAuthor struct {
	Post
	Author Author `db:"author" json:"author"`
}

// DashboardStats represents the statistics shown on the dashboard
type DashboardStats struct {
	TotalPosts int64 `json:"totalPosts" db:"total_posts"`
	UserPosts  int64 `json:"userPosts" db:"user_posts"`
}

// DisplayName capitalizes each name the way the dashboard shows it.
// Casers keep state, so each call gets its own.
func DisplayName(firstName, lastName string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(firstName + " " + lastName))
}
