package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RoleUser is the default role assigned to every new user.
const RoleUser = "user"

// RoleAdmin grants access to admin-gated endpoints.
const RoleAdmin = "admin"

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByGoogleID(ctx context.Context, googleID string) (User, error)
	Create(ctx context.Context, user User) (User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name, picture string) (User, error)
	LinkGoogleID(ctx context.Context, id uuid.UUID, googleID string) (User, error)
}

// User represents a stored user with authentication material.
// PasswordHash is empty for accounts created through Google sign-in;
// GoogleID is nil for accounts that never linked a Google identity.
// A user always has at least one of the two.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	GoogleID     *string
	Picture      string
	Roles        []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole reports whether the user carries any of the given roles.
func (u User) HasRole(roles ...string) bool {
	for _, want := range roles {
		for _, have := range u.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
