package domain

import (
	"time"

	"github.com/spec-kit/jobboard-service/internal/auth"
)

// UserStatus represents lifecycle states for a platform user.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// User is the domain model for any platform account. The role is assigned at
// registration and immutable through this service.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         auth.Role
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity returns the token-issuance view of the user.
func (u *User) Identity() auth.Identity {
	return auth.Identity{ID: u.ID, Email: u.Email, Role: u.Role}
}
