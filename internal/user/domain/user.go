package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/tair/retail-dashboard/pkg/apperror"
	"github.com/tair/retail-dashboard/pkg/auth"
)

// User is a stored credential. Only the password hash is kept.
type User struct {
	ID           uint      `json:"-" bson:"-" gorm:"primaryKey"`
	Username     string    `json:"username" bson:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" bson:"password_hash" gorm:"column:password_hash;not null"`
	FullName     string    `json:"full_name" bson:"full_name" gorm:"not null"`
	Role         string    `json:"role" bson:"role" gorm:"not null;default:'user'"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// IsAdmin checks if user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == auth.RoleAdmin
}

// Principal is the identity the user acts as once signed in
func (u *User) Principal() auth.Principal {
	fullName := u.FullName
	if fullName == "" {
		fullName = u.Username
	}
	return auth.Principal{Username: u.Username, FullName: fullName, Role: u.Role}
}

// UserRepository defines the contract for credential storage
type UserRepository interface {
	// Create stores u, failing with apperror.ErrDuplicateUsername if the
	// username is taken
	Create(ctx context.Context, u *User) error
	FindByUsername(ctx context.Context, username string) (*User, error)
	Count(ctx context.Context) (int64, error)
}

// NotFoundError is returned when no user has the given name
func NotFoundError(username string) error {
	return fmt.Errorf("user %s: %w", username, apperror.ErrNotFound)
}

// DuplicateError is returned when the username is taken
func DuplicateError(username string) error {
	return fmt.Errorf("%w: %s", apperror.ErrDuplicateUsername, username)
}
