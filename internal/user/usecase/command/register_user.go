package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tair/retail-dashboard/internal/user/domain"
	"github.com/tair/retail-dashboard/pkg/apperror"
	"github.com/tair/retail-dashboard/pkg/auth"
	"github.com/tair/retail-dashboard/pkg/logger"
)

// RegisterUserCommand represents the command to register a new user
type RegisterUserCommand struct {
	Username string
	Password string
	// ConfirmPassword is checked only when set
	ConfirmPassword string
	FullName        string
	Role            string // Optional, defaults to "user"
}

// RegisterUserHandler handles user registration command
type RegisterUserHandler struct {
	repo domain.UserRepository
	now  func() time.Time
}

// NewRegisterUserHandler creates a new register user handler
func NewRegisterUserHandler(repo domain.UserRepository) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo, now: time.Now}
}

// Handle executes the register user command
func (h *RegisterUserHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*domain.User, error) {
	username := strings.TrimSpace(cmd.Username)
	fullName := strings.TrimSpace(cmd.FullName)

	v := apperror.NewValidationError()
	if username == "" {
		v.Add("username", "is required")
	}
	if fullName == "" {
		v.Add("full_name", "is required")
	}
	if cmd.Password == "" {
		v.Add("password", "is required")
	} else if len(cmd.Password) < auth.MinPasswordLength {
		v.Add("password", fmt.Sprintf("must be at least %d characters", auth.MinPasswordLength))
	}
	if cmd.ConfirmPassword != "" && cmd.ConfirmPassword != cmd.Password {
		v.Add("confirm_password", "does not match")
	}

	role := cmd.Role
	if role == "" {
		role = auth.RoleUser
	}
	if !auth.ValidRole(role) {
		v.Add("role", "must be admin or user")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hashedPassword,
		FullName:     fullName,
		Role:         role,
		CreatedAt:    h.now().UTC(),
	}

	// Uniqueness is enforced by the store, so concurrent registrations of one
	// name cannot both succeed
	if err := h.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info(ctx).
		Str("username", user.Username).
		Str("role", user.Role).
		Msg("User registered")
	return user, nil
}
