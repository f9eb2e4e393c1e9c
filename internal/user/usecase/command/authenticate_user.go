package command

import (
	"context"
	"errors"

	"github.com/tair/retail-dashboard/internal/user/domain"
	"github.com/tair/retail-dashboard/pkg/apperror"
	"github.com/tair/retail-dashboard/pkg/auth"
)

// AuthenticateUserCommand carries the submitted credentials
type AuthenticateUserCommand struct {
	Username string
	Password string
}

// AuthenticateUserHandler checks credentials against the store
type AuthenticateUserHandler struct {
	repo domain.UserRepository
}

// NewAuthenticateUserHandler creates a new authenticate user handler
func NewAuthenticateUserHandler(repo domain.UserRepository) *AuthenticateUserHandler {
	return &AuthenticateUserHandler{repo: repo}
}

// Handle returns the principal for valid credentials. Unknown users and
// wrong passwords both yield apperror.ErrAuthentication; store failures are
// passed through.
func (h *AuthenticateUserHandler) Handle(ctx context.Context, cmd AuthenticateUserCommand) (auth.Principal, error) {
	if cmd.Username == "" || cmd.Password == "" {
		return auth.Principal{}, apperror.ErrAuthentication
	}

	user, err := h.repo.FindByUsername(ctx, cmd.Username)
	if errors.Is(err, apperror.ErrNotFound) {
		auth.BurnPasswordCheck(cmd.Password)
		return auth.Principal{}, apperror.ErrAuthentication
	}
	if err != nil {
		return auth.Principal{}, err
	}

	if !auth.CheckPassword(user.PasswordHash, cmd.Password) {
		return auth.Principal{}, apperror.ErrAuthentication
	}
	return user.Principal(), nil
}
