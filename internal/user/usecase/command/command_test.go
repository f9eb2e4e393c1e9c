package command

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/retail-dashboard/internal/user/repository"
	"github.com/tair/retail-dashboard/pkg/apperror"
	"github.com/tair/retail-dashboard/pkg/auth"
)

func TestRegisterStoresHashAndDefaultsRole(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	h := NewRegisterUserHandler(repo)

	u, err := h.Handle(context.Background(), RegisterUserCommand{Username: " ann ", Password: "secret1", FullName: "Ann Lee"})
	require.NoError(t, err)

	assert.Equal(t, "ann", u.Username)
	assert.Equal(t, auth.RoleUser, u.Role)
	assert.NotEqual(t, "secret1", u.PasswordHash)
	assert.True(t, auth.CheckPassword(u.PasswordHash, "secret1"))
}

func TestRegisterValidation(t *testing.T) {
	h := NewRegisterUserHandler(repository.NewMemoryUserRepository())

	tests := []struct {
		name  string
		cmd   RegisterUserCommand
		field string
	}{
		{"missing username", RegisterUserCommand{Password: "secret1", FullName: "A"}, "username"},
		{"short password", RegisterUserCommand{Username: "a", Password: "12345", FullName: "A"}, "password"},
		{"confirm mismatch", RegisterUserCommand{Username: "a", Password: "secret1", ConfirmPassword: "secret2", FullName: "A"}, "confirm_password"},
		{"unknown role", RegisterUserCommand{Username: "a", Password: "secret1", FullName: "A", Role: "root"}, "role"},
		{"missing full name", RegisterUserCommand{Username: "a", Password: "secret1"}, "full_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Handle(context.Background(), tt.cmd)
			var verr *apperror.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	h := NewRegisterUserHandler(repository.NewMemoryUserRepository())
	ctx := context.Background()

	_, err := h.Handle(ctx, RegisterUserCommand{Username: "ann", Password: "secret1", FullName: "Ann"})
	require.NoError(t, err)

	_, err = h.Handle(ctx, RegisterUserCommand{Username: "ann", Password: "other12", FullName: "Other"})
	assert.ErrorIs(t, err, apperror.ErrDuplicateUsername)
}

func TestConcurrentRegistrationOfOneName(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	h := NewRegisterUserHandler(repo)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.Handle(context.Background(), RegisterUserCommand{Username: "race", Password: "secret1", FullName: "R"})
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, apperror.ErrDuplicateUsername)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, success)
	n, _ := repo.Count(context.Background())
	assert.EqualValues(t, 1, n)
}

func TestAuthenticate(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	ctx := context.Background()
	_, err := NewRegisterUserHandler(repo).Handle(ctx, RegisterUserCommand{Username: "boss", Password: "secret1", FullName: "The Boss", Role: auth.RoleAdmin})
	require.NoError(t, err)
	h := NewAuthenticateUserHandler(repo)

	p, err := h.Handle(ctx, AuthenticateUserCommand{Username: "boss", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, auth.Principal{Username: "boss", FullName: "The Boss", Role: auth.RoleAdmin}, p)

	_, err = h.Handle(ctx, AuthenticateUserCommand{Username: "boss", Password: "wrong"})
	assert.ErrorIs(t, err, apperror.ErrAuthentication)

	_, err = h.Handle(ctx, AuthenticateUserCommand{Username: "nobody", Password: "secret1"})
	assert.ErrorIs(t, err, apperror.ErrAuthentication)
	assert.NotErrorIs(t, err, apperror.ErrNotFound)
}
