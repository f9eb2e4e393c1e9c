package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/retail-dashboard/internal/session/domain"
	"github.com/tair/retail-dashboard/internal/session/store"
	userrepo "github.com/tair/retail-dashboard/internal/user/repository"
	usercmd "github.com/tair/retail-dashboard/internal/user/usecase/command"
	"github.com/tair/retail-dashboard/pkg/apperror"
	"github.com/tair/retail-dashboard/pkg/auth"
	"github.com/tair/retail-dashboard/pkg/ratelimit"
)

func newController(t *testing.T) *Controller {
	t.Helper()
	users := userrepo.NewMemoryUserRepository()
	register := usercmd.NewRegisterUserHandler(users)
	ctx := context.Background()

	_, err := register.Handle(ctx, usercmd.RegisterUserCommand{Username: "ann", Password: "secret1", FullName: "Ann"})
	require.NoError(t, err)
	_, err = register.Handle(ctx, usercmd.RegisterUserCommand{Username: "boss", Password: "secret1", FullName: "Boss", Role: auth.RoleAdmin})
	require.NoError(t, err)

	return NewController(
		usercmd.NewAuthenticateUserHandler(users),
		store.NewMemoryStore(),
		auth.NewTokenIssuer("test-secret", time.Hour),
		ratelimit.NewLimiter(nil, "login", 5, time.Minute),
	)
}

func TestLoginOpensSessionOnDashboard(t *testing.T) {
	c := newController(t)
	ctx := context.Background()

	res, err := c.Login(ctx, LoginCommand{Username: "ann", Password: "secret1", RemoteAddr: "10.0.0.1"})
	require.NoError(t, err)

	assert.NotEmpty(t, res.Token)
	assert.Equal(t, domain.PageDashboard, res.Session.Page)
	assert.Equal(t, domain.StateUser, res.Session.State())
	assert.Equal(t, domain.Destinations(auth.RoleUser), res.Destinations)

	sess, err := c.Resolve(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.Session.ID, sess.ID)
	assert.Equal(t, "Ann", sess.Principal().FullName)
}

func TestLoginFailure(t *testing.T) {
	c := newController(t)

	_, err := c.Login(context.Background(), LoginCommand{Username: "ann", Password: "nope"})
	assert.ErrorIs(t, err, apperror.ErrAuthentication)

	_, err = c.Login(context.Background(), LoginCommand{Username: "ghost", Password: "secret1"})
	assert.ErrorIs(t, err, apperror.ErrAuthentication)
}

func TestLogoutMakesTokenAnonymous(t *testing.T) {
	c := newController(t)
	ctx := context.Background()
	res, err := c.Login(ctx, LoginCommand{Username: "ann", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, c.Logout(ctx, res.Session.ID))

	_, err = c.Resolve(ctx, res.Token)
	assert.ErrorIs(t, err, apperror.ErrAuthentication)
}

func TestResolveRejectsForeignToken(t *testing.T) {
	c := newController(t)
	other := auth.NewTokenIssuer("other-secret", time.Hour)
	token, err := other.Issue("sid", "ann", auth.RoleAdmin)
	require.NoError(t, err)

	_, err = c.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, apperror.ErrAuthentication)
}

func TestNavigateHonoursRole(t *testing.T) {
	c := newController(t)
	ctx := context.Background()

	user, err := c.Login(ctx, LoginCommand{Username: "ann", Password: "secret1"})
	require.NoError(t, err)
	admin, err := c.Login(ctx, LoginCommand{Username: "boss", Password: "secret1"})
	require.NoError(t, err)

	_, err = c.Navigate(ctx, user.Session.ID, domain.PageManageProducts)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	sess, err := c.Navigate(ctx, user.Session.ID, domain.PageCart)
	require.NoError(t, err)
	assert.Equal(t, domain.PageCart, sess.Page)

	current, err := c.Current(ctx, user.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PageCart, current.Page)

	sess, err = c.Navigate(ctx, admin.Session.ID, domain.PageSync)
	require.NoError(t, err)
	assert.Equal(t, domain.StateAdmin, sess.State())

	_, err = c.Navigate(ctx, "missing", domain.PageProducts)
	assert.ErrorIs(t, err, apperror.ErrAuthentication)
}
