package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tair/retail-dashboard/internal/session/domain"
	usercmd "github.com/tair/retail-dashboard/internal/user/usecase/command"
	"github.com/tair/retail-dashboard/pkg/apperror"
	"github.com/tair/retail-dashboard/pkg/auth"
	"github.com/tair/retail-dashboard/pkg/logger"
	"github.com/tair/retail-dashboard/pkg/ratelimit"
)

// LoginCommand carries submitted credentials and where they came from
type LoginCommand struct {
	Username   string
	Password   string
	RemoteAddr string
}

// LoginResult is handed to the client after a successful login
type LoginResult struct {
	Token        string          `json:"token"`
	ExpiresAt    time.Time       `json:"expires_at"`
	Session      *domain.Session `json:"session"`
	Destinations []string        `json:"destinations"`
}

// Controller moves a client between the anonymous and signed-in states and
// tracks the page it is on
type Controller struct {
	authenticate *usercmd.AuthenticateUserHandler
	store        domain.Store
	tokens       *auth.TokenIssuer
	limiter      *ratelimit.Limiter
	now          func() time.Time
}

// NewController creates a new session controller
func NewController(
	authenticate *usercmd.AuthenticateUserHandler,
	store domain.Store,
	tokens *auth.TokenIssuer,
	limiter *ratelimit.Limiter,
) *Controller {
	return &Controller{
		authenticate: authenticate,
		store:        store,
		tokens:       tokens,
		limiter:      limiter,
		now:          time.Now,
	}
}

// Login authenticates, opens a session on the dashboard and issues its token
func (c *Controller) Login(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	attemptKey := cmd.Username + "@" + cmd.RemoteAddr
	allowed, retryAfter, _ := c.limiter.Allow(ctx, attemptKey)
	if !allowed {
		logger.Warn(ctx).
			Str("username", cmd.Username).
			Str("remote_addr", cmd.RemoteAddr).
			Msg("Login attempts exhausted")
		return nil, fmt.Errorf("%w: retry in %s", apperror.ErrRateLimited, retryAfter)
	}

	principal, err := c.authenticate.Handle(ctx, usercmd.AuthenticateUserCommand{
		Username: cmd.Username,
		Password: cmd.Password,
	})
	if err != nil {
		if errors.Is(err, apperror.ErrAuthentication) {
			logger.Info(ctx).Str("username", cmd.Username).Msg("Login rejected")
		}
		return nil, err
	}
	if err := c.limiter.Reset(ctx, attemptKey); err != nil {
		logger.Warn(ctx).Err(err).Msg("Failed to reset login attempts")
	}

	now := c.now().UTC()
	sess := &domain.Session{
		ID:        uuid.NewString(),
		Username:  principal.Username,
		FullName:  principal.FullName,
		Role:      principal.Role,
		Page:      domain.PageDashboard,
		CreatedAt: now,
		ExpiresAt: now.Add(c.tokens.TTL()),
	}
	if err := c.store.Save(ctx, sess); err != nil {
		return nil, err
	}

	token, err := c.tokens.Issue(sess.ID, sess.Username, sess.Role)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx).
		Str("username", sess.Username).
		Str("role", sess.Role).
		Str("session_id", sess.ID).
		Msg("Session opened")
	return &LoginResult{
		Token:        token,
		ExpiresAt:    sess.ExpiresAt,
		Session:      sess,
		Destinations: domain.Destinations(sess.Role),
	}, nil
}

// Resolve returns the live session behind token. Bad, expired or logged-out
// tokens yield apperror.ErrAuthentication.
func (c *Controller) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := c.tokens.Validate(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrAuthentication, err)
	}

	sess, err := c.store.Get(ctx, claims.SessionID)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("%w: session ended", apperror.ErrAuthentication)
	}
	if err != nil {
		return nil, err
	}
	if sess.Username != claims.Username {
		return nil, apperror.ErrAuthentication
	}
	return sess, nil
}

// Logout ends the session; its token resolves to nobody afterwards
func (c *Controller) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := c.store.Delete(ctx, sessionID); err != nil {
		return err
	}
	logger.Info(ctx).Str("session_id", sessionID).Msg("Session closed")
	return nil
}

// Current returns the session with id
func (c *Controller) Current(ctx context.Context, sessionID string) (*domain.Session, error) {
	sess, err := c.store.Get(ctx, sessionID)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.ErrAuthentication
	}
	return sess, err
}

// Navigate moves the session to page if its role is offered that page
func (c *Controller) Navigate(ctx context.Context, sessionID, page string) (*domain.Session, error) {
	sess, err := c.Current(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !domain.Offers(sess.Role, page) {
		return nil, fmt.Errorf("%w: %q is not available to %s", apperror.ErrForbidden, page, sess.Role)
	}

	sess.Page = page
	if err := c.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Destinations lists the pages offered to principal
func (c *Controller) Destinations(p auth.Principal) []string {
	return domain.Destinations(p.Role)
}
