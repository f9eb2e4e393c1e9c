package httpapi

import (
	"context"

	"github.com/tair/retail-dashboard/pkg/auth"
)

type contextKey string

const (
	principalKey contextKey = "principal"
	sessionIDKey contextKey = "session_id"
)

// WithPrincipal stores the acting principal and its session on ctx
func WithPrincipal(ctx context.Context, p auth.Principal, sessionID string) context.Context {
	ctx = context.WithValue(ctx, principalKey, p)
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// PrincipalFrom returns the principal on ctx, anonymous when absent
func PrincipalFrom(ctx context.Context) auth.Principal {
	p, _ := ctx.Value(principalKey).(auth.Principal)
	return p
}

// SessionIDFrom returns the session id on ctx
func SessionIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey).(string)
	return id
}
