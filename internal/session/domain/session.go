package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/tair/retail-dashboard/pkg/apperror"
	"github.com/tair/retail-dashboard/pkg/auth"
)

// Navigation destinations
const (
	PageLogin          = "Login"
	PageDashboard      = "Dashboard"
	PageProducts       = "Products"
	PageCart           = "Cart"
	PageManageProducts = "Manage Products"
	PageSync           = "Sync"
	PageOrders         = "Orders"
)

// Session states
const (
	StateAnonymous = "anonymous"
	StateUser      = "user"
	StateAdmin     = "admin"
)

var destinations = map[string][]string{
	auth.RoleUser:  {PageDashboard, PageProducts, PageCart},
	auth.RoleAdmin: {PageDashboard, PageProducts, PageManageProducts, PageSync, PageOrders},
}

// Destinations lists the pages offered to role, in menu order. An unknown
// or empty role only gets the login page.
func Destinations(role string) []string {
	pages, ok := destinations[role]
	if !ok {
		return []string{PageLogin}
	}
	out := make([]string, len(pages))
	copy(out, pages)
	return out
}

// Offers reports whether page is a destination of role
func Offers(role, page string) bool {
	for _, p := range Destinations(role) {
		if p == page {
			return true
		}
	}
	return false
}

// Session is one signed-in identity and the view it is on
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Page      string    `json:"page"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Principal is the identity the session acts as
func (s *Session) Principal() auth.Principal {
	return auth.Principal{Username: s.Username, FullName: s.FullName, Role: s.Role}
}

// State reports the navigation state of the session
func (s *Session) State() string {
	if s == nil {
		return StateAnonymous
	}
	switch s.Role {
	case auth.RoleAdmin:
		return StateAdmin
	case auth.RoleUser:
		return StateUser
	default:
		return StateAnonymous
	}
}

// Store keeps live sessions. Get returns apperror.ErrNotFound for unknown
// or expired ids.
type Store interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// NotFoundError is returned for unknown or expired session ids
func NotFoundError(id string) error {
	return fmt.Errorf("session %s: %w", id, apperror.ErrNotFound)
}
