package auth

import (
	"fmt"

	"github.com/tair/retail-dashboard/pkg/apperror"
)

// Roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Capability names an operation gated by role
type Capability string

const (
	CapViewCatalog   Capability = "view_catalog"
	CapViewDashboard Capability = "view_dashboard"
	CapPurchase      Capability = "purchase"
	CapManageCatalog Capability = "manage_catalog"
	CapSyncCatalog   Capability = "sync_catalog"
	CapExportCatalog Capability = "export_catalog"
	CapViewAllOrders Capability = "view_all_orders"
)

var roleCapabilities = map[string]map[Capability]bool{
	RoleUser: {
		CapViewCatalog:   true,
		CapViewDashboard: true,
		CapPurchase:      true,
	},
	RoleAdmin: {
		CapViewCatalog:   true,
		CapViewDashboard: true,
		CapPurchase:      true,
		CapManageCatalog: true,
		CapSyncCatalog:   true,
		CapExportCatalog: true,
		CapViewAllOrders: true,
	},
}

// Principal is the identity an operation runs as. The zero value is anonymous.
type Principal struct {
	Username string
	FullName string
	Role     string
}

// System is used by maintenance paths (seeding, CLI) that run outside a session
var System = Principal{Username: "system", FullName: "System", Role: RoleAdmin}

// Anonymous reports whether no one is signed in
func (p Principal) Anonymous() bool {
	return p.Username == ""
}

// Can reports whether the principal holds the capability
func (p Principal) Can(c Capability) bool {
	if p.Anonymous() {
		return false
	}
	return roleCapabilities[p.Role][c]
}

// Require returns ErrForbidden unless the principal holds the capability
func Require(p Principal, c Capability) error {
	if p.Can(c) {
		return nil
	}
	who := p.Username
	if who == "" {
		who = "anonymous"
	}
	return fmt.Errorf("%s may not %s: %w", who, c, apperror.ErrForbidden)
}

// ValidRole reports whether role is known
func ValidRole(role string) bool {
	_, ok := roleCapabilities[role]
	return ok
}
