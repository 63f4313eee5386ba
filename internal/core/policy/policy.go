// Package policy is the single home of the row-level access rules the
// storefront relies on. Each rule is a pure predicate over the caller's
// identity and role and the target row; services evaluate them before every
// data operation instead of scattering ad-hoc checks.
package policy

import "github.com/shopflow/storefront-api/internal/core/domain"

// Principal identifies the authenticated caller for policy decisions.
// The zero Principal is anonymous and fails every predicate that requires
// an identity.
type Principal struct {
	UserID string
	Role   string
}

// Authenticated reports whether the principal carries an identity at all.
func (p Principal) Authenticated() bool { return p.UserID != "" }

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool { return p.Authenticated() && p.Role == domain.RoleAdmin }

// CanEditProducts: products are mutable only by admins.
func CanEditProducts(p Principal) bool { return p.IsAdmin() }

// CanViewOrder: an order row is visible to its owner and to admins.
func CanViewOrder(p Principal, o *domain.Order) bool {
	if p.IsAdmin() {
		return true
	}
	return p.Authenticated() && o.UserID == p.UserID
}

// CanAmendOrder: orders are amendable by their owner or an admin.
func CanAmendOrder(p Principal, o *domain.Order) bool { return CanViewOrder(p, o) }

// CanPlaceOrderFor: an inserted order, and every line item under it, must
// belong to the identity performing the insert.
func CanPlaceOrderFor(p Principal, ownerID string) bool {
	return p.Authenticated() && p.UserID == ownerID
}

// CanViewProfile: a profile row is visible to its owner and to admins.
func CanViewProfile(p Principal, prof *domain.Profile) bool {
	if p.IsAdmin() {
		return true
	}
	return p.Authenticated() && prof.ID == p.UserID
}

// CanEditProfile: same rule as viewing, self or admin.
func CanEditProfile(p Principal, prof *domain.Profile) bool { return CanViewProfile(p, prof) }

// OwnerScope returns the owner filter list queries must apply for this
// caller: the caller's own id for regular users, empty (no filter) for
// admins. Repositories apply it on top of the service-level checks.
func OwnerScope(p Principal) string {
	if p.IsAdmin() {
		return ""
	}
	return p.UserID
}
