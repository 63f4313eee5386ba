package ports

import (
	"context"

	"github.com/shopflow/storefront-api/internal/core/domain"
	"github.com/shopflow/storefront-api/internal/core/policy"
)

// AuthService implements signup, login, and profile access. Register always
// creates the profile with role "user"; roles are never client-assigned.
type AuthService interface {
	Register(ctx context.Context, email, password, displayName string) (*domain.Profile, error)
	// Login verifies credentials and returns a signed session token plus the
	// authenticated profile.
	Login(ctx context.Context, email, password string) (string, *domain.Profile, error)
	// Profile returns the caller's own profile row.
	Profile(ctx context.Context, caller policy.Principal) (*domain.Profile, error)
	// UpdateDisplayName changes the caller's display name and returns the
	// updated profile.
	UpdateDisplayName(ctx context.Context, caller policy.Principal, displayName string) (*domain.Profile, error)
	// EnsureAdmin creates an admin profile with the given credentials unless a
	// profile already exists for the email. Used for startup bootstrap.
	EnsureAdmin(ctx context.Context, email, password, displayName string) error
}
