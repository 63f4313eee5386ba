package ports

import (
	"context"

	"github.com/shopflow/storefront-api/internal/core/domain"
)

// ProfileRepository defines persistence for identity profiles.
type ProfileRepository interface {
	// Create inserts a new profile. A duplicate email yields domain.ErrUserExists.
	Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
	FindByEmail(ctx context.Context, email string) (*domain.Profile, error)
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
	// UpdateDisplayName sets the display name and refreshes the updated-at
	// timestamp for the given profile id.
	UpdateDisplayName(ctx context.Context, id, displayName string) (*domain.Profile, error)
}
