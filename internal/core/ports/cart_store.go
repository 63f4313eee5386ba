package ports

import (
	"context"

	"github.com/shopflow/storefront-api/internal/core/domain"
)

// CartStore persists one cart snapshot per identity. Load must migrate
// legacy snapshot shapes to the current version and must surface unparseable
// payloads explicitly (count + log) instead of silently discarding them.
type CartStore interface {
	// Load returns the caller's snapshot, or an empty current-version
	// snapshot when none is stored.
	Load(ctx context.Context, userID string) (*domain.CartSnapshot, error)
	Save(ctx context.Context, userID string, snapshot *domain.CartSnapshot) error
	Clear(ctx context.Context, userID string) error
}
