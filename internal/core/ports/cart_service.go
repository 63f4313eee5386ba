package ports

import (
	"context"

	"github.com/shopflow/storefront-api/internal/core/domain"
	"github.com/shopflow/storefront-api/internal/core/policy"
)

// CartItemInput names a product and a requested quantity for cart mutations.
type CartItemInput struct {
	ProductID string
	Quantity  int
}

// CartService is the per-identity cart state machine. All stock clamping in
// here is advisory UX against last-seen stock; checkout validation remains
// the sole authority on price and availability.
type CartService interface {
	// Get restores the caller's persisted snapshot.
	Get(ctx context.Context, caller policy.Principal) (*domain.CartSnapshot, error)
	// Add merges quantity of a product into the cart, clamped to the
	// product's current stock. The product is resolved server-side.
	Add(ctx context.Context, caller policy.Principal, in CartItemInput) (*domain.CartSnapshot, error)
	// SetQuantity updates an entry's quantity; a quantity <= 0 removes it.
	SetQuantity(ctx context.Context, caller policy.Principal, in CartItemInput) (*domain.CartSnapshot, error)
	Remove(ctx context.Context, caller policy.Principal, productID string) (*domain.CartSnapshot, error)
	Clear(ctx context.Context, caller policy.Principal) error
	// Replace rebuilds the cart from a client-held snapshot, re-resolving
	// every product server-side and clamping as Add does.
	Replace(ctx context.Context, caller policy.Principal, items []CartItemInput) (*domain.CartSnapshot, error)
}
