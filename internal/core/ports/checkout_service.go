package ports

import (
	"context"

	"github.com/shopflow/storefront-api/internal/core/domain"
	"github.com/shopflow/storefront-api/internal/core/policy"
)

// CheckoutItemInput is one (product, quantity) pair of a checkout request,
// in client-submitted order.
type CheckoutItemInput struct {
	ProductID string
	Quantity  int
}

// PricedItem is a checkout line after server-side re-pricing: quantity plus
// the authoritative unit price and name read from the catalog.
type PricedItem struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   float64
}

// ValidationResult is the outcome of a fully successful validation pass.
// ServerTotal is the recomputed authoritative total, rounded half away from
// zero to two decimals; Items carry the per-line price snapshots the order
// writer persists.
type ValidationResult struct {
	Valid       bool
	ServerTotal float64
	Items       []PricedItem
}

// CheckoutService re-prices and stock-checks checkout requests and commits
// orders.
type CheckoutService interface {
	// Validate re-fetches authoritative price and stock for each item, in
	// input order, and recomputes the trusted total. It performs no writes.
	// Failures: malformed item (zero/negative quantity, empty product id),
	// *domain.ProductNotFoundError, *domain.StockConflictError. Each
	// short-circuits at the first offending item.
	Validate(ctx context.Context, caller policy.Principal, items []CheckoutItemInput) (*ValidationResult, error)

	// PlaceOrder validates, then commits: every item's stock is decremented
	// behind a stock >= quantity guard, and the order row (line items
	// embedded) is inserted with the validated total and status "pending".
	// Any mid-commit failure restores every prior decrement and leaves no
	// order behind. On success the caller's cart snapshot is cleared.
	PlaceOrder(ctx context.Context, caller policy.Principal, items []CheckoutItemInput) (*domain.Order, error)
}
