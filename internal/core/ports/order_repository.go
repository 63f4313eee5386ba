package ports

import (
	"context"
	"time"

	"github.com/shopflow/storefront-api/internal/core/domain"
)

// ListOrdersFilter carries all query parameters for listing orders.
// OwnerID is always derived from policy.OwnerScope by the service layer.
type ListOrdersFilter struct {
	OwnerID string // empty = no filter (admin); non-empty = scoped to owner
	Status  string // optional: filter by order status
	Page    int    // 1-based
	Limit   int    // max rows per page (capped at 100 by the service)
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	// Insert writes the order document, line items embedded, in one call.
	Insert(ctx context.Context, o *domain.Order) error
	// FindByID retrieves an order by id. When ownerID is non-empty the query
	// is additionally scoped to that owner, so foreign rows read as absent.
	FindByID(ctx context.Context, id string, ownerID string) (*domain.Order, error)
	// List returns a page of orders matching filter, newest first, and the
	// total count.
	List(ctx context.Context, filter ListOrdersFilter) ([]*domain.Order, int64, error)
	// UpdateStatus atomically sets the order's status and appends a history
	// entry in a single write.
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, ts time.Time, notes string) error
}
