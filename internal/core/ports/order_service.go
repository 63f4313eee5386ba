package ports

import (
	"context"

	"github.com/shopflow/storefront-api/internal/core/domain"
	"github.com/shopflow/storefront-api/internal/core/policy"
)

// ListOrdersInput carries all parameters for the order list endpoint. The
// owner scope is derived from the caller, never from client input.
type ListOrdersInput struct {
	Status string
	Page   int
	Limit  int
}

// ListOrdersResult is returned by List.
type ListOrdersResult struct {
	Items      []*domain.Order
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// OrderService covers order reads and status amendment. Every operation
// evaluates the order policy predicates for the caller before touching data.
type OrderService interface {
	List(ctx context.Context, caller policy.Principal, in ListOrdersInput) (*ListOrdersResult, error)
	Get(ctx context.Context, caller policy.Principal, id string) (*domain.Order, error)
	// UpdateStatus applies a state-machine-checked transition and appends a
	// status history entry. Owner or admin only.
	UpdateStatus(ctx context.Context, caller policy.Principal, id string, next domain.OrderStatus, notes string) (*domain.Order, error)
}
