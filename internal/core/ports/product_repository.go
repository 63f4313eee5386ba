package ports

import (
	"context"

	"github.com/shopflow/storefront-api/internal/core/domain"
)

// ListProductsFilter carries all query parameters for listing products.
type ListProductsFilter struct {
	Category string // optional: exact category match
	Search   string // optional: partial, case-insensitive match on name
	Page     int    // 1-based
	Limit    int    // max rows per page (capped at 100 by the service)
}

// ProductRepository defines persistence operations for the catalog.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	// Update replaces the mutable fields of an existing product. A missing id
	// yields domain.ErrProductNotFound.
	Update(ctx context.Context, p *domain.Product) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// List returns a page of products matching filter and the total count.
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, int64, error)
	Delete(ctx context.Context, id string) error

	// DecrementStock atomically subtracts quantity from the product's stock,
	// guarded by stock >= quantity. It fails with *domain.StockConflictError
	// when the guard does not hold and *domain.ProductNotFoundError when the
	// product does not exist; stock can never go negative through this call.
	DecrementStock(ctx context.Context, id string, quantity int) error
	// RestoreStock adds quantity back to the product's stock. Used to roll
	// back earlier decrements when an order commit fails partway.
	RestoreStock(ctx context.Context, id string, quantity int) error
}
