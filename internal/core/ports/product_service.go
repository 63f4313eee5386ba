package ports

import (
	"context"

	"github.com/shopflow/storefront-api/internal/core/domain"
	"github.com/shopflow/storefront-api/internal/core/policy"
)

// ListProductsInput carries all parameters for the catalog list endpoint.
type ListProductsInput struct {
	Category string
	Search   string
	Page     int
	Limit    int
}

// ListProductsResult is returned by List.
type ListProductsResult struct {
	Items      []*domain.Product
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ProductUpsertInput carries the admin-editable fields of a product. Price
// and stock are validated non-negative at the transport edge before this
// struct is built.
type ProductUpsertInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	ImageURL    string
	Category    string
}

// ProductService covers public catalog reads and admin-only catalog writes.
// Write operations evaluate policy.CanEditProducts for the caller.
type ProductService interface {
	List(ctx context.Context, in ListProductsInput) (*ListProductsResult, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, caller policy.Principal, in ProductUpsertInput) (*domain.Product, error)
	Update(ctx context.Context, caller policy.Principal, id string, in ProductUpsertInput) (*domain.Product, error)
	Delete(ctx context.Context, caller policy.Principal, id string) error
}
