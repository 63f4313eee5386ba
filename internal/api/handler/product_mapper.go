package handler

import (
	"github.com/shopflow/storefront-api/internal/core/domain"
	"github.com/shopflow/storefront-api/internal/core/ports"
)

// --- Request → Service input ---

func toUpsertInput(req productRequest) ports.ProductUpsertInput {
	return ports.ProductUpsertInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
	}
}

// --- Service result → HTTP response ---

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt.UTC(),
		UpdatedAt:   p.UpdatedAt.UTC(),
	}
}

func toListProductsResponse(r *ports.ListProductsResult) listProductsResponse {
	items := make([]productResponse, len(r.Items))
	for i, p := range r.Items {
		items[i] = toProductResponse(p)
	}
	return listProductsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}
