package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/shopflow/storefront-api/internal/core/domain"
	"github.com/shopflow/storefront-api/internal/core/policy"
	"github.com/shopflow/storefront-api/internal/core/ports"
)

// ProductService serves the public catalog and the admin product editor.
type ProductService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger}
}

func (s *ProductService) List(ctx context.Context, in ports.ListProductsInput) (*ports.ListProductsResult, error) {
	page, limit := normalizePage(in.Page, in.Limit)
	filter := ports.ListProductsFilter{
		Category: in.Category,
		Search:   in.Search,
		Page:     page,
		Limit:    limit,
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return &ports.ListProductsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, caller policy.Principal, in ports.ProductUpsertInput) (*domain.Product, error) {
	if !policy.CanEditProducts(caller) {
		return nil, domain.ErrForbidden
	}
	if err := checkUpsert(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &domain.Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Price:       domain.RoundCurrency(in.Price),
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
		Category:    in.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error().Err(err).Str("name", in.Name).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().Str("product_id", p.ID).Str("name", p.Name).Str("by", caller.UserID).Msg("product created")
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, caller policy.Principal, id string, in ports.ProductUpsertInput) (*domain.Product, error) {
	if !policy.CanEditProducts(caller) {
		return nil, domain.ErrForbidden
	}
	if err := checkUpsert(in); err != nil {
		return nil, err
	}

	p := &domain.Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Price:       domain.RoundCurrency(in.Price),
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
		Category:    in.Category,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", id).Str("by", caller.UserID).Msg("product updated")
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) Delete(ctx context.Context, caller policy.Principal, id string) error {
	if !policy.CanEditProducts(caller) {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("product_id", id).Str("by", caller.UserID).Msg("product deleted")
	return nil
}

// checkUpsert re-checks the field invariants behind the transport-edge
// validation: price and stock must never be negative.
func checkUpsert(in ports.ProductUpsertInput) error {
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrMalformedInput)
	}
	if in.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", domain.ErrMalformedInput)
	}
	if in.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", domain.ErrMalformedInput)
	}
	return nil
}
