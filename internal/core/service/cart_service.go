package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopflow/storefront-api/internal/core/domain"
	"github.com/shopflow/storefront-api/internal/core/policy"
	"github.com/shopflow/storefront-api/internal/core/ports"
)

// CartService is the per-identity cart state machine over the snapshot
// store. Stock clamping in here uses whatever stock the product shows right
// now and is advisory only; nothing in the cart carries pricing authority.
type CartService struct {
	store    ports.CartStore
	products ports.ProductRepository
	logger   zerolog.Logger
}

func NewCartService(store ports.CartStore, products ports.ProductRepository, logger zerolog.Logger) *CartService {
	return &CartService{store: store, products: products, logger: logger}
}

func (s *CartService) Get(ctx context.Context, caller policy.Principal) (*domain.CartSnapshot, error) {
	if !caller.Authenticated() {
		return nil, domain.ErrAuthRequired
	}
	return s.store.Load(ctx, caller.UserID)
}

// Add merges quantity of a product into the caller's cart. The entry
// snapshot is refreshed from the catalog and the merged quantity clamped to
// the stock the product has at this moment.
func (s *CartService) Add(ctx context.Context, caller policy.Principal, in ports.CartItemInput) (*domain.CartSnapshot, error) {
	if !caller.Authenticated() {
		return nil, domain.ErrAuthRequired
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be a positive integer", domain.ErrMalformedInput)
	}

	entry, err := s.resolveEntry(ctx, in)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.store.Load(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	snapshot.Add(entry)
	return s.persist(ctx, caller.UserID, snapshot)
}

// SetQuantity updates an existing entry. Quantities <= 0 remove the entry;
// positive quantities are clamped to the entry's last-seen stock.
func (s *CartService) SetQuantity(ctx context.Context, caller policy.Principal, in ports.CartItemInput) (*domain.CartSnapshot, error) {
	if !caller.Authenticated() {
		return nil, domain.ErrAuthRequired
	}
	if in.ProductID == "" {
		return nil, fmt.Errorf("%w: product id is required", domain.ErrMalformedInput)
	}

	snapshot, err := s.store.Load(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if err := snapshot.SetQuantity(in.ProductID, in.Quantity); err != nil {
		return nil, err
	}
	return s.persist(ctx, caller.UserID, snapshot)
}

func (s *CartService) Remove(ctx context.Context, caller policy.Principal, productID string) (*domain.CartSnapshot, error) {
	if !caller.Authenticated() {
		return nil, domain.ErrAuthRequired
	}

	snapshot, err := s.store.Load(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	snapshot.Remove(productID)
	return s.persist(ctx, caller.UserID, snapshot)
}

func (s *CartService) Clear(ctx context.Context, caller policy.Principal) error {
	if !caller.Authenticated() {
		return domain.ErrAuthRequired
	}
	return s.store.Clear(ctx, caller.UserID)
}

// Replace rebuilds the cart from a client-held snapshot, re-resolving every
// product server-side. Unknown products fail the whole restore so the
// client learns which reference went stale.
func (s *CartService) Replace(ctx context.Context, caller policy.Principal, items []ports.CartItemInput) (*domain.CartSnapshot, error) {
	if !caller.Authenticated() {
		return nil, domain.ErrAuthRequired
	}

	snapshot := domain.NewCartSnapshot()
	for i, in := range items {
		if in.Quantity <= 0 {
			return nil, fmt.Errorf("item %d: %w: quantity must be a positive integer", i, domain.ErrMalformedInput)
		}
		entry, err := s.resolveEntry(ctx, in)
		if err != nil {
			return nil, err
		}
		snapshot.Add(entry)
	}
	return s.persist(ctx, caller.UserID, snapshot)
}

// resolveEntry fetches the product and builds a cart entry snapshotting its
// current name, price, image, and stock.
func (s *CartService) resolveEntry(ctx context.Context, in ports.CartItemInput) (domain.CartEntry, error) {
	p, err := s.products.FindByID(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return domain.CartEntry{}, &domain.ProductNotFoundError{ProductID: in.ProductID}
		}
		return domain.CartEntry{}, fmt.Errorf("resolve cart product: %w", err)
	}
	return domain.CartEntry{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		StockSeen: p.Stock,
		Quantity:  in.Quantity,
		AddedAt:   time.Now().UTC(),
	}, nil
}

func (s *CartService) persist(ctx context.Context, userID string, snapshot *domain.CartSnapshot) (*domain.CartSnapshot, error) {
	snapshot.UpdatedAt = time.Now().UTC()
	if err := s.store.Save(ctx, userID, snapshot); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return snapshot, nil
}
