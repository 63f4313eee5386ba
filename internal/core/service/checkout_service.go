package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/shopflow/storefront-api/internal/core/domain"
	"github.com/shopflow/storefront-api/internal/core/policy"
	"github.com/shopflow/storefront-api/internal/core/ports"
)

// CheckoutService re-prices checkout requests against the stored catalog and
// commits orders with guarded stock decrements.
type CheckoutService struct {
	products ports.ProductRepository
	orders   ports.OrderRepository
	carts    ports.CartStore
	logger   zerolog.Logger
}

func NewCheckoutService(products ports.ProductRepository, orders ports.OrderRepository, carts ports.CartStore, logger zerolog.Logger) *CheckoutService {
	return &CheckoutService{products: products, orders: orders, carts: carts, logger: logger}
}

// Validate walks the items in input order and recomputes the trusted total
// from stored prices. Client-supplied prices never enter the calculation.
// The first offending item fails the whole request: malformed input before
// any lookup for that item, then not-found, then stock conflict. Later items
// are not accumulated after a failure. Performs no writes; the commit path
// re-checks stock behind an atomic guard.
func (s *CheckoutService) Validate(ctx context.Context, caller policy.Principal, items []ports.CheckoutItemInput) (*ports.ValidationResult, error) {
	if !caller.Authenticated() {
		return nil, domain.ErrAuthRequired
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	result := &ports.ValidationResult{Items: make([]ports.PricedItem, 0, len(items))}
	var total float64

	for i, it := range items {
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("item %d: %w: quantity must be a positive integer", i, domain.ErrMalformedInput)
		}
		if it.ProductID == "" {
			return nil, fmt.Errorf("item %d: %w: product id is required", i, domain.ErrMalformedInput)
		}

		p, err := s.products.FindByID(ctx, it.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				return nil, &domain.ProductNotFoundError{ProductID: it.ProductID}
			}
			return nil, fmt.Errorf("validate item %d: %w", i, err)
		}

		if it.Quantity > p.Stock {
			return nil, &domain.StockConflictError{
				ProductID: p.ID,
				Available: p.Stock,
				Requested: it.Quantity,
			}
		}

		total += p.Price * float64(it.Quantity)
		result.Items = append(result.Items, ports.PricedItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    it.Quantity,
			UnitPrice:   p.Price,
		})
	}

	result.Valid = true
	result.ServerTotal = domain.RoundCurrency(total)
	return result, nil
}

// PlaceOrder validates and commits in one pass. Stock is taken item by item
// behind a stock >= quantity guard, so two concurrent checkouts can never
// both take the last unit; any failure after the first decrement restores
// everything already taken and no order document is written.
func (s *CheckoutService) PlaceOrder(ctx context.Context, caller policy.Principal, items []ports.CheckoutItemInput) (*domain.Order, error) {
	validated, err := s.Validate(ctx, caller, items)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:          uuid.NewString(),
		OrderNumber: generateOrderNumber(),
		UserID:      caller.UserID,
		Total:       validated.ServerTotal,
		Status:      domain.StatusPending,
		Items:       make([]domain.OrderItem, 0, len(validated.Items)),
		StatusHistory: []domain.StatusHistoryEntry{
			{Status: domain.StatusPending, Timestamp: now, Notes: "order placed"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, it := range validated.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}

	if !policy.CanPlaceOrderFor(caller, order.UserID) {
		return nil, domain.ErrForbidden
	}

	// Rollback must run even when the request context is already gone.
	rollbackCtx := context.WithoutCancel(ctx)

	taken := make([]domain.OrderItem, 0, len(order.Items))
	for _, it := range order.Items {
		if err := s.products.DecrementStock(ctx, it.ProductID, it.Quantity); err != nil {
			s.restock(rollbackCtx, taken)
			return nil, err
		}
		taken = append(taken, it)
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		s.restock(rollbackCtx, taken)
		s.logger.Error().Err(err).Str("order_number", order.OrderNumber).Msg("order insert failed, stock restored")
		return nil, fmt.Errorf("insert order: %w", err)
	}

	if err := s.carts.Clear(ctx, caller.UserID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", caller.UserID).Msg("failed to clear cart after checkout")
	}

	s.logger.Info().
		Str("order_number", order.OrderNumber).
		Str("user_id", caller.UserID).
		Float64("total", order.Total).
		Int("items", len(order.Items)).
		Msg("order placed")

	return order, nil
}

// restock returns previously decremented quantities after an aborted commit.
func (s *CheckoutService) restock(ctx context.Context, items []domain.OrderItem) {
	for _, it := range items {
		if err := s.products.RestoreStock(ctx, it.ProductID, it.Quantity); err != nil {
			s.logger.Error().Err(err).
				Str("product_id", it.ProductID).
				Int("quantity", it.Quantity).
				Msg("failed to restore stock after aborted checkout")
		}
	}
}

// generateOrderNumber returns a human-facing order number in the format ORD-XXXXXXXX.
func generateOrderNumber() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("ORD-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("ORD-%08X", b)
}
