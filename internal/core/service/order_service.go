package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopflow/storefront-api/internal/core/domain"
	"github.com/shopflow/storefront-api/internal/core/policy"
	"github.com/shopflow/storefront-api/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// OrderService serves order reads and status amendment for owners and admins.
type OrderService struct {
	repo   ports.OrderRepository
	logger zerolog.Logger
}

func NewOrderService(repo ports.OrderRepository, logger zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, logger: logger}
}

func (s *OrderService) List(ctx context.Context, caller policy.Principal, in ports.ListOrdersInput) (*ports.ListOrdersResult, error) {
	if !caller.Authenticated() {
		return nil, domain.ErrAuthRequired
	}

	page, limit := normalizePage(in.Page, in.Limit)
	filter := ports.ListOrdersFilter{
		OwnerID: policy.OwnerScope(caller),
		Status:  in.Status,
		Page:    page,
		Limit:   limit,
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return &ports.ListOrdersResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *OrderService) Get(ctx context.Context, caller policy.Principal, id string) (*domain.Order, error) {
	if !caller.Authenticated() {
		return nil, domain.ErrAuthRequired
	}

	// The owner scope makes foreign rows read as absent for regular users.
	order, err := s.repo.FindByID(ctx, id, policy.OwnerScope(caller))
	if err != nil {
		return nil, err
	}
	if !policy.CanViewOrder(caller, order) {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

// UpdateStatus applies one state-machine transition and appends a history
// entry; the write is a single atomic update. There are no reverse
// transitions, so an invalid request fails before any write.
func (s *OrderService) UpdateStatus(ctx context.Context, caller policy.Principal, id string, next domain.OrderStatus, notes string) (*domain.Order, error) {
	if !caller.Authenticated() {
		return nil, domain.ErrAuthRequired
	}

	order, err := s.repo.FindByID(ctx, id, policy.OwnerScope(caller))
	if err != nil {
		return nil, err
	}
	if !policy.CanAmendOrder(caller, order) {
		return nil, domain.ErrForbidden
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, order.Status, next)
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateStatus(ctx, order.ID, next, now, notes); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	s.logger.Info().
		Str("order_number", order.OrderNumber).
		Str("from", string(order.Status)).
		Str("to", string(next)).
		Str("by", caller.UserID).
		Msg("order status updated")

	order.Status = next
	order.UpdatedAt = now
	order.StatusHistory = append(order.StatusHistory, domain.StatusHistoryEntry{
		Status:    next,
		Timestamp: now,
		Notes:     notes,
	})
	return order, nil
}

// normalizePage applies the 1-based page floor, the default limit, and the
// hard cap shared by all list endpoints.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
