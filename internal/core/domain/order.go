package domain

import (
	"errors"
	"time"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
)

// validTransitions defines the allowed state machine transitions.
// There are no reverse transitions: a delivered order is terminal.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusConfirmed},
	StatusConfirmed: {StatusShipped},
	StatusShipped:   {StatusDelivered},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrOrderNotFound = errors.New("order not found")
var ErrEmptyOrder = errors.New("order has no items")

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderItem is a single line of an order. UnitPrice and ProductName are
// snapshots taken at order time and are decoupled from later product edits.
type OrderItem struct {
	ProductID   string  `json:"product_id" bson:"product_id"`
	ProductName string  `json:"product_name" bson:"product_name"`
	Quantity    int     `json:"quantity" bson:"quantity"`
	UnitPrice   float64 `json:"unit_price" bson:"unit_price"`
}

// LineTotal returns the unrounded price contribution of this item.
func (i OrderItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// StatusHistoryEntry records a single status transition on an order.
type StatusHistoryEntry struct {
	Status    OrderStatus `json:"status" bson:"status"`
	Timestamp time.Time   `json:"timestamp" bson:"timestamp"`
	Notes     string      `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Order is the aggregate root for a placed order. Items are embedded so that
// the order and its lines are committed in one write; Total is always the
// server-computed amount, never a client-submitted one.
type Order struct {
	ID            string               `json:"id" bson:"_id,omitempty"`
	OrderNumber   string               `json:"order_number" bson:"order_number"`
	UserID        string               `json:"user_id" bson:"user_id"`
	Total         float64              `json:"total" bson:"total"`
	Status        OrderStatus          `json:"status" bson:"status"`
	Items         []OrderItem          `json:"items" bson:"items"`
	StatusHistory []StatusHistoryEntry `json:"status_history" bson:"status_history"`
	CreatedAt     time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at" bson:"updated_at"`
}
