package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrProductNotFound = errors.New("product not found")
var ErrInsufficientStock = errors.New("insufficient stock")

// ProductNotFoundError carries the id of the missing product so callers can
// name it in their response. errors.Is(err, ErrProductNotFound) matches.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %q not found", e.ProductID)
}

func (e *ProductNotFoundError) Is(target error) bool { return target == ErrProductNotFound }

// StockConflictError reports a requested quantity that exceeds the available
// stock of a product. errors.Is(err, ErrInsufficientStock) matches.
type StockConflictError struct {
	ProductID string
	Available int
	Requested int
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

func (e *StockConflictError) Is(target error) bool { return target == ErrInsufficientStock }

// Product is a catalog entry. Price is the authoritative unit price; clients
// never submit prices. Stock never goes below zero: order commits decrement
// it behind a stock >= quantity guard.
type Product struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price"`
	Stock       int       `json:"stock" bson:"stock"`
	ImageURL    string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Category    string    `json:"category" bson:"category"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
