package handler

import "time"

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"required,gt=0"`
}

// setCartQuantityRequest allows zero: setting an entry to zero removes it.
type setCartQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

type cartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"required,gt=0"`
}

type replaceCartRequest struct {
	Items []cartItemRequest `json:"items" validate:"dive"`
}

type cartEntryResponse struct {
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	ImageURL  string    `json:"image_url,omitempty"`
	StockSeen int       `json:"stock_seen"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// cartResponse returns the full snapshot. Subtotal is advisory: it is
// computed from the prices seen when items were added, not re-priced.
type cartResponse struct {
	Items     []cartEntryResponse `json:"items"`
	Subtotal  float64             `json:"subtotal"`
	UpdatedAt time.Time           `json:"updated_at"`
}
