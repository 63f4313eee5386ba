package handler

import "time"

// productRequest carries the admin-editable fields. Price and stock allow
// zero but never negatives; clamping to two decimals happens server-side.
type productRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"       validate:"gte=0"`
	Stock       int     `json:"stock"       validate:"gte=0"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category"`
}

type productResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	ImageURL    string    `json:"image_url,omitempty"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type listProductsResponse struct {
	Data       []productResponse  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
