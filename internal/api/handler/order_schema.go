package handler

import "time"

// updateOrderStatusRequest advances an order through its lifecycle. Orders
// are created as pending by checkout, so pending is never a target here.
type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed shipped delivered" example:"confirmed"`
	Notes  string `json:"notes" example:"payment received"`
}

type orderItemResponse struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type statusHistoryResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
}

type orderResponse struct {
	ID            string                  `json:"id"`
	OrderNumber   string                  `json:"order_number"`
	UserID        string                  `json:"user_id"`
	Total         float64                 `json:"total"`
	Status        string                  `json:"status"`
	Items         []orderItemResponse     `json:"items"`
	StatusHistory []statusHistoryResponse `json:"status_history"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

type listOrdersResponse struct {
	Data       []orderResponse    `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
