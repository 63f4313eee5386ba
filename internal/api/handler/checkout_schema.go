package handler

// checkoutItemRequest is one line of a checkout submission. Quantity must be
// a positive integer; prices are never accepted from the client.
type checkoutItemRequest struct {
	ProductID string `json:"product_id" validate:"required" example:"a1b2c3"`
	Quantity  int    `json:"quantity" validate:"required,gt=0" example:"2"`
}

type checkoutRequest struct {
	Items []checkoutItemRequest `json:"items" validate:"required,min=1,dive"`
}

// checkoutValidationResponse is the public validation contract. The field
// names, including the camelCase serverTotal, are load-bearing: storefront
// clients key off them verbatim.
type checkoutValidationResponse struct {
	Valid       bool    `json:"valid" example:"true"`
	ServerTotal float64 `json:"serverTotal" example:"200.00"`
}
