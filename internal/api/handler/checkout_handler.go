package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopflow/storefront-api/internal/api/metrics"
	"github.com/shopflow/storefront-api/internal/core/domain"
	"github.com/shopflow/storefront-api/internal/core/ports"
)

// CheckoutHandler exposes checkout validation and order placement.
type CheckoutHandler struct {
	service ports.CheckoutService
}

func NewCheckoutHandler(service ports.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// Validate handles POST /v1/checkout/validate. It re-prices the submitted
// items against the catalog and reports the authoritative total without
// writing anything.
//
// @Summary      Validate a checkout
// @Description  Re-fetches price and stock for every item and recomputes the total server-side.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      checkoutRequest  true  "Items to validate"
// @Success      200   {object}  checkoutValidationResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/checkout/validate [post]
func (h *CheckoutHandler) Validate(c echo.Context) error {
	caller, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		metrics.CheckoutValidationsTotal.WithLabelValues(outcomeMalformed).Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.CheckoutValidationsTotal.WithLabelValues(outcomeMalformed).Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Validate(c.Request().Context(), caller, toCheckoutItems(req.Items))
	if err != nil {
		metrics.CheckoutValidationsTotal.WithLabelValues(validationOutcome(err)).Inc()
		return checkoutError(c, err)
	}

	metrics.CheckoutValidationsTotal.WithLabelValues(outcomeValid).Inc()
	return c.JSON(http.StatusOK, checkoutValidationResponse{
		Valid:       result.Valid,
		ServerTotal: result.ServerTotal,
	})
}

// PlaceOrder handles POST /v1/checkout. On success the stock decrements and
// the order insert have all committed and the caller's cart is cleared.
//
// @Summary      Place an order
// @Description  Validates the items, decrements stock and creates the order atomically.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      checkoutRequest  true  "Items to order"
// @Success      201   {object}  orderResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/checkout [post]
func (h *CheckoutHandler) PlaceOrder(c echo.Context) error {
	caller, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.service.PlaceOrder(c.Request().Context(), caller, toCheckoutItems(req.Items))
	if err != nil {
		return checkoutError(c, err)
	}

	metrics.OrdersPlacedTotal.Inc()
	metrics.OrderValue.Observe(order.Total)
	return c.JSON(http.StatusCreated, toOrderResponse(order))
}

// Outcome labels for the checkout validation counter.
const (
	outcomeValid         = "valid"
	outcomeStockConflict = "stock_conflict"
	outcomeNotFound      = "not_found"
	outcomeMalformed     = "malformed"
	outcomeError         = "error"
)

func validationOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return outcomeStockConflict
	case errors.Is(err, domain.ErrProductNotFound):
		return outcomeNotFound
	case errors.Is(err, domain.ErrMalformedInput), errors.Is(err, domain.ErrEmptyOrder):
		return outcomeMalformed
	default:
		return outcomeError
	}
}

// checkoutError maps the validation failure taxonomy to responses that name
// the offending product, so clients can point at the exact line.
func checkoutError(c echo.Context, err error) error {
	var conflict *domain.StockConflictError
	if errors.As(err, &conflict) {
		return c.JSON(http.StatusConflict, errorResponse{
			Error: conflict.Error(),
			Detail: map[string]any{
				"product_id": conflict.ProductID,
				"available":  conflict.Available,
				"requested":  conflict.Requested,
			},
		})
	}

	var missing *domain.ProductNotFoundError
	if errors.As(err, &missing) {
		return c.JSON(http.StatusNotFound, errorResponse{
			Error:  missing.Error(),
			Detail: map[string]any{"product_id": missing.ProductID},
		})
	}

	if errors.Is(err, domain.ErrMalformedInput) || errors.Is(err, domain.ErrEmptyOrder) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	return err
}

func toCheckoutItems(items []checkoutItemRequest) []ports.CheckoutItemInput {
	out := make([]ports.CheckoutItemInput, len(items))
	for i, it := range items {
		out[i] = ports.CheckoutItemInput{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	return out
}
