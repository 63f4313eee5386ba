package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/shopflow/storefront-api/internal/core/domain"
	"github.com/shopflow/storefront-api/internal/core/ports"
)

// OrderHandler handles order reads and status amendment. Which rows a caller
// can see is decided by the order service, never here.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// List handles GET /v1/orders. Users get their own orders; admins get all.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Rows per page (max 100)"
// @Success      200     {object}  listOrdersResponse
// @Failure      401     {object}  errorResponse
// @Router       /v1/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	caller, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), caller, ports.ListOrdersInput{
		Status: c.QueryParam("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	data := make([]orderResponse, len(result.Items))
	for i, o := range result.Items {
		data[i] = toOrderResponse(o)
	}
	return c.JSON(http.StatusOK, listOrdersResponse{
		Data: data,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Get handles GET /v1/orders/:id. A foreign order reads as absent for
// non-admins, so the status code alone never leaks that the id exists.
//
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  orderResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	caller, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	order, err := h.service.Get(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "order not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}

// UpdateStatus handles PATCH /v1/orders/:id/status.
//
// @Summary      Advance an order's status
// @Description  Applies a state machine checked transition and appends a history entry.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Order id"
// @Param        body  body      updateOrderStatusRequest  true  "Target status"
// @Success      200   {object}  orderResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	caller, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.service.UpdateStatus(c.Request().Context(), caller,
		c.Param("id"), domain.OrderStatus(req.Status), req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			return c.JSON(http.StatusNotFound, errorResponse{Error: "order not found"})
		case errors.Is(err, domain.ErrInvalidTransition):
			return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		}
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}

func toOrderResponse(o *domain.Order) orderResponse {
	items := make([]orderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = orderItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
	}
	history := make([]statusHistoryResponse, len(o.StatusHistory))
	for i, entry := range o.StatusHistory {
		history[i] = statusHistoryResponse{
			Status:    string(entry.Status),
			Timestamp: entry.Timestamp.UTC(),
			Notes:     entry.Notes,
		}
	}
	return orderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		UserID:        o.UserID,
		Total:         o.Total,
		Status:        string(o.Status),
		Items:         items,
		StatusHistory: history,
		CreatedAt:     o.CreatedAt.UTC(),
		UpdatedAt:     o.UpdatedAt.UTC(),
	}
}
