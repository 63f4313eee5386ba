package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopflow/storefront-api/internal/core/domain"
	"github.com/shopflow/storefront-api/internal/core/ports"
)

// CartHandler handles the caller's server-side cart snapshot.
type CartHandler struct {
	service ports.CartService
}

func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// Get handles GET /v1/cart.
//
// @Summary      Get own cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cartResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	caller, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	snapshot, err := h.service.Get(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(snapshot))
}

// AddItem handles POST /v1/cart/items.
//
// @Summary      Add a product to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addCartItemRequest  true  "Product and quantity"
// @Success      200   {object}  cartResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	caller, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req addCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	snapshot, err := h.service.Add(c.Request().Context(), caller, ports.CartItemInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(http.StatusOK, toCartResponse(snapshot))
}

// SetQuantity handles PUT /v1/cart/items/:product_id. A quantity of zero
// removes the entry.
//
// @Summary      Set the quantity of a cart entry
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        product_id  path      string                  true  "Product id"
// @Param        body        body      setCartQuantityRequest  true  "New quantity"
// @Success      200         {object}  cartResponse
// @Failure      400         {object}  errorResponse
// @Failure      401         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /v1/cart/items/{product_id} [put]
func (h *CartHandler) SetQuantity(c echo.Context) error {
	caller, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req setCartQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	snapshot, err := h.service.SetQuantity(c.Request().Context(), caller, ports.CartItemInput{
		ProductID: c.Param("product_id"),
		Quantity:  req.Quantity,
	})
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(http.StatusOK, toCartResponse(snapshot))
}

// RemoveItem handles DELETE /v1/cart/items/:product_id. Removing an entry
// that is not there succeeds; the cart simply stays as it was.
//
// @Summary      Remove a product from the cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        product_id  path      string  true  "Product id"
// @Success      200         {object}  cartResponse
// @Failure      401         {object}  errorResponse
// @Router       /v1/cart/items/{product_id} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	caller, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	snapshot, err := h.service.Remove(c.Request().Context(), caller, c.Param("product_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(snapshot))
}

// Clear handles DELETE /v1/cart.
//
// @Summary      Empty the cart
// @Tags         cart
// @Security     BearerAuth
// @Success      204  "cart cleared"
// @Failure      401  {object}  errorResponse
// @Router       /v1/cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	caller, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.Clear(c.Request().Context(), caller); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Replace handles PUT /v1/cart: a bulk restore that rebuilds the cart from
// the submitted items, re-resolving every product server-side.
//
// @Summary      Replace the whole cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      replaceCartRequest  true  "Cart content"
// @Success      200   {object}  cartResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/cart [put]
func (h *CartHandler) Replace(c echo.Context) error {
	caller, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req replaceCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	items := make([]ports.CartItemInput, len(req.Items))
	for i, it := range req.Items {
		items[i] = ports.CartItemInput{ProductID: it.ProductID, Quantity: it.Quantity}
	}

	snapshot, err := h.service.Replace(c.Request().Context(), caller, items)
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(http.StatusOK, toCartResponse(snapshot))
}

// cartError maps the expected cart failure modes; anything else goes to the
// central error handler.
func cartError(c echo.Context, err error) error {
	var missing *domain.ProductNotFoundError
	if errors.As(err, &missing) {
		return c.JSON(http.StatusNotFound, errorResponse{
			Error:  missing.Error(),
			Detail: map[string]any{"product_id": missing.ProductID},
		})
	}
	if errors.Is(err, domain.ErrCartItemNotFound) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "cart item not found"})
	}
	if errors.Is(err, domain.ErrMalformedInput) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	return err
}

func toCartResponse(s *domain.CartSnapshot) cartResponse {
	items := make([]cartEntryResponse, len(s.Items))
	for i, e := range s.Items {
		items[i] = cartEntryResponse{
			ProductID: e.ProductID,
			Name:      e.Name,
			Price:     e.Price,
			ImageURL:  e.ImageURL,
			StockSeen: e.StockSeen,
			Quantity:  e.Quantity,
			AddedAt:   e.AddedAt.UTC(),
		}
	}
	return cartResponse{
		Items:     items,
		Subtotal:  s.Subtotal(),
		UpdatedAt: s.UpdatedAt.UTC(),
	}
}
