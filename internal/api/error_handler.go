package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shopflow/storefront-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. Detail
// carries machine-readable fields for errors a client reacts to, such as
// which product a stock conflict names.
type errorResponse struct {
	Error  string         `json:"error"`
	Detail map[string]any `json:"detail,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>", "detail": {...}}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	// Errors that carry identifying detail for the client.
	var conflict *domain.StockConflictError
	if errors.As(err, &conflict) {
		return http.StatusConflict, errorResponse{
			Error: conflict.Error(),
			Detail: map[string]any{
				"product_id": conflict.ProductID,
				"available":  conflict.Available,
				"requested":  conflict.Requested,
			},
		}
	}
	var missing *domain.ProductNotFoundError
	if errors.As(err, &missing) {
		return http.StatusNotFound, errorResponse{
			Error:  missing.Error(),
			Detail: map[string]any{"product_id": missing.ProductID},
		}
	}

	// Known domain errors yield deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrAuthRequired):
		return http.StatusUnauthorized, errorResponse{Error: "authentication required"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "invalid credentials"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: "access forbidden"}
	case errors.Is(err, domain.ErrMalformedInput), errors.Is(err, domain.ErrEmptyOrder):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, errorResponse{Error: "product not found"}
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, errorResponse{Error: "order not found"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Error: "user not found"}
	case errors.Is(err, domain.ErrCartItemNotFound):
		return http.StatusNotFound, errorResponse{Error: "cart item not found"}
	case errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusConflict, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, errorResponse{Error: "user already exists"}
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error()}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
