package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopflow/storefront-api/internal/core/policy"
)

// ctxPrincipal builds the caller's principal from the claims the Auth
// middleware injected, with a fast-fail check before any service call: a
// missing user_id means the middleware never ran or the token carried no
// identity, and either way the request cannot be attributed to anyone.
func ctxPrincipal(c echo.Context) (policy.Principal, error) {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return policy.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	role, _ := c.Get("role").(string)
	return policy.Principal{UserID: userID, Role: role}, nil
}
