package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talenthub/jobboard-api/internal/api/middleware"
)

// requireIdentity extracts the identity injected by the Auth middleware,
// failing before any service call when it is absent.
func requireIdentity(c echo.Context) (*middleware.AuthIdentity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
