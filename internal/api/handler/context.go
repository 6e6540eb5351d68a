package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/accesshub/rbac-service/internal/api/middleware"
	"github.com/accesshub/rbac-service/internal/core/domain"
)

// ctxIdentity extracts the live identity injected by the Auth middleware.
// Its presence proves the middleware ran; handlers behind Auth fail fast
// with 401 rather than panicking when the chain is miswired.
func ctxIdentity(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.IdentityKey).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}
