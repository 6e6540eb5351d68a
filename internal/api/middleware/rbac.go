package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/accesshub/rbac-service/internal/api/metrics"
	"github.com/accesshub/rbac-service/internal/core/domain"
)

// RequireLevel enforces a minimum role level on the identity resolved by
// Auth. The decision runs against the live role set, so a role revoked
// after token issuance denies access before the token expires.
func RequireLevel(minLevel int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(IdentityKey).(*domain.User)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			decision := domain.Authorize(user, minLevel)
			if !decision.Permitted {
				metrics.AuthzDecisionsTotal.WithLabelValues("deny", string(decision.Reason)).Inc()
				return decision.Err()
			}

			metrics.AuthzDecisionsTotal.WithLabelValues("permit", "").Inc()
			return next(c)
		}
	}
}
