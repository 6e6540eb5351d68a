package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/accesshub/rbac-service/internal/api/metrics"
	"github.com/accesshub/rbac-service/internal/core/domain"
	"github.com/accesshub/rbac-service/internal/core/ports"
)

// Context keys set by Auth for downstream middleware and handlers.
const (
	IdentityKey = "identity"
	ClaimsKey   = "claims"
)

// Auth extracts the bearer token and resolves it to a live identity. The
// resolved user (with the current role set from the store) is what the
// authorization gate sees; the token claims are stored alongside for
// diagnostics only. A missing or malformed header is treated exactly like
// an invalid token.
func Auth(access ports.AccessService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get("Authorization"))
			if !ok {
				metrics.TokenResolutionsTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
			}

			user, claims, err := access.Resolve(c.Request().Context(), token)
			if err != nil {
				result := "invalid_token"
				if errors.Is(err, domain.ErrUnknownSubject) {
					result = "unknown_subject"
				}
				metrics.TokenResolutionsTotal.WithLabelValues(result).Inc()
				// Collapsed to one generic message: the caller learns
				// nothing about why the token was rejected.
				return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
			}

			metrics.TokenResolutionsTotal.WithLabelValues("ok").Inc()
			c.Set(IdentityKey, user)
			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
