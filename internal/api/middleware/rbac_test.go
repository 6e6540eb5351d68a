package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/accesshub/rbac-service/internal/core/domain"
)

func levelContext(e *echo.Echo, user *domain.User) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(IdentityKey, user)
	}
	return c
}

func TestRequireLevel_Permits(t *testing.T) {
	e := echo.New()
	user := &domain.User{IsActive: true, Roles: []domain.Role{{Name: "manager", Level: 2}}}
	c := levelContext(e, user)

	called := false
	handler := RequireLevel(2)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestRequireLevel_InsufficientPrivilege(t *testing.T) {
	e := echo.New()
	user := &domain.User{IsActive: true, Roles: []domain.Role{{Name: "user", Level: 1}}}
	c := levelContext(e, user)

	handler := RequireLevel(3)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrInsufficientPrivilege) {
		t.Fatalf("expected ErrInsufficientPrivilege, got %v", err)
	}
}

func TestRequireLevel_InactiveAccount(t *testing.T) {
	e := echo.New()
	user := &domain.User{IsActive: false, Roles: []domain.Role{{Name: "admin", Level: 3}}}
	c := levelContext(e, user)

	handler := RequireLevel(1)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	// Inactive wins over privilege: the denial names the account state.
	if err := handler(c); !errors.Is(err, domain.ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive, got %v", err)
	}
}

func TestRequireLevel_MissingIdentity(t *testing.T) {
	e := echo.New()
	c := levelContext(e, nil)

	handler := RequireLevel(0)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
