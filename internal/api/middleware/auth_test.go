package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/accesshub/rbac-service/internal/core/domain"
)

type stubAccess struct {
	resolveFn func(ctx context.Context, token string) (*domain.User, *domain.TokenClaims, error)
}

func (s *stubAccess) Resolve(ctx context.Context, token string) (*domain.User, *domain.TokenClaims, error) {
	return s.resolveFn(ctx, token)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	alice := &domain.User{ID: "u1", Username: "alice", IsActive: true}
	stub := &stubAccess{
		resolveFn: func(_ context.Context, token string) (*domain.User, *domain.TokenClaims, error) {
			if token != "token123" {
				t.Fatalf("unexpected token: %q", token)
			}
			return alice, &domain.TokenClaims{Subject: "alice", Roles: []string{"user"}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(stub)(func(c echo.Context) error {
		called = true
		user, ok := c.Get(IdentityKey).(*domain.User)
		if !ok || user.Username != "alice" {
			t.Fatalf("identity not set")
		}
		claims, ok := c.Get(ClaimsKey).(*domain.TokenClaims)
		if !ok || claims.Subject != "alice" {
			t.Fatalf("claims not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	stub := &stubAccess{
		resolveFn: func(context.Context, string) (*domain.User, *domain.TokenClaims, error) {
			t.Fatalf("resolve should not be called")
			return nil, nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(stub)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	e := echo.New()
	stub := &stubAccess{
		resolveFn: func(context.Context, string) (*domain.User, *domain.TokenClaims, error) {
			t.Fatalf("resolve should not be called")
			return nil, nil, nil
		},
	}

	for _, header := range []string{"Token abc", "Bearer", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := Auth(stub)(func(c echo.Context) error {
			t.Fatalf("should not reach next")
			return nil
		})

		err := handler(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %v", header, err)
		}
	}
}

func TestAuthMiddleware_ResolveRejection(t *testing.T) {
	e := echo.New()
	for _, resolveErr := range []error{domain.ErrTokenInvalid, domain.ErrUnknownSubject} {
		stub := &stubAccess{
			resolveFn: func(context.Context, string) (*domain.User, *domain.TokenClaims, error) {
				return nil, nil, resolveErr
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer whatever")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := Auth(stub)(func(c echo.Context) error {
			t.Fatalf("should not reach next")
			return nil
		})

		err := handler(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
			t.Fatalf("%v: expected 401, got %v", resolveErr, err)
		}
		// Both rejection kinds collapse into the same client message.
		if he.Message != "could not validate credentials" {
			t.Fatalf("unexpected message: %v", he.Message)
		}
	}
}
