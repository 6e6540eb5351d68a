package ports

import (
	"context"

	"github.com/accesshub/rbac-service/internal/core/domain"
)

// AuthService verifies credentials and issues tokens.
type AuthService interface {
	// Authenticate returns the user when the username exists and the
	// password verifies, domain.ErrInvalidCredentials otherwise. It does
	// not audit; Login does.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	// Login authenticates, issues a bearer token on success, and records
	// login_success or login_failed in the audit trail.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
