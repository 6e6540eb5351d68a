package ports

import (
	"context"

	"github.com/accesshub/rbac-service/internal/core/domain"
)

// UserRepository is the credential store contract. Find methods return at
// most one user (with the role set hydrated) or domain.ErrUserNotFound.
// Lookups are exact and case-sensitive.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Save upserts the user, replacing its full role set atomically.
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context, offset, limit int64) ([]domain.User, error)
}
