package ports

import (
	"context"

	"github.com/accesshub/rbac-service/internal/core/domain"
)

// RegisterInput carries a self-registration request.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// CreateUserInput carries an admin-driven account creation request.
// RoleNames not present in the role catalog are silently skipped.
type CreateUserInput struct {
	Username  string
	Email     string
	Password  string
	RoleNames []string
}

// UserService implements account lifecycle operations. Every mutation
// commits atomically with the audit entry it triggers.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	CreateByAdmin(ctx context.Context, in CreateUserInput, actor *domain.User) (*domain.User, error)
	// AssignRoles replaces (not merges) the user's role set.
	AssignRoles(ctx context.Context, userID string, roleNames []string, actor *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, offset, limit int64) ([]domain.User, error)
}
