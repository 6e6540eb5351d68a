package ports

import (
	"context"

	"github.com/accesshub/rbac-service/internal/core/domain"
)

// RoleRepository reads the role catalog seeded at bootstrap.
type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	// FindByNames resolves the given names to role definitions. Names with
	// no matching definition are skipped, not reported as errors.
	FindByNames(ctx context.Context, names []string) ([]domain.Role, error)
	List(ctx context.Context) ([]domain.Role, error)
}
