package ports

import (
	"context"

	"github.com/accesshub/rbac-service/internal/core/domain"
)

// AccessService resolves a bearer token to a live identity. Resolution is
// two-step: the codec checks signature and expiry, then the current user and
// role set are re-fetched from the store by subject. The claims embedded in
// the token are returned for diagnostics but carry no authority.
type AccessService interface {
	Resolve(ctx context.Context, token string) (*domain.User, *domain.TokenClaims, error)
}
