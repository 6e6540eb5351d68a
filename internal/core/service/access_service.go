package service

import (
	"context"
	"errors"

	"github.com/accesshub/rbac-service/internal/core/domain"
	"github.com/accesshub/rbac-service/internal/core/ports"
)

// AccessService turns a bearer token into a live identity.
//
// The token's embedded roles are deliberately ignored for authorization:
// after the codec accepts the token, the current user and role set are
// re-fetched from the store by subject. A role revoked after issuance is
// therefore enforced before the token expires, without any revocation
// machinery. This is the chosen trust model, not an oversight.
type AccessService struct {
	tokens ports.TokenCodec
	users  ports.UserRepository
}

func NewAccessService(tokens ports.TokenCodec, users ports.UserRepository) *AccessService {
	return &AccessService{tokens: tokens, users: users}
}

// Resolve validates the token and re-fetches the subject's current record.
// A subject that no longer resolves (user deleted after issuance) yields
// domain.ErrUnknownSubject.
func (s *AccessService) Resolve(ctx context.Context, token string) (*domain.User, *domain.TokenClaims, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.users.FindByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrUnknownSubject
		}
		return nil, nil, err
	}
	return user, claims, nil
}
