package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/accesshub/rbac-service/internal/core/domain"
	"github.com/accesshub/rbac-service/internal/core/ports"
)

// AuthService verifies credentials against the store and issues tokens.
type AuthService struct {
	users  ports.UserRepository
	hasher *PasswordHasher
	tokens ports.TokenCodec
	audit  ports.AuditRecorder
}

func NewAuthService(users ports.UserRepository, hasher *PasswordHasher, tokens ports.TokenCodec, audit ports.AuditRecorder) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, audit: audit}
}

// Authenticate looks the user up by exact username and verifies the
// password. Unknown username and wrong password collapse into the same
// generic domain.ErrInvalidCredentials so the response does not reveal
// whether the account exists.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates and, on success, issues a bearer token carrying a
// snapshot of the user's current role names. Both outcomes are audited; a
// failed attempt is recorded with a null user id.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			details := fmt.Sprintf("failed login for username=%s", username)
			if _, auditErr := s.audit.Record(ctx, domain.ActionLoginFailed, nil, details); auditErr != nil {
				return "", nil, auditErr
			}
		}
		return "", nil, err
	}

	token, err := s.tokens.Issue(user.Username, user.RoleNames())
	if err != nil {
		return "", nil, err
	}
	if _, err := s.audit.Record(ctx, domain.ActionLoginSuccess, &user.ID, ""); err != nil {
		return "", nil, err
	}
	return token, user, nil
}
