package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/accesshub/rbac-service/internal/core/domain"
)

// TokenService signs and validates stateless bearer tokens. Validity is
// determined purely by signature and expiry; nothing is persisted.
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

type tokenClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// NewTokenService builds a codec for the given HMAC algorithm name
// (HS256, HS384 or HS512) and token lifetime. A non-positive ttl is a
// misconfiguration and is rejected, like an unknown algorithm.
func NewTokenService(secret, algorithm string, ttl time.Duration) (*TokenService, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("token: unsupported signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("token: signing algorithm %q is not HMAC-based", algorithm)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token: ttl must be positive, got %v", ttl)
	}
	return &TokenService{secret: []byte(secret), method: method, ttl: ttl}, nil
}

// Issue signs a token asserting subject and a snapshot of its role names,
// expiring ttl from now.
func (s *TokenService) Issue(subject string, roles []string) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
}

// Validate decodes and checks the token. Every rejection wraps
// domain.ErrTokenInvalid; the underlying cause is kept for diagnostics only
// and must not be surfaced to clients.
func (s *TokenService) Validate(token string) (*domain.TokenClaims, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{s.method.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, domain.ErrTokenInvalid
	}
	return &domain.TokenClaims{
		Subject:   claims.Subject,
		Roles:     claims.Roles,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
