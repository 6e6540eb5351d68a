package ports

import "github.com/accesshub/rbac-service/internal/core/domain"

// TokenCodec encodes and decodes signed bearer tokens. It is pure: no store
// access, no shared mutable state, safe for concurrent use.
type TokenCodec interface {
	// Issue signs a token for subject carrying a snapshot of its role names
	// and the configured time-to-live.
	Issue(subject string, roles []string) (string, error)
	// Validate rejects a token with a bad signature, an unexpected signing
	// method, a malformed payload, or a past expiry. All rejections wrap
	// domain.ErrTokenInvalid.
	Validate(token string) (*domain.TokenClaims, error)
}
