package domain

import (
	"errors"
	"time"
)

var ErrTokenInvalid = errors.New("invalid token")
var ErrUnknownSubject = errors.New("unknown subject")
var ErrAccountInactive = errors.New("inactive account")
var ErrInsufficientPrivilege = errors.New("insufficient privilege")

// TokenClaims is the decoded content of a bearer token. Roles is a snapshot
// taken at issuance and is informational only: access decisions are made
// against the live role set fetched from the store, never against this copy.
type TokenClaims struct {
	Subject   string
	Roles     []string
	ExpiresAt time.Time
}

// DenyReason distinguishes the causes of a denied access decision.
type DenyReason string

const (
	DenyNone                  DenyReason = ""
	DenyInactiveAccount       DenyReason = "inactive account"
	DenyInsufficientPrivilege DenyReason = "insufficient privilege"
)

// Decision is the outcome of an authorization check.
type Decision struct {
	Permitted bool
	Reason    DenyReason
}

// Err maps a denial to its sentinel error, or nil when permitted.
func (d Decision) Err() error {
	switch {
	case d.Permitted:
		return nil
	case d.Reason == DenyInactiveAccount:
		return ErrAccountInactive
	default:
		return ErrInsufficientPrivilege
	}
}

// Authorize decides whether user may perform an operation requiring
// minLevel. It is pure: the caller is responsible for handing it a freshly
// resolved user so that role revocations take effect before token expiry.
func Authorize(user *User, minLevel int) Decision {
	if !user.IsActive {
		return Decision{Reason: DenyInactiveAccount}
	}
	if user.MaxRoleLevel() < minLevel {
		return Decision{Reason: DenyInsufficientPrivilege}
	}
	return Decision{Permitted: true}
}
