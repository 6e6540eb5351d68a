package domain

import "time"

// Audit actions recorded by the service.
const (
	ActionRegister           = "register"
	ActionLoginSuccess       = "login_success"
	ActionLoginFailed        = "login_failed"
	ActionUserCreatedByAdmin = "user_created_by_admin"
	ActionRolesChanged       = "roles_changed"
)

// AuditLogEntry is an immutable record of a security-relevant action.
// UserID is a weak reference: it is nil for actions with no resolvable
// account (for example a failed login with an unknown username) and is never
// required to resolve to a live user when read back.
type AuditLogEntry struct {
	ID        string    `json:"id"`
	UserID    *string   `json:"user_id"`
	Action    string    `json:"action"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
