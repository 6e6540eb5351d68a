package ports

import (
	"context"

	"github.com/accesshub/rbac-service/internal/core/domain"
)

// AuditRepository is the append-only persistence contract for audit records.
type AuditRepository interface {
	Append(ctx context.Context, entry domain.AuditLogEntry) (*domain.AuditLogEntry, error)
	// List returns entries ordered by created_at descending.
	List(ctx context.Context, offset, limit int64) ([]domain.AuditLogEntry, error)
}

// AuditRecorder is what the services use to record actions. Implementations
// persist the entry and hand it to the asynchronous fan-out.
type AuditRecorder interface {
	Record(ctx context.Context, action string, userID *string, details string) (*domain.AuditLogEntry, error)
	List(ctx context.Context, offset, limit int64) ([]domain.AuditLogEntry, error)
}

// AuditNotifier accepts committed entries for best-effort asynchronous
// delivery to external consumers. Enqueue never blocks the caller.
type AuditNotifier interface {
	Enqueue(entry domain.AuditLogEntry)
}

// AuditPublisher delivers a single entry to the external audit feed.
type AuditPublisher interface {
	Publish(ctx context.Context, entry domain.AuditLogEntry) error
}
