package service

import (
	"context"
	"time"

	"github.com/accesshub/rbac-service/internal/core/domain"
	"github.com/accesshub/rbac-service/internal/core/ports"
)

// AuditRecorder persists audit entries and hands them to the asynchronous
// fan-out. The append is the authoritative write: when called inside a unit
// of work it commits with the surrounding mutation, and the notifier fires
// only after that commit, so a rollback never reaches the external feed.
type AuditRecorder struct {
	repo     ports.AuditRepository
	notifier ports.AuditNotifier
}

func NewAuditRecorder(repo ports.AuditRepository, notifier ports.AuditNotifier) *AuditRecorder {
	return &AuditRecorder{repo: repo, notifier: notifier}
}

func (r *AuditRecorder) Record(ctx context.Context, action string, userID *string, details string) (*domain.AuditLogEntry, error) {
	entry, err := r.repo.Append(ctx, domain.AuditLogEntry{
		UserID:    userID,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	if r.notifier != nil {
		queued := *entry
		if !ports.AfterCommit(ctx, func() { r.notifier.Enqueue(queued) }) {
			r.notifier.Enqueue(queued)
		}
	}
	return entry, nil
}

func (r *AuditRecorder) List(ctx context.Context, offset, limit int64) ([]domain.AuditLogEntry, error) {
	return r.repo.List(ctx, offset, limit)
}
