package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/accesshub/rbac-service/internal/core/domain"
)

const auditStream = "audit:events"

// AuditStream publishes committed audit entries to a Redis stream so
// external consumers (SIEM forwarders, alerting) can tail the trail without
// touching the primary store. The stream is advisory: the MongoDB record is
// the source of truth.
type AuditStream struct {
	client *redis.Client
}

func NewAuditStream(client *redis.Client) *AuditStream {
	return &AuditStream{client: client}
}

func (s *AuditStream) Publish(ctx context.Context, entry domain.AuditLogEntry) error {
	values := map[string]interface{}{
		"id":         entry.ID,
		"action":     entry.Action,
		"created_at": entry.CreatedAt.Format(time.RFC3339Nano),
	}
	if entry.UserID != nil {
		values["user_id"] = *entry.UserID
	}
	if entry.Details != "" {
		values["details"] = entry.Details
	}

	err := s.client.XAdd(ctx, &redis.XAddArgs{Stream: auditStream, Values: values}).Err()
	if err != nil {
		return fmt.Errorf("audit stream publish: %w", err)
	}
	return nil
}
