package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/accesshub/rbac-service/internal/core/domain"
)

const auditCollection = "audit_logs"

// AuditRepository appends immutable audit records. Entries are never updated
// or deleted; user_id is a weak reference and may point at a user that no
// longer exists.
type AuditRepository struct {
	logs *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{logs: db.Collection(auditCollection)}
}

type auditDoc struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty"`
	UserID    *primitive.ObjectID `bson:"user_id"`
	Action    string              `bson:"action"`
	Details   string              `bson:"details,omitempty"`
	CreatedAt time.Time           `bson:"created_at"`
}

func (d auditDoc) toDomain() domain.AuditLogEntry {
	entry := domain.AuditLogEntry{
		ID:        d.ID.Hex(),
		Action:    d.Action,
		Details:   d.Details,
		CreatedAt: d.CreatedAt,
	}
	if d.UserID != nil {
		id := d.UserID.Hex()
		entry.UserID = &id
	}
	return entry
}

func (r *AuditRepository) Append(ctx context.Context, entry domain.AuditLogEntry) (*domain.AuditLogEntry, error) {
	doc := auditDoc{
		Action:    entry.Action,
		Details:   entry.Details,
		CreatedAt: entry.CreatedAt.UTC(),
	}
	if entry.UserID != nil {
		oid, err := primitive.ObjectIDFromHex(*entry.UserID)
		if err != nil {
			return nil, fmt.Errorf("append audit: bad user id %q", *entry.UserID)
		}
		doc.UserID = &oid
	}

	res, err := r.logs.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("append audit: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	out := doc.toDomain()
	return &out, nil
}

// List returns entries newest first, the canonical read order.
func (r *AuditRepository) List(ctx context.Context, offset, limit int64) ([]domain.AuditLogEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)
	cursor, err := r.logs.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []auditDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}

	out := make([]domain.AuditLogEntry, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toDomain())
	}
	return out, nil
}
