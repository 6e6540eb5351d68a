package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/accesshub/rbac-service/internal/core/domain"
)

const rolesCollection = "roles"

// RoleRepository reads the role catalog. Definitions are written only by the
// bootstrap seeding; at runtime the catalog is read-only.
type RoleRepository struct {
	roles *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{roles: db.Collection(rolesCollection)}
}

type roleDoc struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Name  string             `bson:"name"`
	Level int                `bson:"level"`
}

func (d roleDoc) toDomain() domain.Role {
	return domain.Role{ID: d.ID.Hex(), Name: d.Name, Level: d.Level}
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	var doc roleDoc
	if err := r.roles.FindOne(ctx, bson.M{"name": name}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	role := doc.toDomain()
	return &role, nil
}

// FindByNames resolves names to definitions, preserving the caller's order
// and silently skipping names with no definition.
func (r *RoleRepository) FindByNames(ctx context.Context, names []string) ([]domain.Role, error) {
	if len(names) == 0 {
		return nil, nil
	}

	cursor, err := r.roles.Find(ctx, bson.M{"name": bson.M{"$in": names}})
	if err != nil {
		return nil, fmt.Errorf("find roles: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []roleDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("find roles: %w", err)
	}

	byName := make(map[string]domain.Role, len(docs))
	for _, doc := range docs {
		byName[doc.Name] = doc.toDomain()
	}

	out := make([]domain.Role, 0, len(names))
	for _, name := range names {
		if role, ok := byName[name]; ok {
			out = append(out, role)
		}
	}
	return out, nil
}

func (r *RoleRepository) List(ctx context.Context) ([]domain.Role, error) {
	opts := options.Find().SetSort(bson.D{{Key: "level", Value: 1}})
	cursor, err := r.roles.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []roleDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}

	out := make([]domain.Role, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toDomain())
	}
	return out, nil
}

func (r *RoleRepository) findByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Role, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := r.roles.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find roles by id: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []roleDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("find roles by id: %w", err)
	}

	byID := make(map[primitive.ObjectID]domain.Role, len(docs))
	for _, doc := range docs {
		byID[doc.ID] = doc.toDomain()
	}

	// Preserve assignment order; a dangling id (role deleted out of band)
	// is skipped rather than failing the whole read.
	out := make([]domain.Role, 0, len(ids))
	for _, id := range ids {
		if role, ok := byID[id]; ok {
			out = append(out, role)
		}
	}
	return out, nil
}
