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

// EnsureIndexes installs the unique indexes the store contract depends on.
// Idempotent; safe to run on every startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	userIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := db.Collection(usersCollection).Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("ensure user indexes: %w", err)
	}

	roleIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := db.Collection(rolesCollection).Indexes().CreateOne(ctx, roleIndex); err != nil {
		return fmt.Errorf("ensure role index: %w", err)
	}
	return nil
}

// SeedRoles installs the canonical role catalog. Existing definitions are
// left untouched.
func SeedRoles(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(rolesCollection)
	for _, role := range domain.SeedRoles {
		filter := bson.M{"name": role.Name}
		update := bson.M{"$setOnInsert": bson.M{"name": role.Name, "level": role.Level}}
		if _, err := coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			return fmt.Errorf("seed role %s: %w", role.Name, err)
		}
	}
	return nil
}

// SeedAdmin guarantees an active administrator account exists. An existing
// account keeps its password; only the admin role membership is enforced.
func SeedAdmin(ctx context.Context, db *mongo.Database, username, email, passwordHash string) error {
	var admin roleDoc
	err := db.Collection(rolesCollection).FindOne(ctx, bson.M{"name": domain.RoleAdmin}).Decode(&admin)
	if err != nil {
		return fmt.Errorf("seed admin: admin role missing: %w", err)
	}

	users := db.Collection(usersCollection)
	var existing userDoc
	err = users.FindOne(ctx, bson.M{"username": username}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		_, err = users.InsertOne(ctx, userDoc{
			Username:     username,
			Email:        email,
			PasswordHash: passwordHash,
			IsActive:     true,
			CreatedAt:    time.Now().UTC(),
			RoleIDs:      []primitive.ObjectID{admin.ID},
		})
		if err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	update := bson.M{"$addToSet": bson.M{"role_ids": admin.ID}}
	if _, err := users.UpdateOne(ctx, bson.M{"_id": existing.ID}, update); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}
