package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/accesshub/rbac-service/internal/core/domain"
)

const usersCollection = "users"

// UserRepository persists users with their owned set of role ids. Reads
// hydrate the role set so callers always see the live roles.
type UserRepository struct {
	users *mongo.Collection
	roles *RoleRepository
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		users: db.Collection(usersCollection),
		roles: NewRoleRepository(db),
	}
}

type userDoc struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Username     string               `bson:"username"`
	Email        string               `bson:"email"`
	PasswordHash string               `bson:"password_hash"`
	IsActive     bool                 `bson:"is_active"`
	CreatedAt    time.Time            `bson:"created_at"`
	RoleIDs      []primitive.ObjectID `bson:"role_ids"`
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDoc
	if err := r.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return r.hydrate(ctx, doc)
}

// Save upserts the user. Role membership is stored as the full set of role
// ids on the user document, so replacement is a single write.
func (r *UserRepository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := userDoc{
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		IsActive:     user.IsActive,
		CreatedAt:    user.CreatedAt.UTC(),
		RoleIDs:      make([]primitive.ObjectID, 0, len(user.Roles)),
	}
	for _, role := range user.Roles {
		oid, err := primitive.ObjectIDFromHex(role.ID)
		if err != nil {
			return nil, fmt.Errorf("save user: bad role id %q", role.ID)
		}
		doc.RoleIDs = append(doc.RoleIDs, oid)
	}

	if user.ID == "" {
		res, err := r.users.InsertOne(ctx, doc)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, duplicateUserError(err)
			}
			return nil, fmt.Errorf("insert user: %w", err)
		}
		doc.ID = res.InsertedID.(primitive.ObjectID)
		return r.hydrate(ctx, doc)
	}

	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	doc.ID = oid
	opts := options.Replace().SetUpsert(true)
	if _, err := r.users.ReplaceOne(ctx, bson.M{"_id": oid}, doc, opts); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateUserError(err)
		}
		return nil, fmt.Errorf("replace user: %w", err)
	}
	return r.hydrate(ctx, doc)
}

func (r *UserRepository) List(ctx context.Context, offset, limit int64) ([]domain.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetSkip(offset).
		SetLimit(limit)
	cursor, err := r.users.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]domain.User, 0, len(docs))
	for _, doc := range docs {
		u, err := r.hydrate(ctx, doc)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, nil
}

func (r *UserRepository) hydrate(ctx context.Context, doc userDoc) (*domain.User, error) {
	roles, err := r.roles.findByIDs(ctx, doc.RoleIDs)
	if err != nil {
		return nil, err
	}
	return &domain.User{
		ID:           doc.ID.Hex(),
		Username:     doc.Username,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		IsActive:     doc.IsActive,
		CreatedAt:    doc.CreatedAt,
		Roles:        roles,
	}, nil
}

// duplicateUserError maps a unique-index violation to the field-specific
// conflict. The service checks collisions up front inside the transaction;
// this path only fires when two inserts race.
func duplicateUserError(err error) error {
	if strings.Contains(err.Error(), "username") {
		return domain.ErrUsernameTaken
	}
	return domain.ErrEmailTaken
}
