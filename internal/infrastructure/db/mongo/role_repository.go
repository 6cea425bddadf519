package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/homekeeper/account-service/internal/core/domain"
)

const rolesCollection = "roles"

// RoleRepository stores the role reference data. Roles are seeded once at
// startup and read once to build the in-memory catalog; nothing mutates
// them at runtime.
type RoleRepository struct {
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{coll: db.Collection(rolesCollection)}
}

type mongoRole struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

// LoadAll returns every role in the catalog.
func (r *RoleRepository) LoadAll(ctx context.Context) ([]domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("load roles: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoRole
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}

	roles := make([]domain.Role, 0, len(docs))
	for _, d := range docs {
		roles = append(roles, domain.Role{ID: d.ID.Hex(), Name: d.Name})
	}
	return roles, nil
}

// Seed upserts the named roles, inserting only the ones that are missing.
func (r *RoleRepository) Seed(ctx context.Context, names ...string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	for _, name := range names {
		_, err := r.coll.UpdateOne(ctx,
			bson.M{"name": name},
			bson.M{"$setOnInsert": bson.M{"name": name}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("seed role %q: %w", name, err)
		}
	}
	return nil
}

// EnsureIndexes creates the unique index on the role name.
func (r *RoleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_role_name"),
	})
	return err
}
