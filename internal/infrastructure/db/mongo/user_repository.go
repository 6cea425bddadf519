package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/homekeeper/account-service/internal/core/domain"
)

const usersCollection = "users"

// UserRepository persists user records in MongoDB. Username and email
// uniqueness is enforced by unique indexes; a duplicate-key write is the
// authoritative signal for ErrUsernameTaken/ErrEmailTaken, closing the race
// between the service-level existence check and the insert.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoRoleRef struct {
	ID   string `bson:"id,omitempty"`
	Name string `bson:"name"`
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Roles        []mongoRoleRef     `bson:"roles"`
	CreatedAt    int64              `bson:"created_at"`
}

func toDoc(u *domain.User) mongoUser {
	roles := make([]mongoRoleRef, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, mongoRoleRef{ID: r.ID, Name: r.Name})
	}
	return mongoUser{
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Roles:        roles,
		CreatedAt:    u.CreatedAt.Unix(),
	}
}

func toDomain(mu mongoUser) *domain.User {
	roles := make([]domain.Role, 0, len(mu.Roles))
	for _, r := range mu.Roles {
		roles = append(roles, domain.Role{ID: r.ID, Name: r.Name})
	}
	return &domain.User{
		ID:           mu.ID.Hex(),
		Username:     mu.Username,
		Email:        mu.Email,
		PasswordHash: mu.PasswordHash,
		Roles:        roles,
		CreatedAt:    unixToTime(mu.CreatedAt),
	}
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"username": username}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count by username: %w", err)
	}
	return n > 0, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"email": email}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count by email: %w", err)
	}
	return n > 0, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find by username: %w", err)
	}
	return toDomain(mu), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id cannot resolve to any stored record.
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find by id: %w", err)
	}
	return toDomain(mu), nil
}

// Insert persists a new user and returns the stored record with the
// server-assigned id.
func (r *UserRepository) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, toDoc(user))
	if err != nil {
		return nil, mapDuplicateKey(err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert user: unexpected inserted id type %T", res.InsertedID)
	}

	stored := *user
	stored.ID = oid.Hex()
	return &stored, nil
}

// Update replaces the stored document identified by user.ID.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, toDoc(user))
	if err != nil {
		return nil, mapDuplicateKey(err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrUserNotFound
	}

	stored := *user
	return &stored, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) ListAll(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoUser
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]*domain.User, 0, len(docs))
	for _, mu := range docs {
		users = append(users, toDomain(mu))
	}
	return users, nil
}

// EnsureIndexes creates the unique indexes backing the uniqueness
// invariants. Must run before the service accepts traffic.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_username"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// mapDuplicateKey translates a unique-index violation into the matching
// domain error, inspecting the index name embedded in the server message.
func mapDuplicateKey(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("write user: %w", err)
	}
	if strings.Contains(err.Error(), "uniq_email") {
		return domain.ErrEmailTaken
	}
	return domain.ErrUsernameTaken
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
