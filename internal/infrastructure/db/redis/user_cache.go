package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/homekeeper/account-service/internal/core/domain"
)

const cacheTTL = 5 * time.Minute

// UserCache is a read-through profile cache backed by Redis.
// Key format: profile:<username>
type UserCache struct {
	client *redis.Client
}

// NewUserCache creates a UserCache wrapping the given Redis client.
func NewUserCache(client *redis.Client) *UserCache {
	return &UserCache{client: client}
}

// cachedUser is the cache representation. The password hash is cached so a
// hit returns the same record a repository read would; the hash never
// leaves the service because domain.User excludes it from JSON responses.
type cachedUser struct {
	ID           string        `json:"id"`
	Username     string        `json:"username"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"password_hash"`
	Roles        []domain.Role `json:"roles"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Get returns the cached profile, or nil on a miss.
func (c *UserCache) Get(ctx context.Context, username string) (*domain.User, error) {
	raw, err := c.client.Get(ctx, c.key(username)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("profile cache get: %w", err)
	}

	var cu cachedUser
	if err := json.Unmarshal(raw, &cu); err != nil {
		return nil, fmt.Errorf("profile cache decode: %w", err)
	}

	return &domain.User{
		ID:           cu.ID,
		Username:     cu.Username,
		Email:        cu.Email,
		PasswordHash: cu.PasswordHash,
		Roles:        cu.Roles,
		CreatedAt:    cu.CreatedAt,
	}, nil
}

// Set stores the profile (expires after cacheTTL).
func (c *UserCache) Set(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(cachedUser{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Roles:        user.Roles,
		CreatedAt:    user.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("profile cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(user.Username), raw, cacheTTL).Err()
}

// Invalidate drops the cached profile for the given username.
func (c *UserCache) Invalidate(ctx context.Context, username string) error {
	return c.client.Del(ctx, c.key(username)).Err()
}

func (c *UserCache) key(username string) string {
	return "profile:" + username
}
