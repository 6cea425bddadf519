package service

import (
	"context"
	"fmt"

	"github.com/homekeeper/account-service/internal/core/domain"
	"github.com/homekeeper/account-service/internal/core/ports"
)

// CachedRoleCatalog is a read-only snapshot of the role reference data,
// loaded once at startup and injected into the services that need it. The
// catalog never changes at runtime; role administration is out of scope.
type CachedRoleCatalog struct {
	byName map[string]domain.Role
}

// NewCachedRoleCatalog loads all roles from the repository and freezes them
// into an in-memory catalog.
func NewCachedRoleCatalog(ctx context.Context, repo ports.RoleRepository) (*CachedRoleCatalog, error) {
	roles, err := repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load role catalog: %w", err)
	}

	byName := make(map[string]domain.Role, len(roles))
	for _, r := range roles {
		byName[r.Name] = r
	}
	return &CachedRoleCatalog{byName: byName}, nil
}

// NewStaticRoleCatalog builds a catalog directly from the given roles.
// Intended for tests and for deployments without a roles collection.
func NewStaticRoleCatalog(roles ...domain.Role) *CachedRoleCatalog {
	byName := make(map[string]domain.Role, len(roles))
	for _, r := range roles {
		byName[r.Name] = r
	}
	return &CachedRoleCatalog{byName: byName}
}

// FindByName resolves a role by its exact name.
func (c *CachedRoleCatalog) FindByName(_ context.Context, name string) (*domain.Role, error) {
	role, ok := c.byName[name]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	clone := role
	return &clone, nil
}
