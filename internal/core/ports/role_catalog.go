package ports

import (
	"context"

	"github.com/homekeeper/account-service/internal/core/domain"
)

// RoleCatalog resolves role names against the closed set of reference
// roles. A miss on a role the system is supposed to be seeded with is a
// configuration error, reported as domain.ErrRoleNotFound.
type RoleCatalog interface {
	FindByName(ctx context.Context, name string) (*domain.Role, error)
}

// RoleRepository is the persistence side of the catalog. LoadAll feeds the
// read-only in-memory catalog built at startup; Seed inserts the reference
// roles when they are missing.
type RoleRepository interface {
	LoadAll(ctx context.Context) ([]domain.Role, error)
	Seed(ctx context.Context, names ...string) error
}
