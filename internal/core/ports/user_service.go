package ports

import (
	"context"

	"github.com/homekeeper/account-service/internal/core/domain"
)

// RegisterInput carries all data needed to register a new account.
// RoleNames is the caller-requested set of role names; nil means "default
// role only". Order is irrelevant and duplicates collapse.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	RoleNames []string
}

// UpdateInput is the patch applied to an existing user. Every field is
// copied onto the stored record except the identity, which is always
// preserved regardless of what the patch contains.
type UpdateInput struct {
	ID       string // ignored: the target's stored ID wins
	Username string
	Email    string
	Roles    []domain.Role
}

// UserService defines the account management use cases.
type UserService interface {
	// Register reconciles the requested roles against the catalog, checks
	// username/email uniqueness and persists a fully-formed user record.
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// GetProfile returns the record of the caller identified by username.
	GetProfile(ctx context.Context, username string) (*domain.User, error)
	// List returns all users, unfiltered.
	List(ctx context.Context) ([]*domain.User, error)
	// Update applies a patch to the user identified by id, preserving the
	// identity field, and returns the resulting record.
	Update(ctx context.Context, id string, patch UpdateInput) (*domain.User, error)
	// Delete removes the user identified by id.
	Delete(ctx context.Context, id string) error
}
